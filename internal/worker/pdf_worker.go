package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"abbafoods/internal/infra"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PdfWorker renders order sheets to PDF_STORAGE_PATH in the background after
// an order is created, edited or sent to production. The print action serves
// the stored file while it still matches the order.
type PdfWorker struct {
	pedidos     repository.PedidoRepository
	recetas     repository.RecetaRepository
	storagePath string
}

func NewPdfWorker(pedidos repository.PedidoRepository, recetas repository.RecetaRepository, storagePath string) *PdfWorker {
	return &PdfWorker{pedidos: pedidos, recetas: recetas, storagePath: storagePath}
}

func (w *PdfWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PDFPedidoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("pdf_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		return fmt.Errorf("pdf_worker: pedido_id: %w", err)
	}

	p, err := w.pedidos.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("pdf_worker: load pedido: %w", err)
	}
	nombres, err := repository.NombresRecetas(ctx, w.recetas)
	if err != nil {
		return fmt.Errorf("pdf_worker: load recetas: %w", err)
	}

	path, err := infra.GeneratePedidoPDF(p, nombres, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("pedido", p.NumeroPedido).Str("path", path).Msg("pdf_worker: hoja de pedido generada")
	return nil
}
