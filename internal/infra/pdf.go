package infra

// pdf.go: order sheet ("hoja de pedido") rendered with go-pdf/fpdf.
// A5 portrait with the client, dates, production batch and one row per item.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"abbafoods/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// NombresReceta resolves recipe names for the item rows. Missing IDs print
// as "Producto".
type NombresReceta map[uuid.UUID]string

func (n NombresReceta) nombre(id uuid.UUID) string {
	if s, ok := n[id]; ok && s != "" {
		return s
	}
	return "Producto"
}

// RenderPedidoPDF writes the order sheet to w.
func RenderPedidoPDF(w io.Writer, p *model.Pedido, recetas NombresReceta) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, "ABBA Foods", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Hoja de pedido"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Order data ───────────────────────────────────────────────────────────
	entrega := "Sin fecha"
	if p.FechaEntrega != nil {
		entrega = p.FechaEntrega.Format("02/01/2006")
	}
	lote := "Sin orden de producción"
	if p.LoteProduccion != nil {
		lote = *p.LoteProduccion
	}
	filas := [][2]string{
		{"Pedido", p.NumeroPedido},
		{"Cliente", p.ClienteNombre},
		{"Fecha", p.FechaPedido.Format("02/01/2006")},
		{"Entrega", entrega},
		{"Lote", lote},
		{"Estado", p.EtiquetaVenta()},
	}
	for _, f := range filas {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(28, 6, tr(f[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-28, 6, tr(f[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.64
	col2 := contentW * 0.20
	col3 := contentW * 0.16

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cantidad", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Unidad", "B", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(p.Items) == 0 {
		pdf.CellFormat(contentW, 7, "Sin productos cargados", "", 1, "C", false, 0, "")
	}
	for _, it := range p.Items {
		pdf.CellFormat(col1, 7, tr(recetas.nombre(it.RecetaID)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, it.Cantidad.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 7, tr(it.Unidad), "", 1, "C", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW/2, 5, "Firma despacho", "T", 0, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr("Firma recepción"), "T", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// PedidoPDFPath is where the background render stores an order sheet.
func PedidoPDFPath(storagePath, numero string) string {
	return filepath.Join(storagePath, fmt.Sprintf("pedido_%s.pdf", numero))
}

// GeneratePedidoPDF renders the order sheet into storagePath/pedido_{numero}.pdf
// and returns the file path. The file is written under a temporary name and
// renamed into place; its mtime is set to p.UpdatedAt so readers can tell
// which version of the order it shows.
func GeneratePedidoPDF(p *model.Pedido, recetas NombresReceta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := PedidoPDFPath(storagePath, p.NumeroPedido)

	f, err := os.CreateTemp(storagePath, "pedido_*.tmp")
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := RenderPedidoPDF(f, p, recetas); err != nil {
		f.Close()
		return "", fmt.Errorf("pdf: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	if !p.UpdatedAt.IsZero() {
		if err := os.Chtimes(tmp, p.UpdatedAt, p.UpdatedAt); err != nil {
			return "", fmt.Errorf("pdf: stamp file: %w", err)
		}
	}
	if err := os.Rename(tmp, filePath); err != nil {
		return "", fmt.Errorf("pdf: move file: %w", err)
	}
	return filePath, nil
}

// StoredPedidoPDF returns the stored sheet for p when it was rendered from
// the order as it is now. Any later write to the order moves UpdatedAt and
// the stored file stops matching.
func StoredPedidoPDF(storagePath string, p *model.Pedido) ([]byte, bool) {
	if storagePath == "" || p.UpdatedAt.IsZero() {
		return nil, false
	}
	path := PedidoPDFPath(storagePath, p.NumeroPedido)
	info, err := os.Stat(path)
	if err != nil || !mismaVersion(info.ModTime(), p.UpdatedAt) {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Postgres keeps microseconds.
func mismaVersion(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}
