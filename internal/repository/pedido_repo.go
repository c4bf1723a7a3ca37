package repository

import (
	"context"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository is the data access contract for customer orders and their
// items. Writes are single statements; callers that need several of them
// accept that a failure midway leaves the earlier ones applied.
type PedidoRepository interface {
	// Create inserts the order row only; items are written with CreateItem.
	Create(ctx context.Context, p *model.Pedido) error
	CreateItem(ctx context.Context, it *model.PedidoItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	// List returns orders with items, newest order_date first.
	List(ctx context.Context) ([]model.Pedido, error)
	UpdateDatos(ctx context.Context, p *model.Pedido) error
	UpdateItem(ctx context.Context, it *model.PedidoItem) error
	AsignarLote(ctx context.Context, id uuid.UUID, lote, estado string) error
	UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error
	UpdateEstadoEntrega(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	})
}

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Omit("Items").Create(p).Error
}

func (r *pedidoRepo) CreateItem(ctx context.Context, it *model.PedidoItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := preloadItems(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context) ([]model.Pedido, error) {
	var list []model.Pedido
	err := preloadItems(r.db.WithContext(ctx)).
		Order("order_date DESC, created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *pedidoRepo) UpdateDatos(ctx context.Context, p *model.Pedido) error {
	return r.updateColumns(ctx, p.ID, map[string]interface{}{
		"client_name":   p.ClienteNombre,
		"delivery_date": p.FechaEntrega,
	})
}

func (r *pedidoRepo) UpdateItem(ctx context.Context, it *model.PedidoItem) error {
	res := r.db.WithContext(ctx).Model(&model.PedidoItem{}).Where("id = ?", it.ID).
		Updates(map[string]interface{}{
			"recipe_id": it.RecetaID,
			"quantity":  it.Cantidad,
			"unit":      it.Unidad,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) AsignarLote(ctx context.Context, id uuid.UUID, lote, estado string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"production_batch": lote,
		"status":           estado,
	})
}

func (r *pedidoRepo) UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"payment_status": estado})
}

func (r *pedidoRepo) UpdateEstadoEntrega(ctx context.Context, id uuid.UUID, estado string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"delivery_status": estado})
}

func (r *pedidoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Pedido{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) updateColumns(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
