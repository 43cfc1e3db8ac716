package repository

import (
	"context"

	"github.com/jhoicas/inventario-libros/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve (nil, nil) si el item no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// Update reemplaza los campos editables; domain.ErrNotFound si no existe.
	Update(ctx context.Context, item *entity.Item) error
	// Delete elimina el item; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	// ListAll devuelve todos los items en orden de creación (snapshot para el reporte).
	ListAll(ctx context.Context) ([]*entity.Item, error)
	// AdjustQuantity suma delta a la cantidad en una sola operación atómica,
	// con piso en cero. domain.ErrNotFound si no existe.
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Item, error)
}
