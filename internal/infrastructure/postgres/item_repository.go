package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, title, category, quantity, size, riwaya, created_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Title, it.Category, it.Quantity, it.Size, it.Riwaya, it.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update reemplaza los campos editables. created_at no se modifica.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	if !isUUID(it.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE items SET title = $2, category = $3, quantity = $4, size = $5, riwaya = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.Title, it.Category, it.Quantity, it.Size, it.Riwaya)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un item por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll devuelve todos los items en orden de creación.
func (r *ItemRepo) ListAll(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// AdjustQuantity suma delta en una sola sentencia; el UPDATE toma el lock de la fila,
// así dos ajustes concurrentes no se pisan. La cantidad queda entre 0 y MaxQuantity.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Item, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		UPDATE items SET quantity = LEAST(GREATEST(quantity::bigint + $2, 0), $3)
		WHERE id = $1
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(ctx, query, id, delta, entity.MaxQuantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return it, nil
}

func scanItem(row pgxScanner) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(
		&it.ID, &it.Title, &it.Category, &it.Quantity, &it.Size, &it.Riwaya, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
