package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, title, category, quantity, size, riwaya, created_at`

// ItemRepo implementación de ItemRepository sobre SQLite.
type ItemRepo struct {
	q querier
}

// NewItemRepository construye el adaptador sobre una conexión o transacción.
func NewItemRepository(q querier) *ItemRepo { return &ItemRepo{q: q} }

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Category, it.Quantity, it.Size, nullString(it.Riwaya), it.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update reemplaza los campos editables.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE items SET title = ?, category = ?, quantity = ?, size = ?, riwaya = ?
		WHERE id = ?`,
		it.Title, it.Category, it.Quantity, it.Size, nullString(it.Riwaya), it.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un item por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireAffected(res)
}

// ListAll devuelve todos los items en orden de creación (rowid desempata).
func (r *ItemRepo) ListAll(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at, rowid`)
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

// AdjustQuantity suma delta en una sola sentencia, acotada entre 0 y MaxQuantity. SQLite serializa
// las escrituras, así que dos ajustes simultáneos no se pierden.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE items SET quantity = MIN(MAX(quantity + ?, 0), ?)
		WHERE id = ?
		RETURNING `+itemColumns, delta, entity.MaxQuantity, id)
	it, err := scanItem(row)
	if err != nil {
		if noRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return it, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*entity.Item, error) {
	var (
		it     entity.Item
		riwaya sql.NullString
		// modernc devuelve DATETIME como time.Time
		createdAt sql.NullTime
	)
	if err := row.Scan(&it.ID, &it.Title, &it.Category, &it.Quantity, &it.Size, &riwaya, &createdAt); err != nil {
		return nil, err
	}
	if riwaya.Valid {
		it.Riwaya = &riwaya.String
	}
	if createdAt.Valid {
		it.CreatedAt = createdAt.Time
	}
	return &it, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
