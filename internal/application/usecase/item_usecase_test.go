package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/application/usecase"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
)

// memItemRepo fake en memoria de repository.ItemRepository.
type memItemRepo struct {
	mu      sync.Mutex
	order   []string
	items   map[string]entity.Item
	creates int
	updates int
}

func newMemItemRepo() *memItemRepo { return &memItemRepo{items: map[string]entity.Item{}} }

func (r *memItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.items[it.ID] = *it
	r.order = append(r.order, it.ID)
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *memItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	r.updates++
	r.items[it.ID] = *it
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) ListAll(_ context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, id := range r.order {
		if it, ok := r.items[id]; ok {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *memItemRepo) AdjustQuantity(_ context.Context, id string, delta int) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	it.Quantity = max(it.Quantity+delta, 0)
	r.items[id] = it
	return &it, nil
}

func form(title, category, qty string) dto.ItemForm {
	return dto.ItemForm{Title: title, Category: category, Quantity: json.Number(qty), Size: "Large"}
}

func TestItemUseCase_CreateYGet(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, form("Title1", "Fiction", "5"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestItemUseCase_CreateInvalidoNoEscribe(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo)

	_, err := uc.Create(context.Background(), form("Title1", "Fiction", "cinco"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, repo.creates)
}

func TestItemUseCase_UpdateInvalidoNoModifica(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo)
	ctx := context.Background()
	created, err := uc.Create(ctx, form("Title1", "Fiction", "5"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, form("Nuevo título", "Fiction", "-3"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, repo.updates)
	got, _ := uc.GetByID(ctx, created.ID)
	assert.Equal(t, "Title1", got.Title, "ningún campo válido se aplica parcialmente")
}

func TestItemUseCase_UpdateConservaCreatedAt(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, form("Title1", "Fiction", "5"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, form("Title2", "Tafsir", "9"))

	require.NoError(t, err)
	assert.Equal(t, "Title2", updated.Title)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestItemUseCase_NoEncontrado(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, "nope", form("T", "C", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)

	_, err = uc.Adjust(ctx, "nope", dto.QuantityRequest{Action: dto.ActionIncrease})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Escenario C: disminuir en cero deja cero, sin error.
func TestItemUseCase_AdjustDisminuirEnCero(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, form("Title1", "Fiction", "0"))
	require.NoError(t, err)

	got, err := uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: dto.ActionDecrease})

	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestItemUseCase_AdjustIdaYVuelta(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, form("Title1", "Fiction", "3"))
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: dto.ActionIncrease})
	require.NoError(t, err)
	got, err := uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: dto.ActionDecrease})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	_, err = uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: dto.ActionDecrease})
	require.NoError(t, err)
	got, err = uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: dto.ActionIncrease})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestItemUseCase_AdjustAccionDesconocida(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, form("Title1", "Fiction", "3"))
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, created.ID, dto.QuantityRequest{Action: "reset"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_ListTotales(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo())
	ctx := context.Background()
	for _, q := range []string{"5", "3", "0"} {
		_, err := uc.Create(ctx, form("T"+q, "Fiction", q))
		require.NoError(t, err)
	}

	list, err := uc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, 8, list.TotalQuantity)
	assert.Equal(t, "T5", list.Items[0].Title, "orden de creación")
}
