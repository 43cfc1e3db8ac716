package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items y ajuste de cantidad de a una unidad.
type ItemUseCase struct {
	repo repository.ItemRepository
	now  func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, now: time.Now}
}

// Create valida el formulario completo y recién entonces persiste.
func (uc *ItemUseCase) Create(ctx context.Context, form dto.ItemForm) (*dto.ItemResponse, error) {
	in, err := form.Validate()
	if err != nil {
		return nil, err
	}
	item := &entity.Item{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Category:  in.Category,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Riwaya:    in.Riwaya,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear item: %w", err)
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item; domain.ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update reemplaza los campos editables. CreatedAt no cambia.
func (uc *ItemUseCase) Update(ctx context.Context, id string, form dto.ItemForm) (*dto.ItemResponse, error) {
	in, err := form.Validate()
	if err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Title = in.Title
	item.Category = in.Category
	item.Quantity = in.Quantity
	item.Size = in.Size
	item.Riwaya = in.Riwaya
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un item por ID.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List devuelve todos los items en orden de creación.
func (uc *ItemUseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(list))}
	for _, it := range list {
		out.Items = append(out.Items, *toItemResponse(it))
		out.TotalQuantity += it.Quantity
	}
	out.Count = len(out.Items)
	return out, nil
}

// Adjust suma o resta una unidad. Restar en cero deja la cantidad en cero sin error.
func (uc *ItemUseCase) Adjust(ctx context.Context, id string, req dto.QuantityRequest) (*dto.ItemResponse, error) {
	delta, err := req.Delta()
	if err != nil {
		return nil, err
	}
	item, err := uc.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        it.ID,
		Title:     it.Title,
		Category:  it.Category,
		Quantity:  it.Quantity,
		Size:      it.Size,
		Riwaya:    it.Riwaya,
		CreatedAt: it.CreatedAt,
	}
}
