package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/inventario-libros/internal/domain/entity"
)

// Límites de longitud de los campos de texto de un item.
const (
	MaxTitleLen = 200
	MaxLabelLen = 100
)

// Acciones de ajuste de cantidad.
const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// ItemForm campos crudos de creación/edición, tal como llegan del formulario o JSON.
// Quantity acepta número o texto; se valida en Validate.
type ItemForm struct {
	Title    string      `json:"title" form:"title"`
	Category string      `json:"category" form:"category"`
	Quantity json.Number `json:"quantity" form:"quantity" swaggertype:"integer"`
	Size     string      `json:"size" form:"size"`
	Riwaya   string      `json:"riwaya" form:"riwaya"`
}

// ItemInput registro tipado y válido, listo para el store.
type ItemInput struct {
	Title    string
	Category string
	Quantity int
	Size     string
	Riwaya   *string
}

// Validate convierte el formulario en ItemInput. Si cualquier campo es inválido se
// devuelven todos los errores juntos y ningún valor parcial.
func (f ItemForm) Validate() (ItemInput, error) {
	var errs ValidationErrors
	in := ItemInput{
		Title:    strings.TrimSpace(f.Title),
		Category: strings.TrimSpace(f.Category),
		Size:     strings.TrimSpace(f.Size),
	}

	switch {
	case in.Title == "":
		errs.add("title", "requerido")
	case utf8.RuneCountInString(in.Title) > MaxTitleLen:
		errs.add("title", "máximo 200 caracteres")
	}
	switch {
	case in.Category == "":
		errs.add("category", "requerido")
	case utf8.RuneCountInString(in.Category) > MaxLabelLen:
		errs.add("category", "máximo 100 caracteres")
	}
	switch {
	case in.Size == "":
		errs.add("size", "requerido")
	case utf8.RuneCountInString(in.Size) > MaxLabelLen:
		errs.add("size", "máximo 100 caracteres")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(f.Quantity.String()))
	switch {
	case err != nil:
		errs.add("quantity", "debe ser un número entero")
	case qty < 0:
		errs.add("quantity", "no puede ser negativa")
	case qty > entity.MaxQuantity:
		errs.add("quantity", "máximo "+strconv.Itoa(entity.MaxQuantity))
	default:
		in.Quantity = qty
	}

	if r := strings.TrimSpace(f.Riwaya); r != "" {
		if utf8.RuneCountInString(r) > MaxLabelLen {
			errs.add("riwaya", "máximo 100 caracteres")
		}
		in.Riwaya = &r
	}

	if len(errs) > 0 {
		return ItemInput{}, errs
	}
	return in, nil
}

// QuantityRequest ajuste de cantidad en una unidad.
type QuantityRequest struct {
	Action string `json:"action" form:"action" validate:"required,oneof=increase decrease"`
}

// Delta traduce la acción a +1/-1. Una acción desconocida es un error de validación.
func (r QuantityRequest) Delta() (int, error) {
	switch strings.TrimSpace(r.Action) {
	case ActionIncrease:
		return 1, nil
	case ActionDecrease:
		return -1, nil
	}
	return 0, ValidationErrors{{Field: "action", Message: "debe ser increase o decrease"}}
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Riwaya    *string   `json:"riwaya"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemListResponse listado completo con el total de unidades.
type ItemListResponse struct {
	Items         []ItemResponse `json:"items"`
	Count         int            `json:"count"`
	TotalQuantity int            `json:"total_quantity"`
}
