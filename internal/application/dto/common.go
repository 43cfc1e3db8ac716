package dto

import (
	"strings"

	"github.com/jhoicas/inventario-libros/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  []ValidationError `json:"fields,omitempty"`
}

// ValidationError error de un campo concreto de un formulario.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lista de errores de validación. Cumple la interfaz error y
// errors.Is(err, domain.ErrInvalidInput) es verdadero.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is con domain.ErrInvalidInput.
func (v ValidationErrors) Unwrap() error { return domain.ErrInvalidInput }

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, ValidationError{Field: field, Message: msg})
}
