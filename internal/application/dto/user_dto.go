package dto

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinPasswordLen longitud mínima de una contraseña nueva.
const MinPasswordLen = 8

// LoginRequest credenciales (formulario o JSON).
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse sesión creada. El token viaja en la cookie; aquí solo su vencimiento.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ChangePasswordRequest cambio de contraseña del usuario en sesión.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=8"`
}

// Validate revisa la contraseña nueva.
func (r ChangePasswordRequest) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.NewPassword) == "" {
		errs.add("new_password", "requerido")
	} else if utf8.RuneCountInString(r.NewPassword) < MinPasswordLen {
		errs.add("new_password", "mínimo 8 caracteres")
	}
	if r.NewPassword != "" && r.NewPassword == r.CurrentPassword {
		errs.add("new_password", "debe ser distinta de la actual")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
