package entity

import "time"

// User representa una cuenta con acceso a la gestión del inventario.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt, nunca el password plano
	CreatedAt    time.Time
}
