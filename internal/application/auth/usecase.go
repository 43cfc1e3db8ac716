package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
	"github.com/jhoicas/inventario-libros/pkg/jwt"
)

// ErrInvalidCredentials se devuelve igual para usuario inexistente y contraseña incorrecta.
var ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)

// DefaultAdminPassword contraseña inicial del administrador si no se configura otra.
const DefaultAdminPassword = "admin123"

// SessionConfig configuración para generación de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn dentro de una transacción con el repositorio de usuarios atado a ella.
type TxRunner interface {
	RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error
}

// Revoker registro de sesiones cerradas (logout).
type Revoker interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Session resultado de un login exitoso.
type Session struct {
	Token  string
	Claims *jwt.Claims
	User   dto.UserResponse
}

// AuthUseCase login, logout, validación de sesión y gestión de contraseñas.
type AuthUseCase struct {
	users   repository.UserRepository
	tx      TxRunner
	revoker Revoker
	cfg     SessionConfig
	cost    int
	// dummyHash se compara cuando el usuario no existe para que ambos fallos tarden lo mismo.
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth. revoker puede ser nil (sin logout del lado servidor).
func NewAuthUseCase(users repository.UserRepository, tx TxRunner, revoker Revoker, cfg SessionConfig) *AuthUseCase {
	uc := &AuthUseCase{users: users, tx: tx, revoker: revoker, cfg: cfg, cost: bcrypt.DefaultCost}
	uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), uc.cost)
	return uc
}

// Login verifica usuario y contraseña y emite el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*Session, error) {
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, claims, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Username, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Claims: claims, User: toUserResponse(user)}, nil
}

// Authenticate valida el token de la cookie. Firma inválida, vencimiento o sesión
// cerrada devuelven domain.ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if uc.revoker != nil {
		revoked, err := uc.revoker.IsRevoked(ctx, claims.SessionID())
		if err != nil {
			return nil, fmt.Errorf("consultar sesión: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: sesión cerrada", domain.ErrUnauthorized)
		}
	}
	return claims, nil
}

// Logout cierra la sesión hasta su vencimiento.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if uc.revoker == nil || claims == nil {
		return nil
	}
	return uc.revoker.Revoke(ctx, claims.SessionID(), claims.Expiry())
}

// SeedAdmin crea el usuario administrador si no hay ningún usuario. Conteo e inserción
// ocurren en la misma transacción. Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: usuario o contraseña del administrador vacíos", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return false, err
	}
	created := false
	err = uc.tx.RunUsers(ctx, func(users repository.UserRepository) error {
		n, err := users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := users.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("crear administrador: %w", err)
	}
	return created, nil
}

// ChangePassword cambia la contraseña del usuario en sesión verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, username string, in dto.ChangePasswordRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return uc.setHash(ctx, user, in.NewPassword)
}

// SetPassword reemplaza la contraseña sin pedir la actual (uso administrativo desde la CLI).
func (uc *AuthUseCase) SetPassword(ctx context.Context, username, password string) error {
	if err := (dto.ChangePasswordRequest{NewPassword: password}).Validate(); err != nil {
		return err
	}
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.setHash(ctx, user, password)
}

func (uc *AuthUseCase) setHash(ctx context.Context, user *entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dto.ValidationErrors{{Field: "new_password", Message: "máximo 72 bytes"}}
		}
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, string(hash))
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
