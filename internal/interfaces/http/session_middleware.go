package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/pkg/jwt"
)

// LocalClaims clave en c.Locals donde queda la sesión validada.
const LocalClaims = "session_claims"

// Authenticator valida el token de la cookie de sesión.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// CookieConfig atributos de la cookie de sesión.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionMiddleware exige una sesión válida en la cookie. Un navegador (Accept: text/html)
// sin sesión se redirige a /login; el resto recibe 401 JSON.
func SessionMiddleware(a Authenticator, cookie CookieConfig, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.Authenticate(c.UserContext(), c.Cookies(cookie.Name))
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				return writeError(c, log, err)
			}
			if wantsHTML(c) {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// GetClaims devuelve la sesión puesta por SessionMiddleware.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

func sessionCookie(cfg CookieConfig, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// expiredCookie borra la cookie en el navegador.
func expiredCookie(cfg CookieConfig) *fiber.Cookie {
	ck := sessionCookie(cfg, "", time.Unix(0, 0))
	ck.MaxAge = -1
	return ck
}
