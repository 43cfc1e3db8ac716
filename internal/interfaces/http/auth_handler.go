package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-libros/internal/application/auth"
	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/domain"
)

// LoginFailedMessage mensaje único para usuario inexistente y contraseña incorrecta.
const LoginFailedMessage = "خطأ في اسم المستخدم أو كلمة المرور"

type loginView struct {
	Username string
	Error    string
}

// AuthHandler login, logout y cambio de contraseña.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
	log    zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie, log: log}
}

// LoginPage godoc
// @Summary      Formulario de login
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return renderLogin(c, fiber.StatusOK, loginView{})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Acepta formulario o JSON. El token de sesión viaja en una cookie HttpOnly.
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return h.loginFailed(c, in.Username)
	}

	s, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return h.loginFailed(c, in.Username)
		}
		return writeError(c, h.log, err)
	}

	c.Cookie(sessionCookie(h.cookie, s.Token, s.Claims.Expiry()))
	if wantsHTML(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(dto.LoginResponse{User: s.User, ExpiresAt: s.Claims.Expiry()})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, username string) error {
	if wantsHTML(c) {
		return renderLogin(c, fiber.StatusUnauthorized, loginView{Username: username, Error: LoginFailedMessage})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: LoginFailedMessage})
}

func renderLogin(c *fiber.Ctx, status int, v loginView) error {
	return renderPage(c, loginPage, status, v)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetClaims(c)); err != nil {
		return writeError(c, h.log, err)
	}
	c.Cookie(expiredCookie(h.cookie))
	if wantsHTML(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña del usuario en sesión
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/account/password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	claims := GetClaims(c)
	if claims == nil {
		return writeError(c, h.log, domain.ErrUnauthorized)
	}
	if err := h.uc.ChangePassword(c.UserContext(), claims.Username, in); err != nil {
		// 401 aquí se confundiría con una sesión vencida
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CURRENT_PASSWORD", Message: "la contraseña actual no coincide"})
		}
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
