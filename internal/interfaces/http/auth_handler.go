package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/auth"
	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
)

const (
	msgBadLogin        = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgInactiveAccount = "This account is inactive."
)

// AuthHandler sirve login, logout y cambio de contraseña.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	pages        *pages
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler crea el handler.
func NewAuthHandler(uc *auth.AuthUseCase, p *pages, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, pages: p, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.pages.render(c, "login", fiber.Map{
		"Title": "Log in",
		"Next":  safeNext(c.Query("next")),
	})
}

// Login POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	res, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		msg := msgBadLogin
		switch {
		case errors.Is(err, domain.ErrForbidden):
			msg = msgInactiveAccount
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		default:
			return err
		}
		c.Status(fiber.StatusUnauthorized)
		return h.pages.render(c, "login", fiber.Map{
			"Title":    "Log in",
			"Next":     safeNext(in.Next),
			"Username": in.Username,
			"Error":    msg,
		})
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(safeNext(in.Next))
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookie(c)
	if c.Cookies(sessionCookie) != "" {
		rs, err := h.pages.sessions.Load(c)
		if err != nil {
			return err
		}
		if err := rs.Destroy(); err != nil {
			return err
		}
	}
	return c.Redirect("/login")
}

// PasswordPage GET /password
func (h *AuthHandler) PasswordPage(c *fiber.Ctx) error {
	return h.pages.render(c, "password", fiber.Map{"Title": "Change password"})
}

// ChangePassword POST /password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.pages.render(c, "password", fiber.Map{
			"Title":  "Change password",
			"Errors": verr.Fields,
		})
	}
	if err != nil {
		return err
	}
	if err := h.pages.sessions.flash(c, dto.FlashSuccess, "Your password was changed."); err != nil {
		return err
	}
	return c.Redirect("/")
}
