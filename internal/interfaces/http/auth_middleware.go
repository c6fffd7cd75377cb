package http

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/pkg/jwt"
	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

// TokenCookie guarda el token de sesión firmado que se emite en el login.
const TokenCookie = "zeenat_token"

// LocalPrincipal es la clave de fiber.Locals del access.Principal autenticado.
const LocalPrincipal = "principal"

// AuthMiddleware lee la cookie del token y deja el principal en c.Locals. Sin un token
// válido el navegador va al login con ?next= apuntando de vuelta aquí.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(TokenCookie)
		if token == "" {
			return redirectToLogin(c)
		}
		claims, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			clearTokenCookie(c)
			return redirectToLogin(c)
		}
		id := claims.Identity()
		p := access.Principal{
			UserID:    id.UserID,
			Username:  id.Username,
			Roles:     access.ParseRoles(id.Roles),
			Superuser: id.Superuser,
		}
		c.Locals(LocalPrincipal, p)
		c.Locals(logger.LocalsUser, p.Username)
		return c.Next()
	}
}

// RequirePermission deja pasar la petición solo si el principal tiene perm.
// Un rechazo sale como domain.ErrForbidden, que el error handler pinta como la página 403.
func RequirePermission(authz access.Authorizer, perm access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return redirectToLogin(c)
		}
		if err := authz.Authorize(p, perm); err != nil {
			return fmt.Errorf("%s: %w", perm, err)
		}
		return c.Next()
	}
}

// PrincipalFrom devuelve el principal que dejó AuthMiddleware.
func PrincipalFrom(c *fiber.Ctx) (access.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(access.Principal)
	return p, ok && p.UserID != ""
}

// GetUserID devuelve el id del usuario autenticado, o "" fuera del grupo protegido.
func GetUserID(c *fiber.Ctx) string {
	p, _ := PrincipalFrom(c)
	return p.UserID
}

func redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
}

func clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// safeNext solo acepta rutas absolutas locales; ?next= no puede redirigir fuera del sitio.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return "/"
	}
	return next
}
