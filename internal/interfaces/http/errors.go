package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

type errorPage struct {
	Title   string
	Message string
}

var errorPages = map[int]errorPage{
	fiber.StatusBadRequest:          {"Bad request", "The request could not be understood."},
	fiber.StatusForbidden:           {"Access denied", "You do not have permission to access this page."},
	fiber.StatusNotFound:            {"Page not found", "The page you requested does not exist."},
	fiber.StatusMethodNotAllowed:    {"Method not allowed", "This page does not accept that request."},
	fiber.StatusInternalServerError: {"Server error", "Something went wrong. Please try again."},
}

// statusFor mapea errores de dominio a códigos HTTP.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler pinta la página de error para lo que devuelva un handler. Las peticiones
// sin autenticar van al login y los 5xx se registran.
func ErrorHandler(log *logger.Logger, authz access.Authorizer, storeName string) fiber.ErrorHandler {
	p := &pages{authz: authz, storeName: storeName}
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, domain.ErrUnauthorized) {
			return redirectToLogin(c)
		}
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
		}
		page, ok := errorPages[code]
		if !ok {
			page = errorPage{Title: statusText(code)}
		}
		c.Status(code)
		if rerr := p.render(c, "errors/error", fiber.Map{
			"Title":   page.Title,
			"Code":    code,
			"Message": page.Message,
		}); rerr != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(code).SendString(page.Title)
		}
		return nil
	}
}

func statusText(code int) string {
	if msg := fiber.NewError(code).Message; msg != "" {
		return msg
	}
	return "Error"
}

// validationFields extrae los mensajes por campo de un *domain.ValidationError.
func validationFields(err error) (map[string]string, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
