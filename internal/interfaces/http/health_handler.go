package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
)

const healthTimeout = 2 * time.Second

// HealthHandler informa si el proceso vive y si el almacenamiento responde.
type HealthHandler struct {
	storage string
	ping    func(ctx context.Context) error
}

// NewHealthHandler crea el handler. ping puede ser nil.
func NewHealthHandler(storage string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{storage: storage, ping: ping}
}

// Health GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	out := dto.HealthResponse{Status: "ok", Storage: h.storage}
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			out.Status = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
	}
	return c.JSON(out)
}
