package logger_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

func TestRequestLogger_WritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(log.RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		c.Locals(logger.LocalsUser, "cashier")
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, "cashier", line["user"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	for _, lvl := range []string{"", "verbose"} {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Env: "production", Level: lvl, Output: &buf})
		log.Debug().Msg("hidden")
		log.Info().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden", "level %q", lvl)
		assert.Contains(t, buf.String(), "shown", "level %q", lvl)
	}
}

func TestRequestLogger_ServerErrorAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	}})
	app.Use(log.RequestLogger())
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	_, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, float64(500), line["status"])
}
