package logger

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LocalsUser es la clave de fiber.Locals donde el middleware de auth deja el username.
const LocalsUser = "username"

// Config opciones del logger de la tienda.
type Config struct {
	Env    string    // development -> consola legible; resto -> JSON
	Level  string    // trace, debug, info, warn, error (info si no se reconoce)
	Output io.Writer // os.Stdout si es nil
}

// Logger envuelve zerolog para inyectarlo en handlers y casos de uso.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger y lo deja también como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zl := zerolog.New(out).Level(levelFor(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func levelFor(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// RequestLogger registra una línea por petición: método, ruta, status, latencia y usuario.
// Los 5xx salen como error y los 4xx como warn.
func (l *Logger) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		ev := l.eventFor(status, chainErr).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if user, ok := c.Locals(LocalsUser).(string); ok && user != "" {
			ev = ev.Str("user", user)
		}
		ev.Msg("http request")
		return chainErr
	}
}

func (l *Logger) eventFor(status int, err error) *zerolog.Event {
	switch {
	case status >= fiber.StatusInternalServerError:
		return l.zl.Error().Err(err)
	case status >= fiber.StatusBadRequest:
		return l.zl.Warn()
	}
	return l.zl.Info()
}
