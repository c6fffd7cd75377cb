package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain/cart"
)

// Claves de sesión. Los valores se guardan como strings JSON para que sirva cualquier fiber.Storage.
const (
	sessionCookie = "zeenat_session"
	keyCart       = "cart"
	keyFlashes    = "flashes"
)

// Sessions envuelve el session store de fiber con los helpers de carrito y flash que usan las páginas.
type Sessions struct {
	store *session.Store
}

// NewSessions crea el store. Con storage nil las sesiones quedan en memoria del proceso.
func NewSessions(storage fiber.Storage, expiration time.Duration, secure bool) *Sessions {
	return &Sessions{store: session.New(session.Config{
		Storage:        storage,
		Expiration:     expiration,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})}
}

// RequestSession es la sesión de la petición actual. Llamar a Save tras cualquier cambio.
type RequestSession struct {
	sess  *session.Session
	dirty bool
}

// Load obtiene (o inicia) la sesión de quien llama.
func (s *Sessions) Load(c *fiber.Ctx) (*RequestSession, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &RequestSession{sess: sess}, nil
}

// Cart decodifica el carrito guardado. Si falta o no se puede leer, vuelve vacío.
func (rs *RequestSession) Cart() *cart.Cart {
	c := cart.New()
	raw, ok := rs.sess.Get(keyCart).(string)
	if !ok || raw == "" {
		return c
	}
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return cart.New()
	}
	return c
}

// SetCart guarda c, o borra la clave si c está vacío.
func (rs *RequestSession) SetCart(c *cart.Cart) error {
	rs.dirty = true
	if c == nil || c.IsEmpty() {
		rs.sess.Delete(keyCart)
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	rs.sess.Set(keyCart, string(raw))
	return nil
}

// AddFlash encola un mensaje para la siguiente página.
func (rs *RequestSession) AddFlash(kind, text string) {
	flashes := rs.flashes()
	flashes = append(flashes, dto.Flash{Kind: kind, Text: text})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	rs.sess.Set(keyFlashes, string(raw))
	rs.dirty = true
}

// PopFlashes devuelve los mensajes encolados y los limpia.
func (rs *RequestSession) PopFlashes() []dto.Flash {
	flashes := rs.flashes()
	if len(flashes) > 0 {
		rs.sess.Delete(keyFlashes)
		rs.dirty = true
	}
	return flashes
}

func (rs *RequestSession) flashes() []dto.Flash {
	raw, ok := rs.sess.Get(keyFlashes).(string)
	if !ok || raw == "" {
		return nil
	}
	var out []dto.Flash
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// Save persiste los cambios, si hay. La sesión no debe usarse después.
func (rs *RequestSession) Save() error {
	if !rs.dirty {
		return nil
	}
	if err := rs.sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Destroy borra la sesión y su cookie.
func (rs *RequestSession) Destroy() error {
	return rs.sess.Destroy()
}

// flash carga la sesión, encola un mensaje y la guarda. Se usa justo antes de un redirect.
func (s *Sessions) flash(c *fiber.Ctx, kind, text string) error {
	rs, err := s.Load(c)
	if err != nil {
		return err
	}
	rs.AddFlash(kind, text)
	return rs.Save()
}
