package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/pkg/money"
)

//go:embed views
var viewsFS embed.FS

const mainLayout = "layouts/main"

// NewViews carga las plantillas embebidas. Los nombres son rutas bajo views/ sin
// extensión, p. ej. "products/list".
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("views: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("money", money.Format)
	engine.AddFunc("datetime", func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") })
	engine.AddFunc("date", func(t time.Time) string { return t.Local().Format("2006-01-02") })
	return engine
}

// navLinks decide qué entradas del menú muestra el layout.
type navLinks struct {
	Dashboard bool
	Products  bool
	Sell      bool
	Sales     bool
	Reports   bool
}

// pages pinta plantillas dentro del layout principal con los datos comunes de cada página.
type pages struct {
	authz     access.Authorizer
	sessions  *Sessions // nil en las páginas de error
	storeName string
}

func (p *pages) nav(principal access.Principal) navLinks {
	can := func(perm access.Permission) bool { return p.authz.Authorize(principal, perm) == nil }
	return navLinks{
		Dashboard: can(access.PermViewDashboard),
		Products:  can(access.PermManageProducts),
		Sell:      can(access.PermSell),
		Sales:     can(access.PermViewSales),
		Reports:   can(access.PermViewReports),
	}
}

// render muestra name con los flashes pendientes. Solo carga una sesión existente.
func (p *pages) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if p.sessions == nil || c.Cookies(sessionCookie) == "" {
		return p.renderSession(c, nil, name, data)
	}
	rs, err := p.sessions.Load(c)
	if err != nil {
		return err
	}
	return p.renderSession(c, rs, name, data)
}

// renderSession es render para handlers que ya tienen la sesión. Guarda rs.
func (p *pages) renderSession(c *fiber.Ctx, rs *RequestSession, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["StoreName"] = p.storeName
	if principal, ok := PrincipalFrom(c); ok {
		data["User"] = principal.Username
		data["Nav"] = p.nav(principal)
	} else {
		data["Nav"] = navLinks{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	if rs != nil {
		data["Flashes"] = rs.PopFlashes()
		if err := rs.Save(); err != nil {
			return err
		}
	}
	return c.Render(name, data, mainLayout)
}
