package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/internal/application/auth"
	"github.com/zeenatstore/zeenat-store/internal/application/catalog"
	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/application/report"
	"github.com/zeenatstore/zeenat-store/internal/application/sales"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/memory"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/pdf"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/spreadsheet"
	apphttp "github.com/zeenatstore/zeenat-store/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de test sobre el driver en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	authUC *auth.AuthUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	deps := apphttp.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     catalog.NewProductUseCase(store, store.Products(), store.Categories(), store.Movements()),
		CartUC:        sales.NewCartUseCase(store.Products()),
		CheckoutUC:    sales.NewCheckoutUseCase(store),
		SaleUC:        sales.NewSaleUseCase(store.Sales(), pdf.NewInvoiceGenerator("Test Store")),
		ReportUC:      report.NewReportUseCase(store.Reports(), store.Products(), store.Sales(), spreadsheet.NewExporter(), 10),
		Authorizer:    access.DefaultPolicy(),
		Sessions:      apphttp.NewSessions(nil, time.Hour, false),
		JWTSecret:     testJWTSecret,
		TokenTTL:      time.Hour,
		StoreName:     "Test Store",
		StorageDriver: "memory",
	}
	app := apphttp.NewServer(apphttp.ServerConfig{AppName: "test"}, nil, deps)
	return &testEnv{app: app, store: store, authUC: authUC}
}

func (e *testEnv) seedProduct(t *testing.T, name string, price string, qty int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	cat, err := e.store.Categories().GetByName(ctx, "General")
	require.NoError(t, err)
	if cat == nil {
		cat = &entity.Category{ID: uuid.New().String(), Name: "General", CreatedAt: time.Now()}
		require.NoError(t, e.store.Categories().Create(ctx, cat))
	}
	now := time.Now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		CategoryID: cat.ID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, e.store.Products().Create(ctx, p))
	return p
}

// client conserva las cookies entre peticiones como un navegador.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func (e *testEnv) clientAs(t *testing.T, username string, roles ...string) *client {
	c := &client{t: t, app: e.app, cookies: map[string]*http.Cookie{}}
	if username != "" {
		c.cookies[apphttp.TokenCookie] = &http.Cookie{Name: apphttp.TokenCookie, Value: tokenFor(t, username, false, roles...)}
	}
	return c
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
	}
	return resp
}

func (c *client) get(path string) *http.Response {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *http.Response {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return c.do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Control de acceso sobre las rutas reales
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Unauthenticated_RedirectsWithNext(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clientAs(t, "").get("/products")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fproducts", resp.Header.Get("Location"))
}

func TestRouter_RolePolicy(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		role string
		path string
		want int
	}{
		{"cashier", "/", http.StatusOK},
		{"cashier", "/sales/new", http.StatusOK},
		{"cashier", "/sales", http.StatusOK},
		{"cashier", "/products", http.StatusForbidden},
		{"cashier", "/reports/inventory", http.StatusForbidden},
		{"cashier", "/reports/low-stock", http.StatusForbidden},
		{"manager", "/products", http.StatusOK},
		{"manager", "/reports/inventory", http.StatusOK},
		{"manager", "/reports/sales", http.StatusOK},
		{"manager", "/reports/low-stock", http.StatusOK},
		{"admin", "/products/new", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.path, func(t *testing.T) {
			resp := env.clientAs(t, tc.role, tc.role).get(tc.path)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clientAs(t, "").get("/health")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "memory", body.Storage)
}

func TestRouter_UnknownSale_NotFoundPage(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clientAs(t, "manager", "manager").get("/sales/" + uuid.New().String())
	body := readBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / logout
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginRedirectsToNext(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.authUC.EnsureUser(context.Background(), dto.SeedUser{
		Username: "cashier1", Password: "s3cret-pass", Roles: []string{"cashier"},
	})
	require.NoError(t, err)

	c := env.clientAs(t, "")
	resp := c.post("/login", url.Values{
		"username": {"cashier1"},
		"password": {"s3cret-pass"},
		"next":     {"/sales/new"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sales/new", resp.Header.Get("Location"))
	require.Contains(t, c.cookies, apphttp.TokenCookie)

	resp = c.get("/sales/new")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = c.post("/logout", url.Values{})
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.NotContains(t, c.cookies, apphttp.TokenCookie)
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.authUC.EnsureUser(context.Background(), dto.SeedUser{
		Username: "cashier1", Password: "s3cret-pass", Roles: []string{"cashier"},
	})
	require.NoError(t, err)

	resp := env.clientAs(t, "").post("/login", url.Values{
		"username": {"cashier1"},
		"password": {"wrong"},
	})
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Please enter a correct username and password")
}

func TestRouter_LoginIgnoresOffsiteNext(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.authUC.EnsureUser(context.Background(), dto.SeedUser{
		Username: "manager1", Password: "s3cret-pass", Roles: []string{"manager"},
	})
	require.NoError(t, err)

	resp := env.clientAs(t, "").post("/login", url.Values{
		"username": {"manager1"},
		"password": {"s3cret-pass"},
		"next":     {"//evil.example.com"},
	})
	resp.Body.Close()
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pantalla de venta y checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"2"}})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// mismo producto otra vez: se suman las cantidades
	resp = c.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"1"}})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	body := readBody(t, c.get("/sales/new"))
	assert.Contains(t, body, "Added Shirt to cart")
	assert.Contains(t, body, "75.00")

	resp = c.post("/sales/new/checkout", url.Values{"customer_name": {"Jane"}})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/sales/"), location)

	body = readBody(t, c.get(location))
	assert.Contains(t, body, "Sale #1 - Jane")
	assert.Contains(t, body, "Sale completed successfully!")

	p, err := env.store.Products().GetByID(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)

	movements, err := env.store.Movements().ListByProduct(ctx, shirt.ID, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementOUT, movements[0].Direction)
	assert.Equal(t, 3, movements[0].Quantity)

	// el carrito quedó vacío
	body = readBody(t, c.get("/sales/new"))
	assert.Contains(t, body, "Cart is empty.")

	resp = c.get(location + "/invoice")
	pdfBody := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="invoice_1.pdf"`)
	assert.True(t, strings.HasPrefix(pdfBody, "%PDF"))
}

func TestRouter_AddItem_OverStock_ShowsInlineError(t *testing.T) {
	env := newTestEnv(t)
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"6"}})
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Only 5 units available in stock")
}

func TestRouter_AddItem_ByBarcode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)
	shirt.Barcode = "8901234"
	require.NoError(t, env.store.Products().Update(ctx, shirt))
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/items", url.Values{"barcode": {"8901234"}, "quantity": {"1"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = c.post("/sales/new/items", url.Values{"barcode": {"000"}, "quantity": {"1"}})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "No product found with this barcode")
}

func TestRouter_CheckoutEmptyCart_RedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/checkout", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sales/new", resp.Header.Get("Location"))

	body := readBody(t, c.get("/sales/new"))
	assert.Contains(t, body, "Cart is empty")
}

func TestRouter_CheckoutInsufficientStock_NothingWritten(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"4"}})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// el stock baja sin que el carrito lo sepa
	require.NoError(t, env.store.Products().UpdateQuantity(ctx, shirt.ID, 3))

	resp = c.post("/sales/new/checkout", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sales/new", resp.Header.Get("Location"))

	body := readBody(t, c.get("/sales/new"))
	assert.Contains(t, body, "Not enough stock for Shirt: requested 4, available 3")

	list, err := env.store.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	p, err := env.store.Products().GetByID(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
}

func TestRouter_CheckoutDiscountAboveTotal_Rejected(t *testing.T) {
	env := newTestEnv(t)
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)
	c := env.clientAs(t, "cashier", "cashier")

	resp := c.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"1"}})
	resp.Body.Close()

	resp = c.post("/sales/new/checkout", url.Values{"discount_amount": {"30"}})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Discount must be between 0 and the cart total.")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CreateProduct(t *testing.T) {
	env := newTestEnv(t)
	c := env.clientAs(t, "manager", "manager")

	resp := c.post("/products/new", url.Values{
		"name":             {"Scarf"},
		"new_category":     {"Accessories"},
		"price":            {"12.50"},
		"quantity":         {"7"},
		"discount_percent": {"0"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))

	body := readBody(t, c.get("/products"))
	assert.Contains(t, body, "Product created successfully.")
	assert.Contains(t, body, "Scarf")
	assert.Contains(t, body, "Accessories")
}

func TestRouter_CreateProduct_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	c := env.clientAs(t, "manager", "manager")

	resp := c.post("/products/new", url.Values{
		"name":         {"Scarf"},
		"new_category": {"Accessories"},
		"price":        {"0"},
		"quantity":     {"-1"},
	})
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Price must be greater than 0.00")
	assert.Contains(t, body, "Quantity cannot be negative")
}

func TestRouter_DeleteSoldProduct_Refused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shirt := env.seedProduct(t, "Shirt", "25.00", 5)

	cashier := env.clientAs(t, "cashier", "cashier")
	resp := cashier.post("/sales/new/items", url.Values{"product": {shirt.ID}, "quantity": {"1"}})
	resp.Body.Close()
	resp = cashier.post("/sales/new/checkout", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	manager := env.clientAs(t, "manager", "manager")
	resp = manager.post("/products/"+shirt.ID+"/delete", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	body := readBody(t, manager.get("/products"))
	assert.Contains(t, body, "Cannot delete this product because it is referenced by existing sales.")
	p, err := env.store.Products().GetByID(ctx, shirt.ID)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestRouter_ExportInventory(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Shirt", "25.00", 5)

	resp := env.clientAs(t, "manager", "manager").get("/reports/inventory/export")
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="inventory_report.xlsx"`)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(body, "PK"), "xlsx is a zip archive")
}

func TestRouter_SalesReport_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clientAs(t, "manager", "manager").get("/reports/sales?start_date=2024-13-01")
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Enter a valid date (YYYY-MM-DD).")
}

func TestRouter_LowStockReport(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Socks", "3.00", 2)
	env.seedProduct(t, "Coat", "80.00", 40)

	body := readBody(t, env.clientAs(t, "manager", "manager").get("/reports/low-stock"))
	assert.Contains(t, body, "Socks")
	assert.NotContains(t, body, "Coat")
}
