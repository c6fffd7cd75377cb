package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/application/sales"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/cart"
)

const (
	msgEmptyCart     = "Cart is empty"
	msgProductGone   = "A product in the cart no longer exists. Remove it and try again."
	msgSaleCompleted = "Sale completed successfully!"
	msgCartCleared   = "Cart cleared"
)

// SaleHandler sirve la pantalla de venta (carrito + checkout) y las páginas de ventas.
type SaleHandler struct {
	cartUC     *sales.CartUseCase
	checkoutUC *sales.CheckoutUseCase
	saleUC     *sales.SaleUseCase
	pages      *pages
}

// NewSaleHandler crea el handler.
func NewSaleHandler(cartUC *sales.CartUseCase, checkoutUC *sales.CheckoutUseCase, saleUC *sales.SaleUseCase, p *pages) *SaleHandler {
	return &SaleHandler{cartUC: cartUC, checkoutUC: checkoutUC, saleUC: saleUC, pages: p}
}

// ── Pantalla de venta ───────────────────────────────────────────────────────────────

// CartPage GET /sales/new
func (h *SaleHandler) CartPage(c *fiber.Ctx) error {
	rs, err := h.pages.sessions.Load(c)
	if err != nil {
		return err
	}
	return h.renderCart(c, rs, rs.Cart(), cartForms{})
}

// AddItem POST /sales/new/items
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	rs, err := h.pages.sessions.Load(c)
	if err != nil {
		return err
	}
	cur := rs.Cart()
	product, err := h.cartUC.AddItem(c.UserContext(), cur, in)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.renderCart(c, rs, cur, cartForms{Add: in, AddErrors: verr.Fields})
	}
	if err != nil {
		return err
	}
	if err := rs.SetCart(cur); err != nil {
		return err
	}
	rs.AddFlash(dto.FlashSuccess, fmt.Sprintf("Added %s to cart", product.DisplayName()))
	if err := rs.Save(); err != nil {
		return err
	}
	return c.Redirect("/sales/new")
}

// RemoveItem POST /sales/new/items/:productID/remove
func (h *SaleHandler) RemoveItem(c *fiber.Ctx) error {
	rs, err := h.pages.sessions.Load(c)
	if err != nil {
		return err
	}
	cur := rs.Cart()
	h.cartUC.RemoveItem(cur, c.Params("productID"))
	if err := rs.SetCart(cur); err != nil {
		return err
	}
	if err := rs.Save(); err != nil {
		return err
	}
	return c.Redirect("/sales/new")
}

// Clear POST /sales/new/clear
func (h *SaleHandler) Clear(c *fiber.Ctx) error {
	rs, err := h.pages.sessions.Load(c)
	if err != nil {
		return err
	}
	if err := rs.SetCart(nil); err != nil {
		return err
	}
	rs.AddFlash(dto.FlashInfo, msgCartCleared)
	if err := rs.Save(); err != nil {
		return err
	}
	return c.Redirect("/sales/new")
}

// Checkout POST /sales/new/checkout
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	rs, err := h.pages.sessions.Load(c)
	if err != nil {
		return err
	}
	cur := rs.Cart()

	customer, discount, err := sales.ParseCheckout(in)
	if err == nil {
		sale, cerr := h.checkoutUC.Checkout(c.UserContext(), dto.CheckoutInput{
			Cart:           cur,
			CustomerName:   customer,
			DiscountAmount: discount,
			UserID:         GetUserID(c),
		})
		if cerr == nil {
			if err := rs.SetCart(nil); err != nil {
				return err
			}
			rs.AddFlash(dto.FlashSuccess, msgSaleCompleted)
			if err := rs.Save(); err != nil {
				return err
			}
			return c.Redirect("/sales/" + sale.ID)
		}
		err = cerr
	}

	var (
		verr  *domain.ValidationError
		stock *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &verr):
		c.Status(fiber.StatusUnprocessableEntity)
		return h.renderCart(c, rs, cur, cartForms{Checkout: in, CheckoutErrors: verr.Fields})
	case errors.Is(err, domain.ErrEmptyCart):
		rs.AddFlash(dto.FlashError, msgEmptyCart)
	case errors.As(err, &stock):
		rs.AddFlash(dto.FlashError, fmt.Sprintf("Not enough stock for %s: requested %d, available %d",
			stock.ProductName, stock.Requested, stock.Available))
	case errors.Is(err, domain.ErrNotFound):
		rs.AddFlash(dto.FlashError, msgProductGone)
	default:
		return err
	}
	if err := rs.Save(); err != nil {
		return err
	}
	return c.Redirect("/sales/new")
}

// cartForms lleva los valores enviados y los errores de los dos formularios de la pantalla de venta.
type cartForms struct {
	Add            dto.AddToCartRequest
	AddErrors      map[string]string
	Checkout       dto.CheckoutRequest
	CheckoutErrors map[string]string
}

func (h *SaleHandler) renderCart(c *fiber.Ctx, rs *RequestSession, cur *cart.Cart, forms cartForms) error {
	products, err := h.cartUC.Products(c.UserContext())
	if err != nil {
		return err
	}
	if forms.AddErrors == nil {
		forms.AddErrors = map[string]string{}
	}
	if forms.CheckoutErrors == nil {
		forms.CheckoutErrors = map[string]string{}
	}
	if forms.Add.Quantity == "" {
		forms.Add.Quantity = "1"
	}
	return h.pages.renderSession(c, rs, "sales/cart", fiber.Map{
		"Title":    "New sale",
		"Products": products,
		"Lines":    cur.Lines(),
		"Total":    cur.Total(),
		"Forms":    forms,
	})
}

// ── Ventas completadas ───────────────────────────────────────────────────────────

// List GET /sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	list, err := h.saleUC.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.render(c, "sales/list", fiber.Map{
		"Title": "Sales",
		"Sales": list,
	})
}

// Detail GET /sales/:id
func (h *SaleHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.saleUC.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.pages.render(c, "sales/detail", fiber.Map{
		"Title": detail.Sale.Label(),
		"Sale":  detail.Sale,
		"Items": detail.Items,
	})
}

// Invoice GET /sales/:id/invoice descarga el PDF.
func (h *SaleHandler) Invoice(c *fiber.Ctx) error {
	file, err := h.saleUC.Invoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Attachment(file.Filename)
	return c.Send(file.Content)
}
