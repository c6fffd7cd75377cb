package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/catalog"
	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

const msgProductInUse = "Cannot delete this product because it is referenced by existing sales."

// ProductHandler sirve las páginas del catálogo (manage_products).
type ProductHandler struct {
	uc    *catalog.ProductUseCase
	pages *pages
}

// NewProductHandler crea el handler.
func NewProductHandler(uc *catalog.ProductUseCase, p *pages) *ProductHandler {
	return &ProductHandler{uc: uc, pages: p}
}

// List GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.render(c, "products/list", fiber.Map{
		"Title":    "Products",
		"Products": list,
	})
}

// NewPage GET /products/new
func (h *ProductHandler) NewPage(c *fiber.Ctx) error {
	return h.renderForm(c, nil, dto.ProductForm{Quantity: "0", DiscountPercent: "0"}, nil)
}

// Create POST /products/new
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	_, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if handled, rerr := h.formError(c, nil, in, err); handled {
		return rerr
	}
	if err := h.pages.sessions.flash(c, dto.FlashSuccess, "Product created successfully."); err != nil {
		return err
	}
	return c.Redirect("/products")
}

// EditPage GET /products/:id/edit
func (h *ProductHandler) EditPage(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.renderForm(c, p, dto.ProductFormFrom(p), nil)
}

// Update POST /products/:id/edit
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()
	current, err := h.uc.Get(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	_, err = h.uc.Update(ctx, GetUserID(c), current.ID, in)
	if handled, rerr := h.formError(c, current, in, err); handled {
		return rerr
	}
	if err := h.pages.sessions.flash(c, dto.FlashSuccess, "Product updated successfully."); err != nil {
		return err
	}
	return c.Redirect("/products")
}

// DeletePage GET /products/:id/delete pide confirmación.
func (h *ProductHandler) DeletePage(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.pages.render(c, "products/delete", fiber.Map{
		"Title":   "Delete product",
		"Product": p,
	})
}

// Delete POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrConflict):
		if err := h.pages.sessions.flash(c, dto.FlashError, msgProductInUse); err != nil {
			return err
		}
		return c.Redirect("/products")
	case err != nil:
		return err
	}
	if err := h.pages.sessions.flash(c, dto.FlashSuccess, "Product deleted successfully."); err != nil {
		return err
	}
	return c.Redirect("/products")
}

// Movements GET /products/:id/movements
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	hist, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.pages.render(c, "products/movements", fiber.Map{
		"Title":     "Stock history",
		"Product":   hist.Product,
		"Movements": hist.Movements,
	})
}

// formError vuelve a pintar el formulario ante errores de validación. handled es false si err es nil.
func (h *ProductHandler) formError(c *fiber.Ctx, p *entity.Product, in dto.ProductForm, err error) (handled bool, _ error) {
	if err == nil {
		return false, nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.Status(fiber.StatusUnprocessableEntity)
		return true, h.renderForm(c, p, in, verr.Fields)
	}
	return true, err
}

func (h *ProductHandler) renderForm(c *fiber.Ctx, p *entity.Product, form dto.ProductForm, fieldErrors map[string]string) error {
	categories, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return err
	}
	title, action := "Add product", "/products/new"
	if p != nil {
		title, action = "Edit product", "/products/"+p.ID+"/edit"
	}
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	return h.pages.render(c, "products/form", fiber.Map{
		"Title":      title,
		"Action":     action,
		"Product":    p,
		"Form":       form,
		"Categories": categories,
		"Errors":     fieldErrors,
	})
}
