package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
)

const (
	maxNameLen    = 100
	maxAttrLen    = 50
	maxBarcodeLen = 50

	// products.price es NUMERIC(10, 2).
	priceMaxDigits   = 10
	priceMaxDecimals = 2
)

// productFields es un ProductForm ya validado.
type productFields struct {
	name        string
	categoryID  string
	newCategory string
	size        string
	color       string
	price       decimal.Decimal
	quantity    int
	barcode     string
	discount    int
}

func parseProductForm(in dto.ProductForm) (productFields, error) {
	v := domain.NewValidationError()
	f := productFields{
		name:        strings.TrimSpace(in.Name),
		categoryID:  strings.TrimSpace(in.CategoryID),
		newCategory: strings.TrimSpace(in.NewCategory),
		size:        strings.TrimSpace(in.Size),
		color:       strings.TrimSpace(in.Color),
		barcode:     strings.TrimSpace(in.Barcode),
	}

	switch {
	case f.name == "":
		v.Add("name", "This field is required.")
	case utf8.RuneCountInString(f.name) > maxNameLen:
		v.Add("name", "Ensure this value has at most 100 characters.")
	}
	if f.categoryID == "" && f.newCategory == "" {
		v.Add("category", "Select a category or enter a new one.")
	}
	if utf8.RuneCountInString(f.newCategory) > maxNameLen {
		v.Add("new_category", "Ensure this value has at most 100 characters.")
	}
	if utf8.RuneCountInString(f.size) > maxAttrLen {
		v.Add("size", "Ensure this value has at most 50 characters.")
	}
	if utf8.RuneCountInString(f.color) > maxAttrLen {
		v.Add("color", "Ensure this value has at most 50 characters.")
	}
	if utf8.RuneCountInString(f.barcode) > maxBarcodeLen {
		v.Add("barcode", "Ensure this value has at most 50 characters.")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	switch {
	case err != nil:
		v.Add("price", "Enter a number.")
	case !price.GreaterThan(decimal.Zero):
		v.Add("price", "Price must be greater than 0.00")
	default:
		if msg := checkPriceDigits(price); msg != "" {
			v.Add("price", msg)
		} else {
			f.price = price
		}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	switch {
	case err != nil:
		v.Add("quantity", "Enter a whole number.")
	case qty < 0:
		v.Add("quantity", "Quantity cannot be negative")
	case qty > math.MaxInt32:
		v.Add("quantity", "Ensure this value is less than or equal to 2147483647.")
	default:
		f.quantity = qty
	}

	discount := 0
	if s := strings.TrimSpace(in.DiscountPercent); s != "" {
		discount, err = strconv.Atoi(s)
		if err != nil {
			v.Add("discount_percent", "Enter a whole number.")
		}
	}
	switch {
	case discount < 0:
		v.Add("discount_percent", "Discount cannot be negative")
	case discount > 100:
		v.Add("discount_percent", "Discount cannot exceed 100%")
	default:
		f.discount = discount
	}

	return f, v.OrNil()
}

// checkPriceDigits cuenta dígitos como los guarda la columna de precio, ceros finales
// incluidos, y devuelve el mensaje del formulario si el valor no cabe.
func checkPriceDigits(price decimal.Decimal) string {
	coef := len(price.Coefficient().String())
	exp := int(price.Exponent())

	digits, decimals := coef, 0
	switch {
	case exp >= 0:
		digits = coef + exp
	case -exp > coef:
		digits, decimals = -exp, -exp
	default:
		decimals = -exp
	}
	whole := digits - decimals

	switch {
	case digits > priceMaxDigits:
		return "Ensure that there are no more than 10 digits in total."
	case decimals > priceMaxDecimals:
		return "Ensure that there are no more than 2 decimal places."
	case whole > priceMaxDigits-priceMaxDecimals:
		return "Ensure that there are no more than 8 digits before the decimal point."
	}
	return ""
}
