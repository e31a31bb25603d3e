package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/sandwichpos/pos-backend/api/validators"
	"github.com/sandwichpos/pos-backend/internal/orders"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

const (
	maxNameLength  = 200
	maxLabelLength = 64
	maxNotesLength = 500
)

// DraftRequest is the terminal's order draft. Money accepts JSON numbers or strings.
type DraftRequest struct {
	Items          []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Customer       CustomerRequest   `json:"customer"`
	Discount       decimal.Decimal   `json:"discount" validate:"gte=0"`
	DeliveryFee    decimal.Decimal   `json:"delivery_fee" validate:"gte=0"`
	PaymentMethod  string            `json:"payment_method" validate:"required,max=64"`
	AmountReceived decimal.Decimal   `json:"amount_received" validate:"gte=0"`
}

type LineItemRequest struct {
	Product  ProductRequest `json:"product"`
	Quantity int            `json:"quantity" validate:"min=1"`
	Addons   map[string]int `json:"addons,omitempty"`
	Catalog  []AddonRequest `json:"catalog,omitempty" validate:"omitempty,dive"`
}

type ProductRequest struct {
	ID       string          `json:"id" validate:"max=64"`
	Name     string          `json:"name" validate:"required,max=200"`
	Category string          `json:"category,omitempty" validate:"max=64"`
	Size     string          `json:"size,omitempty" validate:"max=64"`
	Flavor   string          `json:"flavor,omitempty" validate:"max=64"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Image    string          `json:"image,omitempty" validate:"max=2048"`
}

type AddonRequest struct {
	ID    string          `json:"id" validate:"required,max=64"`
	Name  string          `json:"name" validate:"max=200"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

type CustomerRequest struct {
	Name    string `json:"name,omitempty" validate:"max=200"`
	Number  string `json:"number,omitempty" validate:"max=64"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Notes   string `json:"notes,omitempty" validate:"max=500"`
}

// ToDraft converts the request into a checkout draft, adding each line
// through the cart so its quantity and price checks apply.
func (r DraftRequest) ToDraft() (orders.Draft, error) {
	cart := pricing.Cart{Items: make([]pricing.LineItem, 0, len(r.Items))}
	for i, item := range r.Items {
		addons := make([]pricing.Addon, 0, len(item.Catalog))
		for _, addon := range item.Catalog {
			addons = append(addons, pricing.Addon{
				ID:    validators.SanitizeString(addon.ID, maxLabelLength),
				Name:  validators.SanitizeString(addon.Name, maxNameLength),
				Price: addon.Price,
			})
		}
		product := pricing.Product{
			ID:       validators.SanitizeString(item.Product.ID, maxLabelLength),
			Name:     validators.SanitizeString(item.Product.Name, maxNameLength),
			Category: validators.SanitizeString(item.Product.Category, maxLabelLength),
			Size:     validators.SanitizeString(item.Product.Size, maxLabelLength),
			Flavor:   validators.SanitizeString(item.Product.Flavor, maxLabelLength),
			Price:    item.Product.Price,
			Image:    item.Product.Image,
		}
		err := cart.Add(product, item.Quantity, pricing.AddonSelection(item.Addons), pricing.NewAddonCatalog(addons...))
		if err != nil {
			return orders.Draft{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart line").WithDetails(map[string]any{
				"item":  i,
				"error": pkgerrors.As(err).Message(),
			})
		}
	}

	return orders.Draft{
		Cart: cart,
		Customer: orders.Customer{
			Name:    validators.SanitizeString(r.Customer.Name, maxNameLength),
			Number:  validators.SanitizeString(r.Customer.Number, maxLabelLength),
			Address: validators.SanitizeString(r.Customer.Address, maxNotesLength),
			Notes:   validators.SanitizeString(r.Customer.Notes, maxNotesLength),
		},
		Discount:       r.Discount,
		DeliveryFee:    r.DeliveryFee,
		PaymentMethod:  enums.ParsePaymentMethod(r.PaymentMethod),
		AmountReceived: r.AmountReceived,
	}, nil
}
