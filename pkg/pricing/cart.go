package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
)

// Cart is an ordered list of line items. Insertion order is display order.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Add appends a line. Quantity must be at least one; zero add-on quantities are
// dropped. The selection and catalog are copied so later edits by the caller do
// not reprice the line.
func (c *Cart) Add(product Product, quantity int, addons AddonSelection, catalog AddonCatalog) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if product.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	for id, addon := range catalog {
		if addon.Price.IsNegative() {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "add-on %s price cannot be negative", id)
		}
	}
	c.Items = append(c.Items, LineItem{
		Product:  product,
		Quantity: quantity,
		Addons:   addons.Pruned(),
		Catalog:  catalog.Clone(),
	})
	return nil
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if quantity <= 0 {
		return c.Remove(index)
	}
	c.Items[index].Quantity = quantity
	return nil
}

// SetAddon sets an add-on quantity on a line; zero or less removes the add-on.
func (c *Cart) SetAddon(index int, addonID string, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	item := &c.Items[index]
	if quantity <= 0 {
		delete(item.Addons, addonID)
		return nil
	}
	if item.Addons == nil {
		item.Addons = AddonSelection{}
	}
	item.Addons[addonID] = quantity
	return nil
}

// Remove drops the line at index, keeping the order of the rest.
func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= c.Len() {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "cart line %d not found", index)
	}
	return nil
}

// Validate checks the cart invariants and reports every violation at once.
func (c Cart) Validate() error {
	errs := c.Violations()
	if errs == nil {
		return nil
	}
	return ViolationError("invalid cart", errs)
}

// Violations returns every broken line invariant combined with multierr, or nil.
func (c Cart) Violations() error {
	var errs error
	for i, item := range c.Items {
		if strings.TrimSpace(item.Product.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("items[%d].product.name is required", i))
		}
		if item.Quantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("items[%d].quantity must be at least 1", i))
		}
		if item.Product.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("items[%d].product.price cannot be negative", i))
		}
		for id, qty := range item.Addons {
			if qty < 1 {
				errs = multierr.Append(errs, fmt.Errorf("items[%d].addons[%s] must be at least 1", i, id))
			}
		}
		for id, addon := range item.Catalog {
			if addon.Price.IsNegative() {
				errs = multierr.Append(errs, fmt.Errorf("items[%d].catalog[%s].price cannot be negative", i, id))
			}
		}
	}
	return errs
}

// ViolationError converts accumulated violations into a validation error listing each one.
func ViolationError(message string, errs error) error {
	all := multierr.Errors(errs)
	violations := make([]string, 0, len(all))
	for _, err := range all {
		violations = append(violations, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, message).WithDetails(map[string]any{
		"violations": violations,
	})
}

// NonNegative reports a violation when amount is below zero.
func NonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%s cannot be negative", field)
	}
	return nil
}
