package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot captured when a line is added to a cart.
// Its price is never re-fetched for the lifetime of the cart.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Size     string          `json:"size,omitempty"`
	Flavor   string          `json:"flavor,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
}

// DisplayName composes the receipt label: name, then "(size)", then "- flavor".
func (p Product) DisplayName() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.Name))
	if size := strings.TrimSpace(p.Size); size != "" {
		b.WriteString(" (")
		b.WriteString(size)
		b.WriteString(")")
	}
	if flavor := strings.TrimSpace(p.Flavor); flavor != "" {
		b.WriteString(" - ")
		b.WriteString(flavor)
	}
	return b.String()
}

// Addon is an optional extra priced per unit.
type Addon struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AddonCatalog holds the add-ons offered for a line, keyed by id.
type AddonCatalog map[string]Addon

// NewAddonCatalog indexes the provided add-ons by id. Later duplicates win.
func NewAddonCatalog(addons ...Addon) AddonCatalog {
	catalog := make(AddonCatalog, len(addons))
	for _, addon := range addons {
		catalog[addon.ID] = addon
	}
	return catalog
}

// Clone returns an independent copy of the catalog.
func (c AddonCatalog) Clone() AddonCatalog {
	if c == nil {
		return nil
	}
	out := make(AddonCatalog, len(c))
	for id, addon := range c {
		out[id] = addon
	}
	return out
}

// AddonSelection maps add-on id to the selected quantity.
type AddonSelection map[string]int

// Pruned returns a copy without zero or negative quantities.
func (s AddonSelection) Pruned() AddonSelection {
	out := make(AddonSelection, len(s))
	for id, qty := range s {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// LineItem is one product entry in a cart.
type LineItem struct {
	Product  Product        `json:"product"`
	Quantity int            `json:"quantity"`
	Addons   AddonSelection `json:"addons,omitempty"`
	Catalog  AddonCatalog   `json:"catalog,omitempty"`
}
