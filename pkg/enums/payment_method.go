package enums

import "strings"

// PaymentMethod describes how a customer settles a sale at the counter.
// Any label outside the known set is an "other" method: it is representable
// and carried through checkout, but has no backend payment method id.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCredit PaymentMethod = "Credit"
	PaymentMethodGCash  PaymentMethod = "GCash"
)

var paymentMethodIDs = map[PaymentMethod]int{
	PaymentMethodCash:   1,
	PaymentMethodCredit: 2,
	PaymentMethodGCash:  3,
}

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCredit,
	PaymentMethodGCash,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is one of the known methods.
func (p PaymentMethod) IsValid() bool {
	_, ok := paymentMethodIDs[p]
	return ok
}

// IsOther reports whether the method falls outside the known set.
func (p PaymentMethod) IsOther() bool {
	return !p.IsValid()
}

// ID returns the backend payment method id, or nil for other methods.
func (p PaymentMethod) ID() *int {
	id, ok := paymentMethodIDs[p]
	if !ok {
		return nil
	}
	return &id
}

// RequiresTender reports whether the cashier collects an amount and hands back change.
func (p PaymentMethod) RequiresTender() bool {
	return p == PaymentMethodCash
}

// ParsePaymentMethod normalizes raw input. Known names match case-insensitively;
// anything else is kept verbatim (trimmed) as an other method. It never fails.
func ParsePaymentMethod(value string) PaymentMethod {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validPaymentMethods {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate
		}
	}
	return PaymentMethod(trimmed)
}

// PaymentMethodFromID maps a backend id back to its method.
func PaymentMethodFromID(id int) (PaymentMethod, bool) {
	for method, candidate := range paymentMethodIDs {
		if candidate == id {
			return method, true
		}
	}
	return "", false
}
