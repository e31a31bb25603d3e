package orders

import "errors"

var (
	errEmptyCart             = errors.New("cart must contain at least one item")
	errPaymentMethodRequired = errors.New("payment_method is required")
	errCreditNeedsCustomer   = errors.New("customer.name is required for credit sales")
)
