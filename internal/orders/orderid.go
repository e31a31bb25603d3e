package orders

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
)

// OrderIDPrefix is prepended to every generated order id.
const OrderIDPrefix = "SALE"

const orderIDMinDigits = 3

var orderIDPattern = regexp.MustCompile(`^` + OrderIDPrefix + `(\d+)$`)

// OrderIDLister returns every order id the sales history already knows.
type OrderIDLister interface {
	ListOrderIDs(ctx context.Context) ([]string, error)
}

// NextOrderID returns SALE followed by max(existing)+1, zero padded to at
// least three digits. Ids that do not match the pattern, or whose numeric part
// cannot be incremented within an int64, are ignored. With no usable ids it returns SALE001.
func NextOrderID(existing []string) string {
	var highest int64
	for _, id := range existing {
		n, ok := ParseOrderNumber(id)
		if !ok {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return FormatOrderID(highest + 1)
}

// ParseOrderNumber extracts the numeric part of a well-formed order id.
func ParseOrderNumber(id string) (int64, bool) {
	match := orderIDPattern.FindStringSubmatch(id)
	if match == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || n == math.MaxInt64 {
		return 0, false
	}
	return n, true
}

// FormatOrderID renders n with the SALE prefix and minimum padding.
func FormatOrderID(n int64) string {
	return fmt.Sprintf("%s%0*d", OrderIDPrefix, orderIDMinDigits, n)
}

// IsOrderID reports whether id has the SALE<digits> shape.
func IsOrderID(id string) bool {
	return orderIDPattern.MatchString(id)
}

// Generator fetches existing ids and computes the next one.
type Generator struct {
	lister OrderIDLister
}

// NewGenerator binds a generator to its id source.
func NewGenerator(lister OrderIDLister) *Generator {
	return &Generator{lister: lister}
}

// Next fetches the current ids and returns the following one. A fetch failure
// is returned as a dependency error; there is no local fallback.
func (g *Generator) Next(ctx context.Context) (string, error) {
	if g == nil || g.lister == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "order id source not configured")
	}
	existing, err := g.lister.ListOrderIDs(ctx)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDependency {
			return "", err
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch existing order ids")
	}
	return NextOrderID(existing), nil
}
