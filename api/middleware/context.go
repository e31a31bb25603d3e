package middleware

import (
	"context"

	"github.com/sandwichpos/pos-backend/pkg/enums"
)

type contextKey string

const (
	ctxCashierID  contextKey = "cashier_id"
	ctxTerminalID contextKey = "terminal_id"
	ctxRole       contextKey = "staff_role"
)

func CashierIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCashierID).(string); ok {
		return v
	}
	return ""
}

func TerminalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTerminalID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) enums.StaffRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.StaffRole); ok {
		return v
	}
	return ""
}

// WithCashierID injects the cashier identifier into the context.
func WithCashierID(ctx context.Context, cashierID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCashierID, cashierID)
}

// WithTerminalID injects the terminal identifier into the context for downstream handlers.
func WithTerminalID(ctx context.Context, terminalID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTerminalID, terminalID)
}

func WithRole(ctx context.Context, role enums.StaffRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// principalSlot lets outer middleware see who a request belonged to after the
// inner Auth middleware has run on a derived context.
type principalSlot struct {
	cashierID  string
	terminalID string
}

const ctxPrincipalSlot contextKey = "principal_slot"

func withPrincipalSlot(ctx context.Context) (context.Context, *principalSlot) {
	slot := &principalSlot{}
	return context.WithValue(ctx, ctxPrincipalSlot, slot), slot
}

func notePrincipal(ctx context.Context, cashierID, terminalID string) {
	if slot, ok := ctx.Value(ctxPrincipalSlot).(*principalSlot); ok {
		slot.cashierID = cashierID
		slot.terminalID = terminalID
	}
}
