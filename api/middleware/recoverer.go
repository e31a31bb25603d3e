package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sandwichpos/pos-backend/api/responses"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

// Recoverer turns a handler panic into a 500 envelope. The log line names the
// cashier and terminal when Auth got far enough to identify them.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, slot := withPrincipalSlot(r.Context())
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				logCtx := r.Context()
				if logg != nil {
					fields := map[string]any{
						"panic":  fmt.Sprint(rec),
						"method": r.Method,
						"path":   r.URL.Path,
					}
					if slot.cashierID != "" {
						fields["cashier_id"] = slot.cashierID
						fields["terminal_id"] = slot.terminalID
					}
					logCtx = logg.WithFields(logCtx, fields)
					logg.Error(logCtx, "panic.recovered", err)
				}
				responses.WriteError(logCtx, nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
