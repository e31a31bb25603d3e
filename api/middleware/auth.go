package middleware

import (
	"net/http"
	"strings"

	"github.com/sandwichpos/pos-backend/api/responses"
	pkgAuth "github.com/sandwichpos/pos-backend/pkg/auth"
	"github.com/sandwichpos/pos-backend/pkg/config"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

// Auth validates a terminal bearer token and seeds the request context with its claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			notePrincipal(r.Context(), claims.CashierID, claims.TerminalID)

			ctx := WithCashierID(r.Context(), claims.CashierID)
			ctx = WithTerminalID(ctx, claims.TerminalID)
			ctx = WithRole(ctx, claims.Role)

			if logg != nil {
				ctx = logg.WithCashierID(ctx, claims.CashierID)
				ctx = logg.WithTerminalID(ctx, claims.TerminalID)
				ctx = logg.WithField(ctx, "staff_role", claims.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
