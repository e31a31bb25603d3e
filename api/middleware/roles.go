package middleware

import (
	"net/http"

	"github.com/sandwichpos/pos-backend/api/responses"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

func RequireRole(role enums.StaffRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !RoleFromContext(r.Context()).Allows(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required").
					WithDetails(map[string]any{"required_role": role.String()}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
