package cart

import (
	"net/http"

	cartdto "github.com/sandwichpos/pos-backend/api/controllers/cart/dto"
	"github.com/sandwichpos/pos-backend/api/responses"
	"github.com/sandwichpos/pos-backend/api/validators"
	checkoutsvc "github.com/sandwichpos/pos-backend/internal/checkout"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

// CartQuote prices a draft without recording anything.
func CartQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload cartdto.DraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := payload.ToDraft()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartdto.NewQuoteResponse(quote))
	}
}
