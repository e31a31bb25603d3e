package controllers

import (
	"net/http"

	cartdto "github.com/sandwichpos/pos-backend/api/controllers/cart/dto"
	"github.com/sandwichpos/pos-backend/api/responses"
	"github.com/sandwichpos/pos-backend/api/validators"
	checkoutsvc "github.com/sandwichpos/pos-backend/internal/checkout"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

// Checkout confirms a draft, records the sale and returns the receipt.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		receipt, err := svc.Checkout(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartdto.NewReceiptResponse(receipt))
	}
}
