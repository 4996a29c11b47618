package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shopwave/shopwave-backend/api/middleware"
	"github.com/shopwave/shopwave-backend/api/responses"
	"github.com/shopwave/shopwave-backend/internal/checkout"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"github.com/shopwave/shopwave-backend/pkg/logger"
)

// CheckoutSubmit runs the simulated checkout. Field-level validation happens
// in the service so the response carries the full set of missing fields, not
// just the first.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var payload checkout.Input
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		result, err := svc.Submit(ctx, userID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
