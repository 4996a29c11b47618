package controllers

import (
	"net/http"

	"github.com/shopwave/shopwave-backend/api/middleware"
	"github.com/shopwave/shopwave-backend/api/responses"
	"github.com/shopwave/shopwave-backend/api/validators"
	"github.com/shopwave/shopwave-backend/internal/reviews"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"github.com/shopwave/shopwave-backend/pkg/logger"
)

type createReviewPayload struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Title     *string `json:"title"`
	Comment   *string `json:"comment"`
}

// ReviewsListByProduct returns a product's reviews, newest first. Public.
func ReviewsListByProduct(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListByProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ReviewsSubmit records the user's review, overwriting any prior one.
func ReviewsSubmit(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var payload createReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		action, err := svc.Submit(ctx, userID, reviews.SubmitInput{
			ProductID: payload.ProductID,
			Rating:    payload.Rating,
			Title:     payload.Title,
			Comment:   payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"action": action})
	}
}
