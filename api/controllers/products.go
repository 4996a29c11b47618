package controllers

import (
	"net/http"
	"strings"

	"github.com/shopwave/shopwave-backend/api/responses"
	"github.com/shopwave/shopwave-backend/api/validators"
	"github.com/shopwave/shopwave-backend/internal/catalog"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"github.com/shopwave/shopwave-backend/pkg/logger"
)

// ProductsList returns the in-stock catalog with derived ratings.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input := catalog.ListProductsInput{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:   validators.SanitizeString(r.URL.Query().Get("search"), 200),
			Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
		}

		products, err := svc.ListProducts(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductsGet returns a single product; out-of-stock products stay readable.
func ProductsGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.GetProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoriesList returns the distinct category labels.
func CategoriesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
