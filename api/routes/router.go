package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopwave/shopwave-backend/api/controllers"
	"github.com/shopwave/shopwave-backend/api/middleware"
	"github.com/shopwave/shopwave-backend/internal/cart"
	"github.com/shopwave/shopwave-backend/internal/catalog"
	checkoutsvc "github.com/shopwave/shopwave-backend/internal/checkout"
	"github.com/shopwave/shopwave-backend/internal/identity"
	"github.com/shopwave/shopwave-backend/internal/reviews"
	"github.com/shopwave/shopwave-backend/internal/wishlist"
	"github.com/shopwave/shopwave-backend/pkg/auth/session"
	"github.com/shopwave/shopwave-backend/pkg/config"
	"github.com/shopwave/shopwave-backend/pkg/logger"
	"github.com/shopwave/shopwave-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.Checker
	Metrics  *metrics.HTTPMetrics

	DBPinger      controllers.Pinger
	SessionPinger controllers.Pinger

	Catalog  catalog.Service
	Cart     cart.Service
	Reviews  reviews.Service
	Wishlist wishlist.Service
	Checkout checkoutsvc.Service
	Identity identity.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.SessionPinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// public storefront reads and the login flow
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(deps.Catalog, deps.Logger))
		r.Get("/products/{productId}", controllers.ProductsGet(deps.Catalog, deps.Logger))
		r.Get("/products/{productId}/reviews", controllers.ReviewsListByProduct(deps.Reviews, deps.Logger))
		r.Get("/categories", controllers.CategoriesList(deps.Catalog, deps.Logger))

		r.Get("/oauth/redirect_url", controllers.OAuthRedirectURL(deps.Identity, deps.Logger))
		r.Post("/sessions", controllers.SessionCreate(deps.Identity, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Config.Session, deps.Sessions, deps.Logger))

			r.Get("/users/me", controllers.UsersMe(deps.Logger))
			r.Post("/logout", controllers.Logout(deps.Identity, deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, deps.Logger))
				r.Post("/", controllers.CartAddItem(deps.Cart, deps.Logger))
				r.Delete("/", controllers.CartClear(deps.Cart, deps.Logger))
				r.Put("/{itemId}", controllers.CartUpdateItem(deps.Cart, deps.Logger))
				r.Delete("/{itemId}", controllers.CartRemoveItem(deps.Cart, deps.Logger))
			})

			r.Post("/reviews", controllers.ReviewsSubmit(deps.Reviews, deps.Logger))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(deps.Wishlist, deps.Logger))
				r.Post("/", controllers.WishlistAddItem(deps.Wishlist, deps.Logger))
				r.Delete("/{productId}", controllers.WishlistRemoveItem(deps.Wishlist, deps.Logger))
				r.Get("/check/{productId}", controllers.WishlistCheck(deps.Wishlist, deps.Logger))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, deps.Logger))
		})
	})

	return r
}
