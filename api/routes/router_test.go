package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/internal/cart"
	"github.com/shopwave/shopwave-backend/internal/catalog"
	checkoutsvc "github.com/shopwave/shopwave-backend/internal/checkout"
	"github.com/shopwave/shopwave-backend/internal/identity"
	"github.com/shopwave/shopwave-backend/internal/reviews"
	"github.com/shopwave/shopwave-backend/internal/wishlist"
	pkgAuth "github.com/shopwave/shopwave-backend/pkg/auth"
	appcfg "github.com/shopwave/shopwave-backend/pkg/config"
	"github.com/shopwave/shopwave-backend/pkg/db/models"
	"github.com/shopwave/shopwave-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubChecker struct{}

func (stubChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	return true, nil
}

type stubIdentityService struct{}

func (stubIdentityService) RedirectURL(ctx context.Context) (string, error) {
	return "https://auth.example.com/start", nil
}

func (stubIdentityService) Login(ctx context.Context, code string) (*identity.Session, error) {
	return &identity.Session{Token: "stub-token", User: &identity.Identity{ID: "usr_1"}}, nil
}

func (stubIdentityService) Logout(ctx context.Context, sessionID string) error {
	return nil
}

func testConfig() *appcfg.Config {
	return &appcfg.Config{
		App: appcfg.AppConfig{Env: "test", Port: "0"},
		Session: appcfg.SessionConfig{
			Secret:     "test-secret",
			Issuer:     "shopwave",
			TTLMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&models.Product{}, &models.CartItem{}, &models.Review{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	cartSvc, err := cart.NewService(cart.NewRepository(conn))
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	reviewsSvc, err := reviews.NewService(reviews.NewRepository(conn))
	if err != nil {
		t.Fatalf("reviews service: %v", err)
	}
	wishlistSvc, err := wishlist.NewService(wishlist.NewRepository(conn))
	if err != nil {
		t.Fatalf("wishlist service: %v", err)
	}
	checkoutSvc, err := checkoutsvc.NewService(cartSvc, appcfg.CheckoutConfig{ProcessingDelay: 0})
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel, Output: io.Discard})

	router := NewRouter(Deps{
		Config:        testConfig(),
		Logger:        logg,
		Sessions:      stubChecker{},
		DBPinger:      stubPinger{},
		SessionPinger: stubPinger{},
		Catalog:       catalogSvc,
		Cart:          cartSvc,
		Reviews:       reviewsSvc,
		Wishlist:      wishlistSvc,
		Checkout:      checkoutSvc,
		Identity:      stubIdentityService{},
	})
	return router, conn
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintSessionToken(testConfig().Session, time.Now(), pkgAuth.SessionTokenPayload{
		UserID: "usr_1",
		Email:  "buyer@example.com",
		JTI:    "sess-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func mustSeedProduct(t *testing.T, conn *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	if err := conn.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, w.Code)
		}
	}
}

func TestPublicProductListing(t *testing.T) {
	router, conn := newTestRouter(t)
	mustSeedProduct(t, conn, "Lamp", "19.99", 3)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Data []catalog.ProductWithRating `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Name != "Lamp" {
		t.Fatalf("unexpected products %+v", body.Data)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodGet, "/api/wishlist"},
		{http.MethodPost, "/api/checkout"},
		{http.MethodGet, "/api/users/me"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s returned %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestCartFlowThroughRouter(t *testing.T) {
	router, conn := newTestRouter(t)
	product := mustSeedProduct(t, conn, "Mug", "8.50", 10)
	token := bearerToken(t)

	addBody := `{"product_id":` + jsonInt(product.ID) + `,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(addBody))
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("add to cart returned %d: %s", w.Code, w.Body.String())
	}
	var addResp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&addResp); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if addResp.Data["action"] != "added" {
		t.Fatalf("expected action added, got %v", addResp.Data)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get cart returned %d: %s", w.Code, w.Body.String())
	}
	var cartResp struct {
		Data cart.Contents `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&cartResp); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	if cartResp.Data.Summary.Count != 2 || cartResp.Data.Summary.Subtotal != 17.00 {
		t.Fatalf("unexpected summary %+v", cartResp.Data.Summary)
	}
}

func TestWishlistDuplicateReturns409(t *testing.T) {
	router, conn := newTestRouter(t)
	product := mustSeedProduct(t, conn, "Lamp", "19.99", 3)
	token := bearerToken(t)

	body := `{"product_id":` + jsonInt(product.ID) + `}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/wishlist", strings.NewReader(body))
		req.Header.Set("Authorization", token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("attempt %d returned %d, want %d: %s", i+1, w.Code, want, w.Body.String())
		}
	}
}

func TestCheckoutClearsCartThroughRouter(t *testing.T) {
	router, conn := newTestRouter(t)
	product := mustSeedProduct(t, conn, "Lamp", "10.00", 3)
	token := bearerToken(t)

	addBody := `{"product_id":` + jsonInt(product.ID) + `,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(addBody))
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("add to cart returned %d", w.Code)
	}

	checkoutBody := `{
		"payment_method": "card",
		"delivery_address": {
			"full_name": "Jordan Walker",
			"email": "jordan@example.com",
			"phone": "555-0134",
			"address": "12 Pine St",
			"city": "Portland",
			"state": "OR",
			"zip_code": "97201",
			"country": "United States"
		}
	}`
	req = httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody))
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("checkout returned %d: %s", w.Code, w.Body.String())
	}
	var checkoutResp struct {
		Data checkoutsvc.Result `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&checkoutResp); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if !checkoutResp.Data.Success || checkoutResp.Data.Total != 11.00 {
		t.Fatalf("unexpected checkout result %+v", checkoutResp.Data)
	}

	var remaining int64
	if err := conn.Model(&models.CartItem{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart lines: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected empty cart after checkout, got %d lines", remaining)
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
