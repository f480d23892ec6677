package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

// orderTestEnv bundles the checkout stack with direct service handles
// so tests can seed carts and orders behind the HTTP surface.
type orderTestEnv struct {
	router   http.Handler
	carts    service.CartService
	orders   repository.OrderRepository
	products map[string]*domain.Product
}

func newOrderEnv(t *testing.T) *orderTestEnv {
	t.Helper()

	fixtures := repository.FixtureProducts()
	byName := make(map[string]*domain.Product, len(fixtures))
	for _, p := range fixtures {
		byName[p.Name] = p
	}

	products := repository.NewMemoryProductRepository(fixtures)
	cartStore := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderRepository()

	carts := service.NewCartService(cartStore, products, zap.NewNop())
	orderSvc := service.NewOrderService(orders, zap.NewNop())
	checkout := service.NewCheckoutService(cartStore, products, orders, zap.NewNop())

	router := chi.NewRouter()
	NewOrderHandler(orderSvc, checkout, zap.NewNop()).
		RegisterRoutes(router, middleware.AuthMiddleware(testJWTSecret, zap.NewNop()))
	NewCartHandler(carts, zap.NewNop()).
		RegisterRoutes(router, middleware.OptionalAuthMiddleware(testJWTSecret, zap.NewNop()))

	return &orderTestEnv{router: router, carts: carts, orders: orders, products: byName}
}

func signTestToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// performAuthJSON drives an authenticated request through the router.
func performAuthJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validCheckoutBody() map[string]interface{} {
	return map[string]interface{}{
		"firstName":      "Asha",
		"lastName":       "Verma",
		"email":          "asha@example.com",
		"phone":          "9876543210",
		"address":        "14 MG Road",
		"city":           "Pune",
		"state":          "Maharashtra",
		"pincode":        "411001",
		"shippingMethod": "standard",
		"paymentMethod":  "card",
	}
}

// seedCart puts fixture products into the cart keyed by the user ID,
// which is the session an authenticated request resolves to.
func (env *orderTestEnv) seedCart(t *testing.T, userID uuid.UUID, names ...string) {
	t.Helper()

	for _, name := range names {
		product, ok := env.products[name]
		if !ok {
			t.Fatalf("no fixture product named %q", name)
		}
		if _, err := env.carts.AddItem(context.Background(), userID.String(), product.ID, 1); err != nil {
			t.Fatalf("failed to seed cart with %s: %v", name, err)
		}
	}
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) domain.Order {
	t.Helper()

	var order domain.Order
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("failed to decode order response: %v", err)
	}
	return order
}

func TestOrderRoutesRequireAuthentication(t *testing.T) {
	env := newOrderEnv(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/orders/" + uuid.New().String()},
		{http.MethodPost, "/api/orders/" + uuid.New().String() + "/cancel"},
		{http.MethodDelete, "/api/orders/" + uuid.New().String()},
		{http.MethodPost, "/api/checkout"},
	} {
		rec := performAuthJSON(t, env.router, route.method, route.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status 401 without a token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestCheckoutPlacesOrderOverHTTP(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")
	env.seedCart(t, userID, "Classic Wayfarer", "Titanium Round")

	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	order := decodeOrder(t, rec)
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected a pending order, got %s", order.Status)
	}
	if order.UserID != userID {
		t.Errorf("expected order owned by %s, got %s", userID, order.UserID)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 order items, got %d", len(order.Items))
	}

	wantTotal := env.products["Classic Wayfarer"].NewPrice + env.products["Titanium Round"].NewPrice + 40
	if order.Payment.Total != wantTotal {
		t.Errorf("expected total %v, got %v", wantTotal, order.Payment.Total)
	}
	if order.Shipping.Cost != 40 {
		t.Errorf("expected standard shipping cost 40, got %v", order.Shipping.Cost)
	}

	cart, err := env.carts.Get(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("failed to reload cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected checkout to clear the cart, got %d items", len(cart.Items))
	}
}

// A signed-in customer fills the cart through the cart API, sending
// both a bearer token and a browser session header, then checks out
// with the same token. Both routes must resolve the same cart.
func TestCartBuiltOverHTTPReachesCheckout(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")
	product := env.products["Classic Wayfarer"]

	raw, err := json.Marshal(map[string]interface{}{
		"productId": product.ID.String(),
		"quantity":  2,
	})
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(middleware.SessionHeader, uuid.New().String())

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 adding to cart, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(middleware.SessionHeader); got != userID.String() {
		t.Fatalf("expected the cart session to resolve to the user ID, got %q", got)
	}

	rec = performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 checking out the cart built over HTTP, got %d: %s", rec.Code, rec.Body.String())
	}

	order := decodeOrder(t, rec)
	if len(order.Items) != 1 || order.Items[0].CartQuantity != 2 {
		t.Errorf("expected the order to snapshot the cart line, got %+v", order.Items)
	}
}

func TestCheckoutEmptyCartReturns400(t *testing.T) {
	env := newOrderEnv(t)
	token := signTestToken(t, uuid.New(), "customer")

	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for an empty cart, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutRejectsUnknownShippingMethod(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")
	env.seedCart(t, userID, "Classic Wayfarer")

	body := validCheckoutBody()
	body["shippingMethod"] = "drone"

	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown shipping method, got %d", rec.Code)
	}

	cart, err := env.carts.Get(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("failed to reload cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("expected the cart to survive a rejected checkout, got %d items", len(cart.Items))
	}
}

func TestCheckoutRejectsIncompleteShippingForm(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")
	env.seedCart(t, userID, "Classic Wayfarer")

	body := validCheckoutBody()
	delete(body, "pincode")

	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for a missing pincode, got %d", rec.Code)
	}
}

func TestOrderHistoryOverHTTP(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")

	env.seedCart(t, userID, "Classic Wayfarer")
	performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	time.Sleep(5 * time.Millisecond)
	env.seedCart(t, userID, "Designer Aviator")
	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	second := decodeOrder(t, rec)

	rec = performAuthJSON(t, env.router, http.MethodGet, "/api/orders", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var orders []domain.Order
	if err := json.NewDecoder(rec.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode orders response: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID {
		t.Errorf("expected the newest order first, got %s", orders[0].ID)
	}

	rec = performAuthJSON(t, env.router, http.MethodGet, "/api/orders/"+second.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 fetching an order, got %d", rec.Code)
	}
	if got := decodeOrder(t, rec); got.Items[0].Name != "Designer Aviator" {
		t.Errorf("expected the second order's items, got %q", got.Items[0].Name)
	}
}

func TestOrderOfAnotherUserReadsAsNotFound(t *testing.T) {
	env := newOrderEnv(t)
	owner := uuid.New()
	ownerToken := signTestToken(t, owner, "customer")

	env.seedCart(t, owner, "Classic Wayfarer")
	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", ownerToken, validCheckoutBody())
	order := decodeOrder(t, rec)

	strangerToken := signTestToken(t, uuid.New(), "customer")
	rec = performAuthJSON(t, env.router, http.MethodGet, "/api/orders/"+order.ID.String(), strangerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for another user's order, got %d", rec.Code)
	}
}

func TestOrderCancelOverHTTP(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")

	env.seedCart(t, userID, "Classic Wayfarer")
	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	order := decodeOrder(t, rec)

	rec = performAuthJSON(t, env.router, http.MethodPost, "/api/orders/"+order.ID.String()+"/cancel", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 cancelling a pending order, got %d: %s", rec.Code, rec.Body.String())
	}
	if cancelled := decodeOrder(t, rec); cancelled.Status != domain.OrderStatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}

	rec = performAuthJSON(t, env.router, http.MethodPost, "/api/orders/"+order.ID.String()+"/cancel", token, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409 cancelling twice, got %d", rec.Code)
	}
}

func TestOrderDeleteOnlyWhenCancelled(t *testing.T) {
	env := newOrderEnv(t)
	userID := uuid.New()
	token := signTestToken(t, userID, "customer")

	env.seedCart(t, userID, "Classic Wayfarer")
	rec := performAuthJSON(t, env.router, http.MethodPost, "/api/checkout", token, validCheckoutBody())
	order := decodeOrder(t, rec)

	rec = performAuthJSON(t, env.router, http.MethodDelete, "/api/orders/"+order.ID.String(), token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 deleting a pending order, got %d", rec.Code)
	}

	performAuthJSON(t, env.router, http.MethodPost, "/api/orders/"+order.ID.String()+"/cancel", token, nil)

	rec = performAuthJSON(t, env.router, http.MethodDelete, "/api/orders/"+order.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 deleting a cancelled order, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performAuthJSON(t, env.router, http.MethodGet, "/api/orders/"+order.ID.String(), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after deletion, got %d", rec.Code)
	}
}

func TestOrderMalformedIDReturns400(t *testing.T) {
	env := newOrderEnv(t)
	token := signTestToken(t, uuid.New(), "customer")

	rec := performAuthJSON(t, env.router, http.MethodGet, "/api/orders/not-a-uuid", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for a malformed order ID, got %d", rec.Code)
	}
}
