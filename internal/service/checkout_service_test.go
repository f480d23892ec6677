package service

import (
	"context"
	"errors"
	"testing"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func checkoutFixture() (CheckoutService, CartService, repository.OrderRepository, map[string]*domain.Product) {
	products, byName := fixtureCatalog()
	carts := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderRepository()
	checkout := NewCheckoutService(carts, products, orders, zap.NewNop())
	cartService := NewCartService(carts, products, zap.NewNop())
	return checkout, cartService, orders, byName
}

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		FirstName:      "Asha",
		LastName:       "Verma",
		Email:          "asha@example.com",
		Phone:          "9876543210",
		Address:        "12 MG Road",
		City:           "Pune",
		State:          "Maharashtra",
		Pincode:        "411001",
		ShippingMethod: domain.ShippingStandard,
		PaymentMethod:  domain.PaymentCard,
	}
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	checkout, carts, orders, byName := checkoutFixture()
	ctx := context.Background()
	userID := uuid.New()
	wayfarer := byName["Classic Wayfarer"] // 2499
	titanium := byName["Titanium Round"]   // 1499

	carts.AddItem(ctx, "session-1", wayfarer.ID, 2)
	carts.AddItem(ctx, "session-1", titanium.ID, 1)

	order, err := checkout.PlaceOrder(ctx, userID, "session-1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending order, got %s", order.Status)
	}
	if order.UserID != userID {
		t.Errorf("expected order owner %s, got %s", userID, order.UserID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	wantSubtotal := 2499.0*2 + 1499.0
	if order.Subtotal() != wantSubtotal {
		t.Errorf("expected subtotal %v, got %v", wantSubtotal, order.Subtotal())
	}
	if order.Shipping.Cost != 40 {
		t.Errorf("expected standard shipping cost 40, got %v", order.Shipping.Cost)
	}
	if order.Payment.Total != wantSubtotal+40 {
		t.Errorf("expected total %v, got %v", wantSubtotal+40, order.Payment.Total)
	}

	// The order is persisted and the cart is cleared.
	if _, err := orders.FindByID(ctx, order.ID); err != nil {
		t.Errorf("expected order to be persisted: %v", err)
	}
	cart, _ := carts.Get(ctx, "session-1")
	if !cart.IsEmpty() {
		t.Error("expected cart to be cleared after checkout")
	}
}

func TestCheckoutUsesCatalogPrices(t *testing.T) {
	products, byName := fixtureCatalog()
	carts := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderRepository()
	checkout := NewCheckoutService(carts, products, orders, zap.NewNop())
	ctx := context.Background()
	wayfarer := byName["Classic Wayfarer"]

	// A cart that claims a tampered price for a real product.
	tampered := *wayfarer
	tampered.NewPrice = 1
	cart := domain.NewCart()
	cart.AddItem(tampered, 1)
	if err := carts.Save(ctx, "session-1", cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	order, err := checkout.PlaceOrder(ctx, uuid.New(), "session-1", validCheckoutRequest())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.Items[0].UnitPrice != wayfarer.NewPrice {
		t.Errorf("expected catalog price %v, got %v", wayfarer.NewPrice, order.Items[0].UnitPrice)
	}
	if order.Payment.Total != wayfarer.NewPrice+40 {
		t.Errorf("expected total %v, got %v", wayfarer.NewPrice+40, order.Payment.Total)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	checkout, _, _, _ := checkoutFixture()

	_, err := checkout.PlaceOrder(context.Background(), uuid.New(), "empty-session", validCheckoutRequest())
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutRejectsInvalidMethods(t *testing.T) {
	checkout, carts, _, byName := checkoutFixture()
	ctx := context.Background()
	carts.AddItem(ctx, "session-1", byName["Classic Wayfarer"].ID, 1)

	req := validCheckoutRequest()
	req.ShippingMethod = "drone"
	if _, err := checkout.PlaceOrder(ctx, uuid.New(), "session-1", req); !errors.Is(err, ErrInvalidShippingMethod) {
		t.Errorf("expected ErrInvalidShippingMethod, got %v", err)
	}

	req = validCheckoutRequest()
	req.PaymentMethod = "cheque"
	if _, err := checkout.PlaceOrder(ctx, uuid.New(), "session-1", req); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}

	// Failed attempts leave the cart intact.
	cart, _ := carts.Get(ctx, "session-1")
	if cart.IsEmpty() {
		t.Error("expected cart to survive a rejected checkout")
	}
}

func TestCheckoutStaleCartItem(t *testing.T) {
	products, byName := fixtureCatalog()
	carts := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderRepository()
	checkout := NewCheckoutService(carts, products, orders, zap.NewNop())
	ctx := context.Background()

	// A cart line for a product the catalog no longer has.
	ghost := *byName["Classic Wayfarer"]
	ghost.ID = uuid.New()
	cart := domain.NewCart()
	cart.AddItem(ghost, 1)
	if err := carts.Save(ctx, "session-1", cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := checkout.PlaceOrder(ctx, uuid.New(), "session-1", validCheckoutRequest()); !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound for stale cart line, got %v", err)
	}
}

func TestCheckoutShippingOptions(t *testing.T) {
	tests := []struct {
		method domain.ShippingMethod
		cost   float64
	}{
		{domain.ShippingFree, 0},
		{domain.ShippingStandard, 40},
		{domain.ShippingExpress, 80},
	}

	for _, tt := range tests {
		checkout, carts, _, byName := checkoutFixture()
		ctx := context.Background()
		carts.AddItem(ctx, "session-1", byName["Reading Classic"].ID, 1) // 799

		req := validCheckoutRequest()
		req.ShippingMethod = tt.method

		order, err := checkout.PlaceOrder(ctx, uuid.New(), "session-1", req)
		if err != nil {
			t.Fatalf("PlaceOrder with %s shipping failed: %v", tt.method, err)
		}
		if order.Shipping.Cost != tt.cost {
			t.Errorf("expected %s shipping cost %v, got %v", tt.method, tt.cost, order.Shipping.Cost)
		}
		if order.Payment.Total != 799+tt.cost {
			t.Errorf("expected total %v, got %v", 799+tt.cost, order.Payment.Total)
		}
	}
}
