package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCart reports a checkout attempt with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidShippingMethod reports an unknown shipping method.
	ErrInvalidShippingMethod = errors.New("invalid shipping method")

	// ErrInvalidPaymentMethod reports an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// CheckoutRequest carries validated shipping and payment choices for an
// order submission. Totals are never part of the request: the server
// computes them from the catalog.
type CheckoutRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	Pincode       string
	ShippingMethod domain.ShippingMethod
	PaymentMethod  domain.PaymentMethod
}

// CheckoutService turns a session cart into an order. The item prices
// are re-read from the catalog so a stale or tampered cart can never
// set the charged amount.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, session string, req CheckoutRequest) (*domain.Order, error)
}

type checkoutService struct {
	carts    repository.CartStore
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(
	carts repository.CartStore,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{carts: carts, products: products, orders: orders, logger: logger}
}

// PlaceOrder validates the checkout choices, snapshots the cart with
// authoritative catalog prices, persists the order as pending, and
// clears the cart. The cart is left intact when persistence fails so
// the customer can retry.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, session string, req CheckoutRequest) (*domain.Order, error) {
	shippingCost, ok := req.ShippingMethod.Cost()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShippingMethod, req.ShippingMethod)
	}
	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	cart, err := s.carts.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	subtotal := 0.0
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to price cart item %s: %w", line.ID, err)
		}

		items = append(items, domain.OrderItem{
			ProductID:    product.ID,
			Name:         product.Name,
			Brand:        product.Brand,
			Category:     product.Category,
			Image:        product.Image,
			UnitPrice:    product.NewPrice,
			CartQuantity: line.CartQuantity,
		})
		subtotal += product.NewPrice * float64(line.CartQuantity)
	}

	now := time.Now()
	order := &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  items,
		Shipping: domain.ShippingDetails{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			Pincode:   req.Pincode,
			Method:    req.ShippingMethod,
			Cost:      shippingCost,
		},
		Payment: domain.PaymentDetails{
			Method: req.PaymentMethod,
			Total:  subtotal + shippingCost,
		},
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Cart clear failures are not fatal: the order is already placed.
	if err := s.carts.Clear(ctx, session); err != nil {
		s.logger.Error("Failed to clear cart after checkout",
			zap.String("session", session),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", order.Payment.Total),
		zap.Int("items", len(order.Items)),
	)

	return order, nil
}
