package service

import (
	"context"
	"errors"
	"fmt"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotInCart reports a quantity update for a product the cart does
	// not hold.
	ErrNotInCart = errors.New("product not in cart")
)

// CartService manages the per-session shopping cart. Mutations always
// return the resulting cart so callers see the recomputed totals.
// Persistence failures are logged but never surfaced: the in-memory
// mutation has already happened and the next successful save catches up.
type CartService interface {
	Get(ctx context.Context, session string) (*domain.Cart, error)
	AddItem(ctx context.Context, session string, productID uuid.UUID, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, session string, productID uuid.UUID, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, session string, productID uuid.UUID) (*domain.Cart, error)
	Clear(ctx context.Context, session string) (*domain.Cart, error)
}

type cartService struct {
	store    repository.CartStore
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a CartService.
func NewCartService(store repository.CartStore, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{store: store, products: products, logger: logger}
}

// Get loads the session's cart. A missing cart is an empty cart.
func (s *cartService) Get(ctx context.Context, session string) (*domain.Cart, error) {
	cart, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("session", session), zap.Error(err))
		return domain.NewCart(), nil
	}
	return cart, nil
}

// AddItem adds quantity units of the product to the cart, merging with
// an existing line and clamping to available stock.
func (s *cartService) AddItem(ctx context.Context, session string, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}

	cart.AddItem(*product, quantity)
	s.persist(ctx, session, cart)
	return cart, nil
}

// UpdateQuantity sets a line's quantity, clamped to stock. Zero or
// negative removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, session string, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		cart.RemoveItem(productID)
		s.persist(ctx, session, cart)
		return cart, nil
	}

	if !cart.UpdateQuantity(productID, quantity) {
		return nil, fmt.Errorf("%w: %s", ErrNotInCart, productID)
	}

	s.persist(ctx, session, cart)
	return cart, nil
}

// RemoveItem deletes a line. Removing an absent product is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, session string, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)
	s.persist(ctx, session, cart)
	return cart, nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, session string) (*domain.Cart, error) {
	cart := domain.NewCart()
	if err := s.store.Clear(ctx, session); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("session", session), zap.Error(err))
	}
	return cart, nil
}

func (s *cartService) persist(ctx context.Context, session string, cart *domain.Cart) {
	if err := s.store.Save(ctx, session, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("session", session), zap.Error(err))
	}
}
