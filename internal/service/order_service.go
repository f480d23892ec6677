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
	// ErrOrderNotCancellable reports a cancel attempt on a completed or
	// already-cancelled order.
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")

	// ErrOrderNotDeletable reports a delete attempt on an order that has
	// not been cancelled first.
	ErrOrderNotDeletable = errors.New("only cancelled orders can be deleted")

	// ErrOrderForbidden reports access to another user's order. Callers
	// surface it as not-found to avoid leaking order existence.
	ErrOrderForbidden = errors.New("order belongs to another user")
)

// OrderService exposes a user's order history. Orders enter the system
// only through CheckoutService; here they are listed, cancelled, and
// (once cancelled) deleted.
type OrderService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
	Delete(ctx context.Context, userID, orderID uuid.UUID) error
}

type orderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{orders: orders, logger: logger}
}

// List returns the user's orders, newest first.
func (s *orderService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns one of the user's orders.
func (s *orderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	return s.findOwned(ctx, userID, orderID)
}

// Cancel transitions an order to cancelled. Terminal orders are
// rejected: the cancellation guard lives here, not in the UI.
func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotCancellable, order.Status)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", userID.String()),
	)

	order.Status = domain.OrderStatusCancelled
	return order, nil
}

// Delete removes a cancelled order from the user's history.
func (s *orderService) Delete(ctx context.Context, userID, orderID uuid.UUID) error {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if !order.Deletable() {
		return fmt.Errorf("%w: status is %s", ErrOrderNotDeletable, order.Status)
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info("Order deleted",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *orderService) findOwned(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}
