package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

// memoryOrderRepository keeps orders in process memory behind a mutex.
// It stands in for postgres when no database is configured. State is
// lost on restart, so it is only suitable for development.
type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

// NewMemoryOrderRepository creates an empty in-memory OrderRepository.
func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneOrder(order)
	r.orders[order.ID] = clone
	return nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *memoryOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []*domain.Order{}
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, cloneOrder(order))
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (r *memoryOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

func (r *memoryOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// cloneOrder copies an order including its item slice, so callers can
// never mutate a stored snapshot through a returned pointer.
func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
