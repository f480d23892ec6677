package repository

import (
	"context"
	"testing"
	"time"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

func testOrder(userID uuid.UUID, createdAt time.Time) *domain.Order {
	return &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Classic Wayfarer", Brand: domain.BrandRayBan,
				Category: domain.CategorySunglasses, UnitPrice: 2499, CartQuantity: 1},
		},
		Shipping: domain.ShippingDetails{
			FirstName: "Asha", LastName: "Verma", Email: "asha@example.com",
			Phone: "9876543210", Address: "12 MG Road", City: "Pune",
			State: "Maharashtra", Pincode: "411001",
			Method: domain.ShippingStandard, Cost: 40,
		},
		Payment:   domain.PaymentDetails{Method: domain.PaymentCard, Total: 2539},
		Status:    domain.OrderStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryOrderRepositoryCRUD(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	userID := uuid.New()

	order := testOrder(userID, time.Now())
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Payment.Total != 2539 {
		t.Errorf("expected payment total 2539, got %v", found.Payment.Total)
	}

	if err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	found, _ = repo.FindByID(ctx, order.ID)
	if found.Status != domain.OrderStatusCancelled {
		t.Errorf("expected cancelled status, got %s", found.Status)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, order.ID); err != ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound after delete, got %v", err)
	}
}

func TestMemoryOrderRepositoryListByUserNewestFirst(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	now := time.Now()
	older := testOrder(userID, now.Add(-time.Hour))
	newer := testOrder(userID, now)
	foreign := testOrder(otherID, now)

	for _, order := range []*domain.Order{older, newer, foreign} {
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	orders, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for user, got %d", len(orders))
	}
	if orders[0].ID != newer.ID {
		t.Error("expected newest order first")
	}
	for _, order := range orders {
		if order.UserID != userID {
			t.Errorf("listing leaked order belonging to %s", order.UserID)
		}
	}
}

func TestMemoryOrderRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	order := testOrder(uuid.New(), time.Now())
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, _ := repo.FindByID(ctx, order.ID)
	found.Items[0].UnitPrice = 1
	found.Status = domain.OrderStatusCompleted

	reloaded, _ := repo.FindByID(ctx, order.ID)
	if reloaded.Items[0].UnitPrice != 2499 {
		t.Error("item snapshot was mutated through a returned pointer")
	}
	if reloaded.Status != domain.OrderStatusPending {
		t.Error("status was mutated through a returned pointer")
	}
}

func TestMemoryOrderRepositoryUnknownOrder(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	if err := repo.UpdateStatus(ctx, uuid.New(), domain.OrderStatusCancelled); err != ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound from UpdateStatus, got %v", err)
	}
	if err := repo.Delete(ctx, uuid.New()); err != ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound from Delete, got %v", err)
	}
}
