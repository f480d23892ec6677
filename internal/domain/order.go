package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the status may move from s to next.
// pending may move anywhere, processing may complete or cancel, and the
// terminal states never move again.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next != OrderStatusPending
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	return false
}

// ShippingMethod is a delivery option offered at checkout.
type ShippingMethod string

const (
	ShippingFree     ShippingMethod = "free"
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// ShippingCosts maps each shipping method to its flat cost.
var ShippingCosts = map[ShippingMethod]float64{
	ShippingFree:     0,
	ShippingStandard: 40,
	ShippingExpress:  80,
}

// Cost returns the flat cost for the shipping method. Unknown methods
// report ok=false.
func (m ShippingMethod) Cost() (cost float64, ok bool) {
	cost, ok = ShippingCosts[m]
	return cost, ok
}

// PaymentMethod is how the customer chose to pay.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// IsValid reports whether m is an accepted payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a cart line at the moment the
// order was placed. Price changes to the catalog never affect it.
type OrderItem struct {
	ProductID    uuid.UUID `json:"productId" db:"product_id"`
	Name         string    `json:"name" db:"name"`
	Brand        Brand     `json:"brand" db:"brand"`
	Category     Category  `json:"category" db:"category"`
	Image        string    `json:"image" db:"image"`
	UnitPrice    float64   `json:"unitPrice" db:"unit_price"`
	CartQuantity int       `json:"cartQuantity" db:"cart_quantity"`
}

// ShippingDetails is the delivery address and method for an order.
type ShippingDetails struct {
	FirstName string         `json:"firstName" db:"first_name"`
	LastName  string         `json:"lastName" db:"last_name"`
	Email     string         `json:"email" db:"email"`
	Phone     string         `json:"phone" db:"phone"`
	Address   string         `json:"address" db:"address"`
	City      string         `json:"city" db:"city"`
	State     string         `json:"state" db:"state"`
	Pincode   string         `json:"pincode" db:"pincode"`
	Method    ShippingMethod `json:"method" db:"shipping_method"`
	Cost      float64        `json:"cost" db:"shipping_cost"`
}

// PaymentDetails records the chosen payment method and the total the
// server computed for the order.
type PaymentDetails struct {
	Method PaymentMethod `json:"method" db:"payment_method"`
	Total  float64       `json:"total" db:"payment_total"`
}

// Order is a placed order. Items, shipping, and payment are frozen at
// creation; only Status changes afterwards.
type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	Items     []OrderItem     `json:"items"`
	Shipping  ShippingDetails `json:"shipping"`
	Payment   PaymentDetails  `json:"payment"`
	Status    OrderStatus     `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Subtotal is the sum of the item snapshots, excluding shipping.
func (o *Order) Subtotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.CartQuantity)
	}
	return total
}

// Cancellable reports whether the order may still be cancelled by the
// customer. Completed and already-cancelled orders may not.
func (o *Order) Cancellable() bool {
	return !o.Status.IsTerminal()
}

// Deletable reports whether the customer may delete the order from
// their history. Only cancelled orders qualify.
func (o *Order) Deletable() bool {
	return o.Status == OrderStatusCancelled
}
