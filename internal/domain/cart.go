package domain

import "github.com/google/uuid"

// CartItem is a product selected for purchase. Quantity is always at
// least 1 and never exceeds the stock recorded when the item was added;
// an update that would drop it to zero removes the item instead.
type CartItem struct {
	Product
	CartQuantity int `json:"cartQuantity"`
}

// LineTotal is the item's contribution to the cart total.
func (i CartItem) LineTotal() float64 {
	return i.NewPrice * float64(i.CartQuantity)
}

// Cart holds the items a session has selected, in insertion order.
// Total and ItemCount are derived and recomputed on every mutation;
// they are never set directly.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// AddItem adds quantity units of product to the cart. If the product is
// already present its quantity is incremented; otherwise a new line is
// appended. The resulting quantity is clamped to the product's stock.
func (c *Cart) AddItem(product Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for idx := range c.Items {
		if c.Items[idx].ID == product.ID {
			c.Items[idx].CartQuantity = clampQuantity(c.Items[idx].CartQuantity+quantity, c.Items[idx].Stock)
			c.recalculate()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		Product:      product,
		CartQuantity: clampQuantity(quantity, product.Stock),
	})
	c.recalculate()
}

// UpdateQuantity sets the quantity for a product line, clamped to stock.
// A quantity of zero or less removes the line. Returns false when the
// product is not in the cart.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	for idx := range c.Items {
		if c.Items[idx].ID == productID {
			c.Items[idx].CartQuantity = clampQuantity(quantity, c.Items[idx].Stock)
			c.recalculate()
			return true
		}
	}
	return false
}

// RemoveItem deletes the line for productID. Removing an absent product
// is a no-op and returns false.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for idx := range c.Items {
		if c.Items[idx].ID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.recalculate()
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.recalculate()
}

// Find returns the cart line for productID, if present.
func (c *Cart) Find(productID uuid.UUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// recalculate rebuilds the derived totals from the item lines.
func (c *Cart) recalculate() {
	total := 0.0
	count := 0
	for _, item := range c.Items {
		total += item.LineTotal()
		count += item.CartQuantity
	}
	c.Total = total
	c.ItemCount = count
}

// Recalculate recomputes Total and ItemCount. Stores call this after
// deserializing a cart so stale persisted totals can never survive a
// reload.
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	c.recalculate()
}

func clampQuantity(requested, stock int) int {
	if requested < 1 {
		return 1
	}
	if stock > 0 && requested > stock {
		return stock
	}
	return requested
}
