// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-user shopping cart aggregate. It is owned by exactly one
// user, created lazily on the first add, and mutated only through its methods
// so that totals can always be derived from the current item collection.
type Cart struct {
	ID        uuid.UUID       // The unique identifier for the cart.
	UserID    uuid.UUID       // The owning user. One cart per user.
	Items     []*CartLineItem // Ordered line items. Order matters for display, not for totals.
	CreatedAt time.Time       // Timestamp of when this cart was created.
	UpdatedAt time.Time       // Timestamp of the last mutation.
}

// CartLineItem is one entry in a cart: a product reference plus quantity and
// the price snapshot captured when the item was added. Two line items for the
// same product with different variants are distinct entities.
type CartLineItem struct {
	ID                uuid.UUID // The unique identifier for this line item.
	ProductID         uuid.UUID // Reference to the product this line was created from.
	ProductName       string    // Display name captured at add time.
	Quantity          int       // Positive item count.
	UnitPrice         float64   // Regular unit price captured at add time.
	UnitDiscountPrice *float64  // Optional discounted unit price captured at add time.
	Variant           string    // Optional variant selector (e.g. size/color). Empty means no variant.
	AddedAt           time.Time // Timestamp of when this line was first added.
}

// CartTotals is the summary derived from a cart's items. It is recomputed on
// every mutation and never stored independently of the items that produced it.
type CartTotals struct {
	ItemCount     int     `json:"itemCount"`     // Number of distinct line items.
	TotalQuantity int     `json:"totalQuantity"` // Sum of quantities across all lines.
	Subtotal      float64 `json:"subtotal"`      // Sum of UnitPrice * Quantity.
	TotalDiscount float64 `json:"totalDiscount"` // Sum of (UnitPrice - EffectivePrice) * Quantity.
	FinalTotal    float64 `json:"finalTotal"`    // Subtotal - TotalDiscount.
}

// EffectivePrice is the price actually charged per unit: the discount price
// when one is present and lower than the regular price, the regular price
// otherwise.
func (li *CartLineItem) EffectivePrice() float64 {
	if li.UnitDiscountPrice != nil && *li.UnitDiscountPrice < li.UnitPrice {
		return *li.UnitDiscountPrice
	}

	return li.UnitPrice
}

// Totals derives the summary from the current item collection. It is a pure
// function of Items; there is no accumulator state that can drift.
func (c *Cart) Totals() CartTotals {
	totals := CartTotals{ItemCount: len(c.Items)}

	for _, li := range c.Items {
		totals.TotalQuantity += li.Quantity
		totals.Subtotal += li.UnitPrice * float64(li.Quantity)
		totals.TotalDiscount += (li.UnitPrice - li.EffectivePrice()) * float64(li.Quantity)
	}
	totals.FinalTotal = totals.Subtotal - totals.TotalDiscount

	return totals
}

// AddItem adds a snapshot of the given product to the cart. Adding the same
// product with the same variant merges into the existing line; a different
// variant creates a new line. It returns the affected line.
func (c *Cart) AddItem(product *Product, quantity int, variant string) *CartLineItem {
	for _, li := range c.Items {
		if li.ProductID == product.ID && li.Variant == variant {
			li.Quantity += quantity

			return li
		}
	}

	item := &CartLineItem{
		ID:                uuid.New(),
		ProductID:         product.ID,
		ProductName:       product.Name,
		Quantity:          quantity,
		UnitPrice:         product.Price,
		UnitDiscountPrice: product.DiscountPrice,
		Variant:           variant,
		AddedAt:           time.Now(),
	}
	c.Items = append(c.Items, item)

	return item
}

// RemoveItem removes the line with the given id. It returns the removed line
// and false when no such line exists, in which case the cart is unmodified.
func (c *Cart) RemoveItem(itemID uuid.UUID) (*CartLineItem, bool) {
	for i, li := range c.Items {
		if li.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return li, true
		}
	}

	return nil, false
}

// UpdateQuantity sets the quantity of the line with the given id. Setting the
// quantity to zero is equivalent to removing the line. It returns false when
// no such line exists, in which case the cart is unmodified.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, quantity int) (*CartLineItem, bool) {
	if quantity == 0 {
		return c.RemoveItem(itemID)
	}

	for _, li := range c.Items {
		if li.ID == itemID {
			li.Quantity = quantity

			return li, true
		}
	}

	return nil, false
}

// Clear empties the item collection and reports how many lines were removed.
// Clearing an already-empty cart is a no-op that reports zero.
func (c *Cart) Clear() int {
	removed := len(c.Items)
	c.Items = nil

	return removed
}

// FindItem returns the line with the given id, or false when absent.
func (c *Cart) FindItem(itemID uuid.UUID) (*CartLineItem, bool) {
	for _, li := range c.Items {
		if li.ID == itemID {
			return li, true
		}
	}

	return nil, false
}
