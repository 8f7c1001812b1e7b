// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Carts never reference a live product for
// pricing; they snapshot Price and DiscountPrice at add time so historical
// cart totals are stable against later price changes.
type Product struct {
	ID            uuid.UUID // The unique identifier for the product.
	Name          string    // The display name of the product.
	Description   string    // A short description shown on product pages.
	Price         float64   // The regular unit price.
	DiscountPrice *float64  // Optional discounted unit price. Nil when the product is not on sale.
	IsActive      bool      // Inactive products cannot be added to a cart.
	CreatedAt     time.Time // Timestamp of when this product was created.
	UpdatedAt     time.Time // Timestamp of the last modification to this product.
}
