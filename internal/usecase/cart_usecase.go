// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddItemInput defines the data required to add a product to a user's cart.
type AddItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Variant   string
}

// UpdateQuantityInput defines the data required to change a line item's quantity.
// A quantity of zero removes the item.
type UpdateQuantityInput struct {
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Quantity int
}

// RemoveItemInput defines the data required to remove a line item from the cart.
type RemoveItemInput struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// --- Output DTOs ---

// CartOutput returns the cart aggregate together with its computed totals.
type CartOutput struct {
	Cart   *entity.Cart
	Totals entity.CartTotals
}

// RemovedItemSummary describes a line item that was removed from the cart.
type RemovedItemSummary struct {
	ItemID      uuid.UUID
	ProductName string
	Quantity    int
}

// RemoveItemOutput returns the updated cart and a summary of the removed item.
type RemoveItemOutput struct {
	Cart        *entity.Cart
	Totals      entity.CartTotals
	RemovedItem RemovedItemSummary
}

// ClearOutput returns how many line items the clear operation removed.
type ClearOutput struct {
	ItemsRemoved int
}

// CartUsecase defines the interface for shopping cart operations.
type CartUsecase interface {
	AddItem(ctx context.Context, input AddItemInput) (*CartOutput, error)
	UpdateQuantity(ctx context.Context, input UpdateQuantityInput) (*CartOutput, error)
	RemoveItem(ctx context.Context, input RemoveItemInput) (*RemoveItemOutput, error)
	Clear(ctx context.Context, userID uuid.UUID) (*ClearOutput, error)
	Summary(ctx context.Context, userID uuid.UUID) (*CartOutput, error)
}
