// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when no cart exists for a user. Carts are
// created lazily, so callers treat this as "empty" for read operations.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists the cart aggregate document-style: the whole
// aggregate is read and written as one unit so totals can never go stale
// relative to the persisted item collection.
type CartRepository interface {
	// FindByUserID retrieves the cart owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindByUserIDForUpdate retrieves the cart with a row lock on the cart
	// record, serializing concurrent mutations of the same cart. Every
	// read-then-Save mutation must use this variant inside its transaction;
	// a plain read would let two transactions rewrite the item collection
	// from the same stale snapshot.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Save writes the whole aggregate: the cart row plus the full replacement
	// of its line items. Must be called inside a transaction for multi-step
	// mutations, after FindByUserIDForUpdate has taken the row lock.
	Save(ctx context.Context, cart *entity.Cart) error
}
