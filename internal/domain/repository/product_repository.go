// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist or is inactive.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines read operations over the product catalog.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListActive retrieves all active products ordered by name.
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
