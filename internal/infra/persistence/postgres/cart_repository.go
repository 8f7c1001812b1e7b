// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the domain.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUserID retrieves the cart owned by the given user, with line items in
// insertion order so display order is stable.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return repo.findByUserID(ctx, userID, false)
}

// FindByUserIDForUpdate retrieves the cart with SELECT ... FOR UPDATE on the
// cart row. Concurrent mutations of the same cart queue on this lock, so the
// DELETE+INSERT in Save always runs against the latest item collection.
func (repo *cartRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return repo.findByUserID(ctx, userID, true)
}

func (repo *cartRepository) findByUserID(ctx context.Context, userID uuid.UUID, forUpdate bool) (*entity.Cart, error) {
	var cartM model.CartModel
	query := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		Where("user_id = ?", userID)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user id")
	}

	return toCartDomain(&cartM), nil
}

// Save writes the whole aggregate: the cart row plus a full replacement of
// its line items. Callers must hold the cart row lock taken by
// FindByUserIDForUpdate in the same transaction; only then does the
// DELETE+INSERT behave like an atomic document write instead of racing a
// concurrent mutation's snapshot.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	tx := repo.db.WithContext(ctx)

	if cartM.ID == uuid.Nil {
		if err := tx.Omit("Items").Create(cartM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return domainerrors.ErrConflict.WrapMessage("cart already exists for user")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
		}
	} else {
		if err := tx.Omit("Items").Save(cartM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update cart")
		}
	}

	// Replace the item collection wholesale.
	if err := tx.Where("cart_id = ?", cartM.ID).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart items")
	}
	if len(cartM.Items) > 0 {
		for _, item := range cartM.Items {
			item.CartID = cartM.ID
		}
		if err := tx.Create(cartM.Items).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return domainerrors.NewDatabaseExecuteError(err, "cart item references missing cart")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to write cart items")
		}
	}

	// Propagate generated values back onto the aggregate.
	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toCartDomain converts a GORM CartModel to a domain Cart entity.
func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartLineItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.CartLineItem{
			ID:                itemM.ID,
			ProductID:         itemM.ProductID,
			ProductName:       itemM.ProductName,
			Quantity:          itemM.Quantity,
			UnitPrice:         itemM.UnitPrice,
			UnitDiscountPrice: itemM.UnitDiscountPrice,
			Variant:           itemM.Variant,
			AddedAt:           itemM.AddedAt,
		})
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCartDomain converts a domain Cart entity to a GORM CartModel.
func fromCartDomain(data *entity.Cart) *model.CartModel {
	if data == nil {
		return nil
	}

	items := make([]*model.CartItemModel, 0, len(data.Items))
	for _, li := range data.Items {
		items = append(items, &model.CartItemModel{
			ID:                li.ID,
			CartID:            data.ID,
			ProductID:         li.ProductID,
			ProductName:       li.ProductName,
			Quantity:          li.Quantity,
			UnitPrice:         li.UnitPrice,
			UnitDiscountPrice: li.UnitDiscountPrice,
			Variant:           li.Variant,
			AddedAt:           li.AddedAt,
		})
	}

	return &model.CartModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
