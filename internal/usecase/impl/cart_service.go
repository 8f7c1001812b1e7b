// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem adds a product to the user's cart, merging with an existing line
// item when the product and variant match. The cart is created lazily on the
// first add.
func (srv *cartService) AddItem(ctx context.Context, input usecase.AddItemInput) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Adding item to cart",
		slog.Any("userID", input.UserID),
		slog.Any("productID", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		product, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product")
		}
		if !product.IsActive {
			return domainerrors.ErrProductNotFound
		}

		cartRepo := repoFactory.CartRepo()
		cart, err = loadOrCreateCart(ctx, cartRepo, input.UserID)
		if err != nil {
			return err
		}

		cart.AddItem(product, input.Quantity, input.Variant)

		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add item to cart", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	return &usecase.CartOutput{Cart: cart, Totals: cart.Totals()}, nil
}

// UpdateQuantity replaces a line item's quantity. A quantity of zero removes
// the item, matching an explicit remove.
func (srv *cartService) UpdateQuantity(ctx context.Context, input usecase.UpdateQuantityInput) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Updating cart item quantity",
		slog.Any("userID", input.UserID),
		slog.Any("itemID", input.ItemID),
		slog.Int("quantity", input.Quantity),
	)

	if input.Quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must not be negative")
	}

	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		var err error
		cart, err = cartRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to load cart")
		}

		if _, ok := cart.UpdateQuantity(input.ItemID, input.Quantity); !ok {
			return domainerrors.ErrCartItemNotFound
		}

		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update cart item", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	return &usecase.CartOutput{Cart: cart, Totals: cart.Totals()}, nil
}

// RemoveItem deletes a single line item from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, input usecase.RemoveItemInput) (*usecase.RemoveItemOutput, error) {
	srv.log(ctx).Debug("Removing cart item",
		slog.Any("userID", input.UserID),
		slog.Any("itemID", input.ItemID),
	)

	var cart *entity.Cart
	var removed *entity.CartLineItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		var err error
		cart, err = cartRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to load cart")
		}

		var ok bool
		removed, ok = cart.RemoveItem(input.ItemID)
		if !ok {
			return domainerrors.ErrCartItemNotFound
		}

		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to remove cart item", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	return &usecase.RemoveItemOutput{
		Cart:   cart,
		Totals: cart.Totals(),
		RemovedItem: usecase.RemovedItemSummary{
			ItemID:      removed.ID,
			ProductName: removed.ProductName,
			Quantity:    removed.Quantity,
		},
	}, nil
}

// Clear empties the user's cart. Clearing an empty or missing cart succeeds
// and reports zero removed items.
func (srv *cartService) Clear(ctx context.Context, userID uuid.UUID) (*usecase.ClearOutput, error) {
	srv.log(ctx).Debug("Clearing cart", slog.Any("userID", userID))

	itemsRemoved := 0
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		cart, err := cartRepo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load cart")
		}

		itemsRemoved = cart.Clear()
		if itemsRemoved == 0 {
			return nil
		}

		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to clear cart", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return &usecase.ClearOutput{ItemsRemoved: itemsRemoved}, nil
}

// Summary returns the cart with its computed totals. A user without a cart
// gets an empty cart with zero totals.
func (srv *cartService) Summary(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			empty := &entity.Cart{UserID: userID}

			return &usecase.CartOutput{Cart: empty, Totals: empty.Totals()}, nil
		}

		srv.log(ctx).Warn("Failed to load cart summary", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load cart")
	}

	return &usecase.CartOutput{Cart: cart, Totals: cart.Totals()}, nil
}

// loadOrCreateCart fetches the user's cart under a row lock, creating an
// in-memory aggregate when none exists yet. Persistence happens on the
// subsequent Save; racing first-creates are resolved by the unique user_id
// constraint.
func loadOrCreateCart(ctx context.Context, cartRepo repository.CartRepository, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := cartRepo.FindByUserIDForUpdate(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, repository.ErrCartNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}

	return nil, errors.Wrap(err, "failed to load cart")
}
