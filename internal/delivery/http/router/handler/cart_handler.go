// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for shopping cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Variant   string    `json:"variant" validate:"max=100"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartItemResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unitPrice"`
	EffectivePrice float64   `json:"effectivePrice"`
	Variant        string    `json:"variant,omitempty"`
	AddedAt        time.Time `json:"addedAt"`
}

type cartResponse struct {
	Items  []cartItemResponse `json:"items"`
	Totals entity.CartTotals  `json:"totals"`
}

type removedItemResponse struct {
	ItemID      uuid.UUID `json:"itemId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
}

type removeItemResponse struct {
	RemovedItem removedItemResponse `json:"removedItem"`
	Cart        cartResponse        `json:"cart"`
}

type clearCartResponse struct {
	ItemsRemoved int `json:"itemsRemoved"`
}

func toCartResponse(cart *entity.Cart, totals entity.CartTotals) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			EffectivePrice: item.EffectivePrice(),
			Variant:        item.Variant,
			AddedAt:        item.AddedAt,
		})
	}

	return cartResponse{Items: items, Totals: totals}
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}

// AddItem handles adding a product to the authenticated user's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.AddItem(c.Request().Context(), usecase.AddItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Variant:   req.Variant,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output.Cart, output.Totals), "Item added to cart")
}

// UpdateQuantity handles replacing a line item's quantity. Quantity zero
// behaves exactly like a remove.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item id")
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateQuantity(c.Request().Context(), usecase.UpdateQuantityInput{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output.Cart, output.Totals), "Cart item updated")
}

// RemoveItem handles removing a single line item from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart item id")
	}

	output, err := h.uc.RemoveItem(c.Request().Context(), usecase.RemoveItemInput{
		UserID: userID,
		ItemID: itemID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, removeItemResponse{
		RemovedItem: removedItemResponse{
			ItemID:      output.RemovedItem.ItemID,
			ProductName: output.RemovedItem.ProductName,
			Quantity:    output.RemovedItem.Quantity,
		},
		Cart: toCartResponse(output.Cart, output.Totals),
	}, "Cart item removed")
}

// Clear handles emptying the authenticated user's cart.
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Clear(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, clearCartResponse{
		ItemsRemoved: output.ItemsRemoved,
	}, "Cart cleared")
}

// Summary handles returning the cart with computed totals.
func (h *CartHandler) Summary(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Summary(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output.Cart, output.Totals), "Cart summary retrieved")
}
