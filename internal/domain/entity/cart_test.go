package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func newTestProduct(name string, price float64, discount *float64) *Product {
	return &Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		DiscountPrice: discount,
		IsActive:      true,
	}
}

func TestCartLineItem_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount *float64
		expected float64
	}{
		{name: "no discount", price: 10.0, discount: nil, expected: 10.0},
		{name: "lower discount applies", price: 10.0, discount: floatPtr(8.0), expected: 8.0},
		{name: "discount equal to price is ignored", price: 10.0, discount: floatPtr(10.0), expected: 10.0},
		{name: "discount above price is ignored", price: 10.0, discount: floatPtr(12.0), expected: 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := &CartLineItem{UnitPrice: tt.price, UnitDiscountPrice: tt.discount}
			assert.Equal(t, tt.expected, li.EffectivePrice())
		})
	}
}

func TestCart_Totals(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.AddItem(newTestProduct("discounted", 10.0, floatPtr(8.0)), 2, "")
	cart.AddItem(newTestProduct("regular", 5.0, nil), 3, "")

	totals := cart.Totals()

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 5, totals.TotalQuantity)
	assert.InDelta(t, 35.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 4.0, totals.TotalDiscount, 1e-9)
	assert.InDelta(t, 31.0, totals.FinalTotal, 1e-9)
}

func TestCart_Totals_Empty(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}

	totals := cart.Totals()

	assert.Equal(t, CartTotals{}, totals)
}

func TestCart_AddItem_MergesSameProductAndVariant(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	product := newTestProduct("shirt", 20.0, nil)

	first := cart.AddItem(product, 1, "M")
	second := cart.AddItem(product, 2, "M")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, first.Quantity)
}

func TestCart_AddItem_DifferentVariantCreatesNewLine(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	product := newTestProduct("shirt", 20.0, nil)

	cart.AddItem(product, 1, "M")
	cart.AddItem(product, 1, "L")

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Totals().TotalQuantity)
}

func TestCart_AddItem_SnapshotsPriceAtAddTime(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	product := newTestProduct("shirt", 20.0, floatPtr(15.0))

	item := cart.AddItem(product, 1, "")

	// Later catalog changes must not affect the line already in the cart.
	product.Price = 99.0
	product.DiscountPrice = nil

	assert.Equal(t, 20.0, item.UnitPrice)
	require.NotNil(t, item.UnitDiscountPrice)
	assert.Equal(t, 15.0, *item.UnitDiscountPrice)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	keep := cart.AddItem(newTestProduct("keep", 5.0, nil), 1, "")
	remove := cart.AddItem(newTestProduct("remove", 7.0, nil), 2, "")

	removed, ok := cart.RemoveItem(remove.ID)

	require.True(t, ok)
	assert.Equal(t, remove.ID, removed.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, keep.ID, cart.Items[0].ID)
}

func TestCart_RemoveItem_UnknownIDLeavesCartUntouched(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.AddItem(newTestProduct("keep", 5.0, nil), 1, "")
	before := cart.Totals()

	removed, ok := cart.RemoveItem(uuid.New())

	assert.False(t, ok)
	assert.Nil(t, removed)
	assert.Equal(t, before, cart.Totals())
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	item := cart.AddItem(newTestProduct("shirt", 20.0, nil), 1, "")

	updated, ok := cart.UpdateQuantity(item.ID, 5)

	require.True(t, ok)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 5, cart.Totals().TotalQuantity)
}

func TestCart_UpdateQuantity_ZeroBehavesLikeRemove(t *testing.T) {
	product := newTestProduct("shirt", 20.0, nil)

	viaUpdate := &Cart{UserID: uuid.New()}
	itemA := viaUpdate.AddItem(product, 2, "")
	_, okUpdate := viaUpdate.UpdateQuantity(itemA.ID, 0)

	viaRemove := &Cart{UserID: uuid.New()}
	itemB := viaRemove.AddItem(product, 2, "")
	_, okRemove := viaRemove.RemoveItem(itemB.ID)

	require.True(t, okUpdate)
	require.True(t, okRemove)
	assert.Empty(t, viaUpdate.Items)
	assert.Equal(t, viaRemove.Totals(), viaUpdate.Totals())
}

func TestCart_UpdateQuantity_UnknownID(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.AddItem(newTestProduct("shirt", 20.0, nil), 1, "")

	_, ok := cart.UpdateQuantity(uuid.New(), 3)

	assert.False(t, ok)
	assert.Equal(t, 1, cart.Totals().TotalQuantity)
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.AddItem(newTestProduct("a", 1.0, nil), 1, "")
	cart.AddItem(newTestProduct("b", 2.0, nil), 1, "")

	removed := cart.Clear()

	assert.Equal(t, 2, removed)
	assert.Empty(t, cart.Items)
	assert.Equal(t, CartTotals{}, cart.Totals())
}

func TestCart_Clear_EmptyCartIsNoOp(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}

	assert.Equal(t, 0, cart.Clear())
}
