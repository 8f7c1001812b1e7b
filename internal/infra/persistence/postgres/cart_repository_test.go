package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectCartItemsPreload(mock sqlmock.Sqlmock, cartID uuid.UUID) {
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE .*"cart_id" = \$1.* ORDER BY added_at ASC`).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "cart_id", "product_id", "product_name", "quantity", "unit_price", "variant", "added_at",
		}).AddRow(uuid.New(), cartID, uuid.New(), "shirt", 2, 20.0, "", time.Now()))
}

func TestCartRepository_FindByUserIDForUpdate_LocksCartRow(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewCartRepository(db)

	userID := uuid.New()
	cartID := uuid.New()

	// The trailing anchor pins the row lock: without FOR UPDATE two
	// concurrent mutations would rewrite the item collection from the same
	// stale snapshot.
	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1 ORDER BY .* FOR UPDATE$`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(cartID, userID))
	expectCartItemsPreload(mock, cartID)

	cart, err := repo.FindByUserIDForUpdate(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "shirt", cart.Items[0].ProductName)
}

func TestCartRepository_FindByUserID_ReadsWithoutLock(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewCartRepository(db)

	userID := uuid.New()
	cartID := uuid.New()

	// Anchored on the LIMIT placeholder so the expectation fails if a
	// locking clause ever leaks into the plain summary read.
	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1 ORDER BY .* LIMIT \$2$`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(cartID, userID))
	expectCartItemsPreload(mock, cartID)

	cart, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
}
