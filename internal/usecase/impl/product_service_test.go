package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProductService(t *testing.T) (usecase.ProductUsecase, *mockRepo.MockProductRepository) {
	productRepo := mockRepo.NewMockProductRepository(t)

	svc := NewProductService(ProductServiceParams{
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return svc, productRepo
}

func TestProductService_GetProduct_Success(t *testing.T) {
	svc, productRepo := createTestProductService(t)
	ctx := context.Background()
	product := newActiveProduct("shirt", 20.0, nil)

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	got, err := svc.GetProduct(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
}

func TestProductService_GetProduct_InactiveHidden(t *testing.T) {
	svc, productRepo := createTestProductService(t)
	ctx := context.Background()
	product := newActiveProduct("retired", 20.0, nil)
	product.IsActive = false

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	got, err := svc.GetProduct(ctx, product.ID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	svc, productRepo := createTestProductService(t)
	ctx := context.Background()
	id := uuid.New()

	productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	got, err := svc.GetProduct(ctx, id)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	svc, productRepo := createTestProductService(t)
	ctx := context.Background()
	catalog := []*entity.Product{
		newActiveProduct("a", 1.0, nil),
		newActiveProduct("b", 2.0, nil),
	}

	productRepo.EXPECT().ListActive(ctx).Return(catalog, nil)

	got, err := svc.ListProducts(ctx)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
