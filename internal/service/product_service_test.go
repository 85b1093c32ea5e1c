package service

import (
	"context"
	"testing"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productServiceMocks struct {
	products *MockProductRepository
	licenses *MockLicenseRepository
	orders   *MockOrderRepository
	payments *MockPaymentGateway
	storage  *MockMediaStorage
}

func newProductServiceForTest() (*ProductService, productServiceMocks) {
	m := productServiceMocks{
		products: new(MockProductRepository),
		licenses: new(MockLicenseRepository),
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentGateway),
		storage:  new(MockMediaStorage),
	}
	svc := NewProductService(m.products, m.licenses, m.orders, m.payments, m.storage, logger.NewNop())
	return svc, m
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("MintsRemoteProductWhenAbsent", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.payments.On("CreateProduct", ctx, gateway.ProductParams{Name: "Photo Editor", Description: "edits photos"}).
			Return("prod_123", nil).Once()
		m.products.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.StripeProductID == "prod_123"
		})).Return(&entity.Product{StripeProductID: "prod_123"}, nil).Once()

		_, err := svc.Create(ctx, CreateProductInput{ProductName: "Photo Editor", Description: "edits photos"})
		require.NoError(t, err)
		m.payments.AssertExpectations(t)
	})

	t.Run("KeepsSuppliedRemoteProductID", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.StripeProductID == "prod_existing"
		})).Return(&entity.Product{StripeProductID: "prod_existing"}, nil).Once()

		_, err := svc.Create(ctx, CreateProductInput{ProductName: "X", StripeProductID: "prod_existing"})
		require.NoError(t, err)
		m.payments.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("HomepageUsesGroupedAggregation", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("FindGroupedByCategory", ctx, int64(homepagePerCategory)).
			Return([]repository.GroupedProducts{{Category: "Operating System"}}, nil).Once()

		result, err := svc.List(ctx, ListProductsQuery{Homepage: true})
		require.NoError(t, err)
		assert.Len(t, result.Grouped, 1)
		assert.Nil(t, result.Metadata)
	})

	t.Run("PagedSearchWithMetadata", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("Find", ctx, mock.MatchedBy(func(p repository.ListProductsParams) bool {
			return p.Limit == defaultPageLimit && p.Skip == 20
		})).Return(&repository.ListProductsResult{
			Products:   make([]entity.Product, 10),
			TotalCount: 45,
		}, nil).Once()

		result, err := svc.List(ctx, ListProductsQuery{Skip: 20})
		require.NoError(t, err)
		require.NotNil(t, result.Metadata)
		assert.Equal(t, int64(45), result.Metadata.Total)
		assert.Equal(t, int64(5), result.Metadata.Pages)
		assert.Equal(t, "/api/products?skip=0&limit=10", result.Metadata.Links.First)
		assert.Equal(t, "/api/products?skip=10&limit=10", result.Metadata.Links.Prev)
		assert.Equal(t, "/api/products?skip=30&limit=10", result.Metadata.Links.Next)
		assert.Equal(t, "/api/products?skip=40&limit=10", result.Metadata.Links.Last)
	})
}

func TestProductService_AddSkus(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	product := &entity.Product{
		ID:              productID,
		ProductName:     "Photo Editor",
		Image:           entity.DefaultProductImage,
		StripeProductID: "prod_123",
	}

	svc, m := newProductServiceForTest()

	m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
	m.payments.On("CreatePrice", ctx, mock.MatchedBy(func(p gateway.PriceParams) bool {
		return p.ProductID == "prod_123" &&
			p.UnitAmount == 49999 &&
			p.Metadata["productId"] == productID.Hex() &&
			p.Metadata["lifetime"] == "true" &&
			p.Metadata["skuCode"] != ""
	})).Return("price_abc", nil).Once()
	m.products.On("PushSkus", ctx, productID, mock.MatchedBy(func(skus []entity.SkuDetail) bool {
		return len(skus) == 2 &&
			skus[0].SkuCode == skus[1].SkuCode &&
			skus[0].StripePriceID == "price_abc" &&
			skus[1].StripePriceID == "price_given"
	})).Return(nil).Once()

	err := svc.AddSkus(ctx, productID.Hex(), []SkuInput{
		{SkuName: "Pro", Price: 499.99, Lifetime: true},
		{SkuName: "Basic", Price: 99, Validity: 365, StripePriceID: "price_given"},
	})

	require.NoError(t, err)
	m.payments.AssertExpectations(t)
	m.products.AssertExpectations(t)
}

func TestProductService_UpdateSkuByID(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	skuID := primitive.NewObjectID()
	product := &entity.Product{
		ID:              productID,
		StripeProductID: "prod_123",
		SkuDetails: []entity.SkuDetail{
			{ID: skuID, SkuName: "Pro", Price: 100, SkuCode: "abc111", StripePriceID: "price_old"},
		},
	}

	t.Run("PriceChangeMintsNewPrice", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
		m.payments.On("CreatePrice", ctx, mock.MatchedBy(func(p gateway.PriceParams) bool {
			return p.UnitAmount == 15000 && p.Metadata["skuCode"] == "abc111"
		})).Return("price_new", nil).Once()
		m.products.On("UpdateSku", ctx, productID, skuID, mock.MatchedBy(func(p repository.UpdateSkuParams) bool {
			return p.StripePriceID != nil && *p.StripePriceID == "price_new"
		})).Return(product, nil).Once()

		newPrice := 150.0
		_, err := svc.UpdateSkuByID(ctx, productID.Hex(), skuID.Hex(), UpdateSkuInput{Price: &newPrice})
		require.NoError(t, err)
		m.payments.AssertExpectations(t)
	})

	t.Run("NameOnlyChangeKeepsPrice", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
		m.products.On("UpdateSku", ctx, productID, skuID, mock.MatchedBy(func(p repository.UpdateSkuParams) bool {
			return p.StripePriceID == nil
		})).Return(product, nil).Once()

		name := "Pro Max"
		_, err := svc.UpdateSkuByID(ctx, productID.Hex(), skuID.Hex(), UpdateSkuInput{SkuName: &name})
		require.NoError(t, err)
		m.payments.AssertNotCalled(t, "CreatePrice", mock.Anything, mock.Anything)
	})

	t.Run("UnknownSku", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()

		name := "X"
		_, err := svc.UpdateSkuByID(ctx, productID.Hex(), primitive.NewObjectID().Hex(), UpdateSkuInput{SkuName: &name})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestProductService_DeleteSkuAndLicenses(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	skuID := primitive.NewObjectID()
	product := &entity.Product{
		ID:         productID,
		SkuDetails: []entity.SkuDetail{{ID: skuID, StripePriceID: "price_x"}},
	}

	svc, m := newProductServiceForTest()

	m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
	m.payments.On("DeactivatePrice", ctx, "price_x").Return(nil).Once()
	m.products.On("PullSku", ctx, productID, skuID).Return(nil).Once()
	m.licenses.On("DeleteAllForSku", ctx, skuID).Return(int64(3), nil).Once()

	require.NoError(t, svc.DeleteSkuAndLicenses(ctx, productID.Hex(), skuID.Hex()))
	m.payments.AssertExpectations(t)
	m.licenses.AssertExpectations(t)
}

func TestProductService_AddReview(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	customer := &entity.User{ID: primitive.NewObjectID(), Name: "Carol", Type: entity.UserTypeCustomer}

	t.Run("AverageIncludesNewRating", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		product := &entity.Product{
			ID: productID,
			FeedbackDetails: []entity.Feedback{
				{ID: primitive.NewObjectID(), CustomerID: "someone-else", Rating: 4},
				{ID: primitive.NewObjectID(), CustomerID: "another", Rating: 2},
			},
		}
		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
		m.orders.On("FindCompletedWithProduct", ctx, customer.ID.Hex(), productID.Hex()).
			Return(&entity.Order{}, nil).Once()
		// (4 + 2 + 5) / 3 = 3.67 rounded
		m.products.On("PushFeedback", ctx, productID, mock.MatchedBy(func(f entity.Feedback) bool {
			return f.CustomerID == customer.ID.Hex() && f.Rating == 5
		}), 3.67).Return(product, nil).Once()

		_, err := svc.AddReview(ctx, productID.Hex(), 5, "great", customer)
		require.NoError(t, err)
		m.products.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		svc, _ := newProductServiceForTest()
		_, err := svc.AddReview(ctx, productID.Hex(), 6, "x", customer)
		assert.ErrorIs(t, err, ErrInvalidRating)
		_, err = svc.AddReview(ctx, productID.Hex(), 0, "x", customer)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("DuplicateReview", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		product := &entity.Product{
			ID:              productID,
			FeedbackDetails: []entity.Feedback{{CustomerID: customer.ID.Hex(), Rating: 3}},
		}
		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()

		_, err := svc.AddReview(ctx, productID.Hex(), 4, "again", customer)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("RequiresCompletedPurchase", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID}, nil).Once()
		m.orders.On("FindCompletedWithProduct", ctx, customer.ID.Hex(), productID.Hex()).
			Return(nil, repository.ErrNotFound).Once()

		_, err := svc.AddReview(ctx, productID.Hex(), 4, "nice", customer)
		assert.ErrorIs(t, err, ErrProductNotPurchased)
		m.products.AssertNotCalled(t, "PushFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_RemoveReview(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	keepID := primitive.NewObjectID()
	dropID := primitive.NewObjectID()

	t.Run("AverageRecomputedOverRemainder", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		product := &entity.Product{
			ID: productID,
			FeedbackDetails: []entity.Feedback{
				{ID: keepID, Rating: 4},
				{ID: dropID, Rating: 1},
			},
		}
		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
		m.products.On("PullFeedback", ctx, productID, dropID, 4.0).Return(product, nil).Once()

		_, err := svc.RemoveReview(ctx, productID.Hex(), dropID.Hex())
		require.NoError(t, err)
		m.products.AssertExpectations(t)
	})

	t.Run("LastReviewResetsAverageToZero", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		product := &entity.Product{
			ID:              productID,
			FeedbackDetails: []entity.Feedback{{ID: dropID, Rating: 5}},
		}
		m.products.On("GetByID", ctx, productID).Return(product, nil).Once()
		m.products.On("PullFeedback", ctx, productID, dropID, 0.0).Return(product, nil).Once()

		_, err := svc.RemoveReview(ctx, productID.Hex(), dropID.Hex())
		require.NoError(t, err)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		svc, m := newProductServiceForTest()

		m.products.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID}, nil).Once()

		_, err := svc.RemoveReview(ctx, productID.Hex(), dropID.Hex())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
