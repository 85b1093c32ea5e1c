package service

import (
	"context"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) List(ctx context.Context, userType entity.UserType) ([]entity.User, error) {
	args := m.Called(ctx, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}
func (m *MockUserRepository) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserRepository) SetOtp(ctx context.Context, email, otp string, expiry time.Time) error {
	args := m.Called(ctx, email, otp, expiry)
	return args.Error(0)
}
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}
func (m *MockUserRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}
func (m *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}
func (m *MockProductRepository) Find(ctx context.Context, params repository.ListProductsParams) (*repository.ListProductsResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListProductsResult), args.Error(1)
}
func (m *MockProductRepository) FindRelated(ctx context.Context, category entity.CategoryType, excludeID primitive.ObjectID, limit int64) ([]entity.Product, error) {
	args := m.Called(ctx, category, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}
func (m *MockProductRepository) FindGroupedByCategory(ctx context.Context, perCategory int64) ([]repository.GroupedProducts, error) {
	args := m.Called(ctx, perCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.GroupedProducts), args.Error(1)
}
func (m *MockProductRepository) Update(ctx context.Context, id primitive.ObjectID, params repository.UpdateProductParams) (*entity.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}
func (m *MockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepository) SetImage(ctx context.Context, id primitive.ObjectID, image entity.ImageDetails) error {
	args := m.Called(ctx, id, image)
	return args.Error(0)
}
func (m *MockProductRepository) PushSkus(ctx context.Context, id primitive.ObjectID, skus []entity.SkuDetail) error {
	args := m.Called(ctx, id, skus)
	return args.Error(0)
}
func (m *MockProductRepository) UpdateSku(ctx context.Context, productID, skuID primitive.ObjectID, params repository.UpdateSkuParams) (*entity.Product, error) {
	args := m.Called(ctx, productID, skuID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}
func (m *MockProductRepository) PullSku(ctx context.Context, productID, skuID primitive.ObjectID) error {
	args := m.Called(ctx, productID, skuID)
	return args.Error(0)
}
func (m *MockProductRepository) PushFeedback(ctx context.Context, productID primitive.ObjectID, feedback entity.Feedback, avgRating float64) (*entity.Product, error) {
	args := m.Called(ctx, productID, feedback, avgRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}
func (m *MockProductRepository) PullFeedback(ctx context.Context, productID, feedbackID primitive.ObjectID, avgRating float64) (*entity.Product, error) {
	args := m.Called(ctx, productID, feedbackID, avgRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

type MockLicenseRepository struct{ mock.Mock }

func (m *MockLicenseRepository) Create(ctx context.Context, license *entity.License) (*entity.License, error) {
	args := m.Called(ctx, license)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.License), args.Error(1)
}
func (m *MockLicenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLicenseRepository) Find(ctx context.Context, params repository.FindLicensesParams) ([]entity.License, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.License), args.Error(1)
}
func (m *MockLicenseRepository) CountUnsold(ctx context.Context, skuID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, skuID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLicenseRepository) UpdateKey(ctx context.Context, id primitive.ObjectID, licenseKey string) (*entity.License, error) {
	args := m.Called(ctx, id, licenseKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.License), args.Error(1)
}
func (m *MockLicenseRepository) MarkSold(ctx context.Context, ids []primitive.ObjectID, orderID string) error {
	args := m.Called(ctx, ids, orderID)
	return args.Error(0)
}
func (m *MockLicenseRepository) DeleteAllForSku(ctx context.Context, skuID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, skuID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Order, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}
func (m *MockOrderRepository) List(ctx context.Context, params repository.ListOrdersParams) ([]entity.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}
func (m *MockOrderRepository) FindCompletedWithProduct(ctx context.Context, userID, productID string) (*entity.Order, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}
func (m *MockOrderRepository) FulfillByCheckoutSessionID(ctx context.Context, sessionID string, params repository.FulfillOrderParams) (*entity.Order, error) {
	args := m.Called(ctx, sessionID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateProduct(ctx context.Context, params gateway.ProductParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentGateway) UpdateProduct(ctx context.Context, productID string, params gateway.ProductParams) error {
	args := m.Called(ctx, productID, params)
	return args.Error(0)
}
func (m *MockPaymentGateway) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
func (m *MockPaymentGateway) CreatePrice(ctx context.Context, params gateway.PriceParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentGateway) DeactivatePrice(ctx context.Context, priceID string) error {
	args := m.Called(ctx, priceID)
	return args.Error(0)
}
func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CheckoutSession), args.Error(1)
}
func (m *MockPaymentGateway) ListSessionLineItems(ctx context.Context, sessionID string) ([]gateway.SessionLineItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.SessionLineItem), args.Error(1)
}
func (m *MockPaymentGateway) ConstructWebhookEvent(payload []byte, signature string) (*gateway.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.WebhookEvent), args.Error(1)
}

type MockMediaStorage struct{ mock.Mock }

func (m *MockMediaStorage) Upload(ctx context.Context, fileName string, data []byte) (*gateway.MediaObject, error) {
	args := m.Called(ctx, fileName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.MediaObject), args.Error(1)
}
func (m *MockMediaStorage) Delete(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendVerifyEmail(ctx context.Context, to, name, otp string) error {
	args := m.Called(ctx, to, name, otp)
	return args.Error(0)
}
func (m *MockMailer) SendPasswordReset(ctx context.Context, to, tempPassword, loginLink string) error {
	args := m.Called(ctx, to, tempPassword, loginLink)
	return args.Error(0)
}
func (m *MockMailer) SendOrderSuccess(ctx context.Context, to, orderID, orderLink string) error {
	args := m.Called(ctx, to, orderID, orderLink)
	return args.Error(0)
}

type MockTokenCache struct{ mock.Mock }

func (m *MockTokenCache) CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}
func (m *MockTokenCache) InvalidateToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTokenSigner struct{ mock.Mock }

func (m *MockTokenSigner) Sign(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
