package repository

import (
	"context"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListOrdersParams struct {
	UserID string
	Status entity.OrderStatus
}

type FulfillOrderParams struct {
	OrderStatus      entity.OrderStatus
	IsOrderDelivered bool
	OrderedItems     []entity.OrderedItem
	PaymentInfo      entity.PaymentInfo
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Order, error)
	List(ctx context.Context, params ListOrdersParams) ([]entity.Order, error)
	// FindCompletedWithProduct reports the user's completed order containing
	// the product, used for review eligibility.
	FindCompletedWithProduct(ctx context.Context, userID, productID string) (*entity.Order, error)
	FulfillByCheckoutSessionID(ctx context.Context, sessionID string, params FulfillOrderParams) (*entity.Order, error)
}
