package repository

import (
	"context"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FindLicensesParams struct {
	ProductID  primitive.ObjectID
	ProductSku primitive.ObjectID
	IsSold     *bool
	Limit      int64
}

type LicenseRepository interface {
	Create(ctx context.Context, license *entity.License) (*entity.License, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, params FindLicensesParams) ([]entity.License, error)
	CountUnsold(ctx context.Context, skuID primitive.ObjectID) (int64, error)
	UpdateKey(ctx context.Context, id primitive.ObjectID, licenseKey string) (*entity.License, error)
	MarkSold(ctx context.Context, ids []primitive.ObjectID, orderID string) error
	DeleteAllForSku(ctx context.Context, skuID primitive.ObjectID) (int64, error)
}
