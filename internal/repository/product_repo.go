package repository

import (
	"context"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListProductsParams struct {
	Search       string
	Category     string
	PlatformType string
	BaseType     string
	Skip         int64
	Limit        int64
	SortBy       string
	SortOrder    string
}

type ListProductsResult struct {
	Products   []entity.Product
	TotalCount int64
}

// GroupedProducts is one homepage bucket: the top products of a category.
type GroupedProducts struct {
	Category string           `bson:"category" json:"category"`
	Products []entity.Product `bson:"products" json:"products"`
}

type UpdateProductParams struct {
	ProductName              *string
	Description              *string
	Image                    *string
	Category                 *entity.CategoryType
	PlatformType             *entity.PlatformType
	BaseType                 *entity.BaseType
	ProductURL               *string
	DownloadURL              *string
	RequirementSpecification []map[string]string
	Highlights               []string
	StripeProductID          *string
}

type UpdateSkuParams struct {
	SkuName       *string
	Price         *float64
	Validity      *int
	Lifetime      *bool
	StripePriceID *string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Find(ctx context.Context, params ListProductsParams) (*ListProductsResult, error)
	FindRelated(ctx context.Context, category entity.CategoryType, excludeID primitive.ObjectID, limit int64) ([]entity.Product, error)
	FindGroupedByCategory(ctx context.Context, perCategory int64) ([]GroupedProducts, error)
	Update(ctx context.Context, id primitive.ObjectID, params UpdateProductParams) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetImage(ctx context.Context, id primitive.ObjectID, image entity.ImageDetails) error
	PushSkus(ctx context.Context, id primitive.ObjectID, skus []entity.SkuDetail) error
	UpdateSku(ctx context.Context, productID, skuID primitive.ObjectID, params UpdateSkuParams) (*entity.Product, error)
	PullSku(ctx context.Context, productID, skuID primitive.ObjectID) error
	PushFeedback(ctx context.Context, productID primitive.ObjectID, feedback entity.Feedback, avgRating float64) (*entity.Product, error)
	PullFeedback(ctx context.Context, productID, feedbackID primitive.ObjectID, avgRating float64) (*entity.Product, error)
}
