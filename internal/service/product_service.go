package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/thanhpk/randstr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageLimit     = 10
	homepagePerCategory  = 4
	relatedProductsLimit = 4
)

type ProductService struct {
	products repository.ProductRepository
	licenses repository.LicenseRepository
	orders   repository.OrderRepository
	payments gateway.PaymentGateway
	storage  gateway.MediaStorage
	log      logger.Logger
}

func NewProductService(
	products repository.ProductRepository,
	licenses repository.LicenseRepository,
	orders repository.OrderRepository,
	payments gateway.PaymentGateway,
	storage gateway.MediaStorage,
	log logger.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		licenses: licenses,
		orders:   orders,
		payments: payments,
		storage:  storage,
		log:      log,
	}
}

type CreateProductInput struct {
	ProductName              string              `json:"productName"`
	Description              string              `json:"description"`
	Image                    string              `json:"image"`
	Category                 entity.CategoryType `json:"category"`
	PlatformType             entity.PlatformType `json:"platformType"`
	BaseType                 entity.BaseType     `json:"baseType"`
	ProductURL               string              `json:"productUrl"`
	DownloadURL              string              `json:"downloadUrl"`
	RequirementSpecification []map[string]string `json:"requirementSpecification"`
	Highlights               []string            `json:"highlights"`
	StripeProductID          string              `json:"stripeProductId"`
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	stripeProductID := input.StripeProductID
	if stripeProductID == "" {
		id, err := s.payments.CreateProduct(ctx, gateway.ProductParams{
			Name:        input.ProductName,
			Description: input.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create payment provider product: %w", err)
		}
		stripeProductID = id
	}

	product := &entity.Product{
		ProductName:              input.ProductName,
		Description:              input.Description,
		Image:                    input.Image,
		Category:                 input.Category,
		PlatformType:             input.PlatformType,
		BaseType:                 input.BaseType,
		ProductURL:               input.ProductURL,
		DownloadURL:              input.DownloadURL,
		RequirementSpecification: input.RequirementSpecification,
		Highlights:               input.Highlights,
		StripeProductID:          stripeProductID,
	}
	return s.products.Create(ctx, product)
}

type ListProductsQuery struct {
	Homepage     bool
	Search       string
	Category     string
	PlatformType string
	BaseType     string
	Skip         int64
	Limit        int64
	SortBy       string
	SortOrder    string
}

type ListMetadata struct {
	Skip  int64     `json:"skip"`
	Limit int64     `json:"limit"`
	Total int64     `json:"total"`
	Pages int64     `json:"pages"`
	Links PageLinks `json:"links"`
}

type PageLinks struct {
	First string `json:"first"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last"`
}

type ListProductsResult struct {
	Metadata *ListMetadata    `json:"metadata,omitempty"`
	Products []entity.Product `json:"products,omitempty"`

	// Grouped is set instead of Products for homepage requests.
	Grouped []repository.GroupedProducts `json:"grouped,omitempty"`
}

func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*ListProductsResult, error) {
	if query.Homepage {
		grouped, err := s.products.FindGroupedByCategory(ctx, homepagePerCategory)
		if err != nil {
			return nil, err
		}
		return &ListProductsResult{Grouped: grouped}, nil
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	result, err := s.products.Find(ctx, repository.ListProductsParams{
		Search:       query.Search,
		Category:     query.Category,
		PlatformType: query.PlatformType,
		BaseType:     query.BaseType,
		Skip:         query.Skip,
		Limit:        limit,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	pages := (result.TotalCount + limit - 1) / limit
	return &ListProductsResult{
		Metadata: &ListMetadata{
			Skip:  query.Skip,
			Limit: limit,
			Total: result.TotalCount,
			Pages: pages,
			Links: buildPageLinks(query.Skip, limit, result.TotalCount),
		},
		Products: result.Products,
	}, nil
}

func buildPageLinks(skip, limit, total int64) PageLinks {
	link := func(skip int64) string {
		return fmt.Sprintf("/api/products?skip=%d&limit=%d", skip, limit)
	}
	links := PageLinks{First: link(0)}
	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		links.Prev = link(prev)
	}
	if skip+limit < total {
		links.Next = link(skip + limit)
	}
	lastSkip := int64(0)
	if total > limit {
		lastSkip = ((total - 1) / limit) * limit
	}
	links.Last = link(lastSkip)
	return links
}

type ProductWithRelated struct {
	Product         *entity.Product  `json:"product"`
	RelatedProducts []entity.Product `json:"relatedProducts"`
}

func (s *ProductService) GetOne(ctx context.Context, id string) (*ProductWithRelated, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	related, err := s.products.FindRelated(ctx, product.Category, productID, relatedProductsLimit)
	if err != nil {
		return nil, err
	}
	return &ProductWithRelated{Product: product, RelatedProducts: related}, nil
}

type UpdateProductInput struct {
	ProductName              *string              `json:"productName"`
	Description              *string              `json:"description"`
	Image                    *string              `json:"image"`
	Category                 *entity.CategoryType `json:"category"`
	PlatformType             *entity.PlatformType `json:"platformType"`
	BaseType                 *entity.BaseType     `json:"baseType"`
	ProductURL               *string              `json:"productUrl"`
	DownloadURL              *string              `json:"downloadUrl"`
	RequirementSpecification []map[string]string  `json:"requirementSpecification"`
	Highlights               []string             `json:"highlights"`
	StripeProductID          *string              `json:"stripeProductId"`
}

func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.Update(ctx, productID, repository.UpdateProductParams{
		ProductName:              input.ProductName,
		Description:              input.Description,
		Image:                    input.Image,
		Category:                 input.Category,
		PlatformType:             input.PlatformType,
		BaseType:                 input.BaseType,
		ProductURL:               input.ProductURL,
		DownloadURL:              input.DownloadURL,
		RequirementSpecification: input.RequirementSpecification,
		Highlights:               input.Highlights,
		StripeProductID:          input.StripeProductID,
	})
	if err != nil {
		return nil, err
	}

	// Sync name/description to the payment provider unless the caller
	// supplied an explicit external id override.
	if input.StripeProductID == nil {
		err = s.payments.UpdateProduct(ctx, existing.StripeProductID, gateway.ProductParams{
			Name:        updated.ProductName,
			Description: updated.Description,
		})
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	return s.payments.DeleteProduct(ctx, existing.StripeProductID)
}

func (s *ProductService) UploadImage(ctx context.Context, id, fileName string, data []byte) (string, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}

	if product.ImageDetails.ObjectKey != "" {
		if err := s.storage.Delete(ctx, product.ImageDetails.ObjectKey); err != nil {
			return "", fmt.Errorf("failed to delete previous image: %w", err)
		}
	}

	object, err := s.storage.Upload(ctx, fileName, data)
	if err != nil {
		return "", err
	}
	err = s.products.SetImage(ctx, productID, entity.ImageDetails{
		URL:       object.URL,
		ObjectKey: object.ObjectKey,
	})
	if err != nil {
		return "", err
	}

	err = s.payments.UpdateProduct(ctx, product.StripeProductID, gateway.ProductParams{
		Images: []string{object.URL},
	})
	if err != nil {
		return "", err
	}
	return object.URL, nil
}

type SkuInput struct {
	SkuName       string  `json:"skuName"`
	Price         float64 `json:"price"`
	Validity      int     `json:"validity"`
	Lifetime      bool    `json:"lifetime"`
	StripePriceID string  `json:"stripePriceId"`
}

// AddSkus appends SKUs to a product. All SKUs added in one call share a
// generated sku code; each SKU without a remote price gets one minted.
func (s *ProductService) AddSkus(ctx context.Context, productID string, skus []SkuInput) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	skuCode := generateSkuCode()
	details := make([]entity.SkuDetail, 0, len(skus))
	for _, sku := range skus {
		priceID := sku.StripePriceID
		if priceID == "" {
			priceID, err = s.payments.CreatePrice(ctx, gateway.PriceParams{
				ProductID:  product.StripeProductID,
				UnitAmount: toMinorUnits(sku.Price),
				Metadata:   priceMetadata(product, skuCode, sku.Price, sku.Lifetime),
			})
			if err != nil {
				return fmt.Errorf("failed to create price for sku %s: %w", sku.SkuName, err)
			}
		}
		details = append(details, entity.SkuDetail{
			ID:            primitive.NewObjectID(),
			SkuName:       sku.SkuName,
			Price:         sku.Price,
			Validity:      sku.Validity,
			Lifetime:      sku.Lifetime,
			StripePriceID: priceID,
			SkuCode:       skuCode,
		})
	}
	return s.products.PushSkus(ctx, id, details)
}

type UpdateSkuInput struct {
	SkuName  *string  `json:"skuName"`
	Price    *float64 `json:"price"`
	Validity *int     `json:"validity"`
	Lifetime *bool    `json:"lifetime"`
}

func (s *ProductService) UpdateSkuByID(ctx context.Context, productID, skuID string, input UpdateSkuInput) (*entity.Product, error) {
	product, sku, err := s.findProductSku(ctx, productID, skuID)
	if err != nil {
		return nil, err
	}

	params := repository.UpdateSkuParams{
		SkuName:  input.SkuName,
		Validity: input.Validity,
		Lifetime: input.Lifetime,
		Price:    input.Price,
	}

	// Remote prices are immutable; a price change mints a new one.
	if input.Price != nil && *input.Price != sku.Price {
		lifetime := sku.Lifetime
		if input.Lifetime != nil {
			lifetime = *input.Lifetime
		}
		priceID, err := s.payments.CreatePrice(ctx, gateway.PriceParams{
			ProductID:  product.StripeProductID,
			UnitAmount: toMinorUnits(*input.Price),
			Metadata:   priceMetadata(product, sku.SkuCode, *input.Price, lifetime),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create replacement price: %w", err)
		}
		params.StripePriceID = &priceID
	}

	return s.products.UpdateSku(ctx, product.ID, sku.ID, params)
}

func (s *ProductService) AddLicense(ctx context.Context, productID, skuID, licenseKey string) (*entity.License, error) {
	product, sku, err := s.findProductSku(ctx, productID, skuID)
	if err != nil {
		return nil, err
	}
	return s.licenses.Create(ctx, &entity.License{
		ProductID:  product.ID,
		ProductSku: sku.ID,
		LicenseKey: licenseKey,
	})
}

func (s *ProductService) RemoveLicense(ctx context.Context, licenseID string) error {
	id, err := primitive.ObjectIDFromHex(licenseID)
	if err != nil {
		return repository.ErrNotFound
	}
	return s.licenses.Delete(ctx, id)
}

func (s *ProductService) ListLicenses(ctx context.Context, productID, skuID string) ([]entity.License, error) {
	product, sku, err := s.findProductSku(ctx, productID, skuID)
	if err != nil {
		return nil, err
	}
	return s.licenses.Find(ctx, repository.FindLicensesParams{
		ProductID:  product.ID,
		ProductSku: sku.ID,
	})
}

func (s *ProductService) UpdateLicenseKey(ctx context.Context, productID, skuID, licenseID, licenseKey string) (*entity.License, error) {
	if _, _, err := s.findProductSku(ctx, productID, skuID); err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(licenseID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.licenses.UpdateKey(ctx, id, licenseKey)
}

// DeleteSkuAndLicenses removes a SKU, deactivates its remote price, and bulk
// removes every license attached to it.
func (s *ProductService) DeleteSkuAndLicenses(ctx context.Context, productID, skuID string) error {
	product, sku, err := s.findProductSku(ctx, productID, skuID)
	if err != nil {
		return err
	}

	if err := s.payments.DeactivatePrice(ctx, sku.StripePriceID); err != nil {
		return err
	}
	if err := s.products.PullSku(ctx, product.ID, sku.ID); err != nil {
		return err
	}
	removed, err := s.licenses.DeleteAllForSku(ctx, sku.ID)
	if err != nil {
		return err
	}
	s.log.Infof("deleted sku %s of product %s along with %d licenses", skuID, productID, removed)
	return nil
}

func (s *ProductService) AddReview(ctx context.Context, productID string, rating int, review string, user *entity.User) (*entity.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.FindFeedbackByCustomer(user.ID.Hex()) != nil {
		return nil, ErrAlreadyReviewed
	}

	if _, err := s.orders.FindCompletedWithProduct(ctx, user.ID.Hex(), productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotPurchased
		}
		return nil, err
	}

	ratings := make([]int, 0, len(product.FeedbackDetails)+1)
	for _, fb := range product.FeedbackDetails {
		ratings = append(ratings, fb.Rating)
	}
	ratings = append(ratings, rating)

	feedback := entity.Feedback{
		CustomerID:   user.ID.Hex(),
		CustomerName: user.Name,
		Rating:       rating,
		FeedbackMsg:  review,
	}
	return s.products.PushFeedback(ctx, id, feedback, averageRating(ratings))
}

func (s *ProductService) RemoveReview(ctx context.Context, productID, reviewID string) (*entity.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	feedbackID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var found bool
	remaining := make([]int, 0, len(product.FeedbackDetails))
	for _, fb := range product.FeedbackDetails {
		if fb.ID == feedbackID {
			found = true
			continue
		}
		remaining = append(remaining, fb.Rating)
	}
	if !found {
		return nil, repository.ErrNotFound
	}

	return s.products.PullFeedback(ctx, id, feedbackID, averageRating(remaining))
}

func (s *ProductService) findProductSku(ctx context.Context, productID, skuID string) (*entity.Product, *entity.SkuDetail, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, nil, repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	sid, err := primitive.ObjectIDFromHex(skuID)
	if err != nil {
		return nil, nil, repository.ErrNotFound
	}
	sku := product.FindSkuByID(sid)
	if sku == nil {
		return nil, nil, repository.ErrNotFound
	}
	return product, sku, nil
}

// averageRating returns the arithmetic mean rounded to 2 decimals, 0 for an
// empty list.
func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*100) / 100
}

func priceMetadata(product *entity.Product, skuCode string, price float64, lifetime bool) map[string]string {
	return map[string]string{
		"skuCode":      skuCode,
		"lifetime":     strconv.FormatBool(lifetime),
		"productId":    product.ID.Hex(),
		"price":        strconv.FormatFloat(price, 'f', -1, 64),
		"productName":  product.ProductName,
		"productImage": product.Image,
	}
}

func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func generateSkuCode() string {
	return strings.ToLower(randstr.String(3)) + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
