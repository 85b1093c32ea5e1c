package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Taraansh/e-commerce/internal/app/config"
	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.ProductRepository {
	return &productRepository{
		collection: client.Database(cfg.Database).Collection(productCollectionName),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.Image == "" {
		product.Image = entity.DefaultProductImage
	}
	if product.SkuDetails == nil {
		product.SkuDetails = []entity.SkuDetail{}
	}
	if product.FeedbackDetails == nil {
		product.FeedbackDetails = []entity.Feedback{}
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %s: %w", id.Hex(), err)
	}
	return &product, nil
}

func (r *productRepository) Find(ctx context.Context, params repository.ListProductsParams) (*repository.ListProductsResult, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["product_name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.PlatformType != "" {
		filter["platform_type"] = params.PlatformType
	}
	if params.BaseType != "" {
		filter["base_type"] = params.BaseType
	}

	findOptions := options.Find()
	if params.Skip > 0 {
		findOptions.SetSkip(params.Skip)
	}
	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}
	if params.SortBy != "" {
		order := 1
		if params.SortOrder == "desc" {
			order = -1
		}
		findOptions.SetSort(bson.D{{Key: params.SortBy, Value: order}})
	} else {
		findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode listed products: %w", err)
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &repository.ListProductsResult{Products: products, TotalCount: totalCount}, nil
}

func (r *productRepository) FindRelated(ctx context.Context, category entity.CategoryType, excludeID primitive.ObjectID, limit int64) ([]entity.Product, error) {
	filter := bson.M{
		"category": category,
		"_id":      bson.M{"$ne": excludeID},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "avg_rating", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode related products: %w", err)
	}
	return products, nil
}

func (r *productRepository) FindGroupedByCategory(ctx context.Context, perCategory int64) ([]repository.GroupedProducts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "avg_rating", Value: -1}, {Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "products", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "products", Value: bson.D{{Key: "$slice", Value: bson.A{"$products", perCategory}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group products by category: %w", err)
	}
	defer cursor.Close(ctx)

	var grouped []repository.GroupedProducts
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, fmt.Errorf("failed to decode grouped products: %w", err)
	}
	return grouped, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, params repository.UpdateProductParams) (*entity.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if params.ProductName != nil {
		set["product_name"] = *params.ProductName
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.Image != nil {
		set["image"] = *params.Image
	}
	if params.Category != nil {
		set["category"] = *params.Category
	}
	if params.PlatformType != nil {
		set["platform_type"] = *params.PlatformType
	}
	if params.BaseType != nil {
		set["base_type"] = *params.BaseType
	}
	if params.ProductURL != nil {
		set["product_url"] = *params.ProductURL
	}
	if params.DownloadURL != nil {
		set["download_url"] = *params.DownloadURL
	}
	if params.RequirementSpecification != nil {
		set["requirement_specification"] = params.RequirementSpecification
	}
	if params.Highlights != nil {
		set["highlights"] = params.Highlights
	}
	if params.StripeProductID != nil {
		set["stripe_product_id"] = *params.StripeProductID
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) SetImage(ctx context.Context, id primitive.ObjectID, image entity.ImageDetails) error {
	update := bson.M{"$set": bson.M{
		"image":         image.URL,
		"image_details": image,
		"updated_at":    time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set product image: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) PushSkus(ctx context.Context, id primitive.ObjectID, skus []entity.SkuDetail) error {
	update := bson.M{
		"$push": bson.M{"sku_details": bson.M{"$each": skus}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to push skus: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateSku(ctx context.Context, productID, skuID primitive.ObjectID, params repository.UpdateSkuParams) (*entity.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if params.SkuName != nil {
		set["sku_details.$.sku_name"] = *params.SkuName
	}
	if params.Price != nil {
		set["sku_details.$.price"] = *params.Price
	}
	if params.Validity != nil {
		set["sku_details.$.validity"] = *params.Validity
	}
	if params.Lifetime != nil {
		set["sku_details.$.lifetime"] = *params.Lifetime
	}
	if params.StripePriceID != nil {
		set["sku_details.$.stripe_price_id"] = *params.StripePriceID
	}

	filter := bson.M{"_id": productID, "sku_details._id": skuID}
	return r.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
}

func (r *productRepository) PullSku(ctx context.Context, productID, skuID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"sku_details": bson.M{"_id": skuID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		return fmt.Errorf("failed to pull sku: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) PushFeedback(ctx context.Context, productID primitive.ObjectID, feedback entity.Feedback, avgRating float64) (*entity.Product, error) {
	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}
	feedback.CreatedAt = time.Now().UTC()
	update := bson.M{
		"$push": bson.M{"feedback_details": feedback},
		"$set":  bson.M{"avg_rating": avgRating, "updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": productID}, update)
}

func (r *productRepository) PullFeedback(ctx context.Context, productID, feedbackID primitive.ObjectID, avgRating float64) (*entity.Product, error) {
	update := bson.M{
		"$pull": bson.M{"feedback_details": bson.M{"_id": feedbackID}},
		"$set":  bson.M{"avg_rating": avgRating, "updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": productID}, update)
}

func (r *productRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product entity.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}
