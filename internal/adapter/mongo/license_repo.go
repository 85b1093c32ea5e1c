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

const licenseCollectionName = "licenses"

type licenseRepository struct {
	collection *mongo.Collection
}

func NewLicenseRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.LicenseRepository {
	return &licenseRepository{
		collection: client.Database(cfg.Database).Collection(licenseCollectionName),
	}
}

func (r *licenseRepository) Create(ctx context.Context, license *entity.License) (*entity.License, error) {
	now := time.Now().UTC()
	license.CreatedAt = now
	license.UpdatedAt = now
	if license.ID.IsZero() {
		license.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, license); err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}
	return license, nil
}

func (r *licenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete license: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *licenseRepository) Find(ctx context.Context, params repository.FindLicensesParams) ([]entity.License, error) {
	filter := bson.M{}
	if !params.ProductID.IsZero() {
		filter["product_id"] = params.ProductID
	}
	if !params.ProductSku.IsZero() {
		filter["product_sku"] = params.ProductSku
	}
	if params.IsSold != nil {
		filter["is_sold"] = *params.IsSold
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find licenses: %w", err)
	}
	defer cursor.Close(ctx)

	var licenses []entity.License
	if err := cursor.All(ctx, &licenses); err != nil {
		return nil, fmt.Errorf("failed to decode licenses: %w", err)
	}
	return licenses, nil
}

func (r *licenseRepository) CountUnsold(ctx context.Context, skuID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"product_sku": skuID, "is_sold": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unsold licenses: %w", err)
	}
	return count, nil
}

func (r *licenseRepository) UpdateKey(ctx context.Context, id primitive.ObjectID, licenseKey string) (*entity.License, error) {
	update := bson.M{"$set": bson.M{"license_key": licenseKey, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var license entity.License
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&license)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update license key: %w", err)
	}
	return &license, nil
}

func (r *licenseRepository) MarkSold(ctx context.Context, ids []primitive.ObjectID, orderID string) error {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{
		"is_sold":    true,
		"order_id":   orderID,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark licenses as sold: %w", err)
	}
	return nil
}

func (r *licenseRepository) DeleteAllForSku(ctx context.Context, skuID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"product_sku": skuID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete licenses for sku: %w", err)
	}
	return result.DeletedCount, nil
}
