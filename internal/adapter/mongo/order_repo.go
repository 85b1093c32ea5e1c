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

const orderCollectionName = "orders"

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.OrderRepository {
	collection := client.Database(cfg.Database).Collection(orderCollectionName)

	// One order per checkout session. The unique index backs the idempotent
	// create path when two webhook deliveries race.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "checkout_session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &orderRepository{collection: collection}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetByCheckoutSessionID(ctx, order.CheckoutSessionID)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var order entity.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by id %s: %w", id.Hex(), err)
	}
	return &order, nil
}

func (r *orderRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Order, error) {
	var order entity.Order
	err := r.collection.FindOne(ctx, bson.M{"checkout_session_id": sessionID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by checkout session id: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, params repository.ListOrdersParams) ([]entity.Order, error) {
	filter := bson.M{}
	if params.UserID != "" {
		filter["user_id"] = params.UserID
	}
	if params.Status != "" {
		filter["order_status"] = params.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode listed orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) FindCompletedWithProduct(ctx context.Context, userID, productID string) (*entity.Order, error) {
	filter := bson.M{
		"user_id":                  userID,
		"order_status":             entity.OrderStatusCompleted,
		"ordered_items.product_id": productID,
	}
	var order entity.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find completed order with product: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FulfillByCheckoutSessionID(ctx context.Context, sessionID string, params repository.FulfillOrderParams) (*entity.Order, error) {
	update := bson.M{"$set": bson.M{
		"order_status":       params.OrderStatus,
		"is_order_delivered": params.IsOrderDelivered,
		"ordered_items":      params.OrderedItems,
		"payment_info":       params.PaymentInfo,
		"updated_at":         time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order entity.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"checkout_session_id": sessionID}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fulfill order: %w", err)
	}
	return &order, nil
}
