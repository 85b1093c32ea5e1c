package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// License is a single-use credential tied to a product SKU. It is sold at most
// once; available stock for a SKU is the count of its unsold licenses.
type License struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID  primitive.ObjectID `bson:"product_id" json:"productId"`
	ProductSku primitive.ObjectID `bson:"product_sku" json:"productSku"`
	LicenseKey string             `bson:"license_key" json:"licenseKey"`
	IsSold     bool               `bson:"is_sold" json:"isSold"`
	OrderID    string             `bson:"order_id,omitempty" json:"orderId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
