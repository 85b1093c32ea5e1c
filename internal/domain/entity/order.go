package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

const PaymentStatusPaid = "paid"

type Address struct {
	Line1      string `bson:"line1,omitempty" json:"line1"`
	Line2      string `bson:"line2,omitempty" json:"line2"`
	City       string `bson:"city,omitempty" json:"city"`
	State      string `bson:"state,omitempty" json:"state"`
	PostalCode string `bson:"postal_code,omitempty" json:"postalCode"`
	Country    string `bson:"country,omitempty" json:"country"`
}

type PaymentInfo struct {
	PaymentMethod   string    `bson:"payment_method" json:"paymentMethod"`
	PaymentIntentID string    `bson:"payment_intent_id" json:"paymentIntentId"`
	PaymentDate     time.Time `bson:"payment_date" json:"paymentDate"`
	PaymentAmount   float64   `bson:"payment_amount" json:"paymentAmount"`
	PaymentStatus   string    `bson:"payment_status" json:"paymentStatus"`
}

// OrderedItem is a line item snapshotted from the checkout session. Licenses
// is filled in during fulfillment.
type OrderedItem struct {
	ProductID   string   `bson:"product_id" json:"productId"`
	ProductName string   `bson:"product_name" json:"productName"`
	SkuCode     string   `bson:"sku_code" json:"skuCode"`
	Price       float64  `bson:"price" json:"price"`
	Quantity    int      `bson:"quantity" json:"quantity"`
	Lifetime    bool     `bson:"lifetime" json:"lifetime"`
	Licenses    []string `bson:"licenses,omitempty" json:"licenses"`
}

type Order struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID             string             `bson:"order_id" json:"orderId"`
	UserID              string             `bson:"user_id" json:"userId"`
	UserName            string             `bson:"user_name" json:"userName"`
	CustomerEmail       string             `bson:"customer_email" json:"customerEmail"`
	CustomerPhoneNumber string             `bson:"customer_phone_number,omitempty" json:"customerPhoneNumber"`
	CustomerAddress     Address            `bson:"customer_address,omitempty" json:"customerAddress"`
	PaymentInfo         PaymentInfo        `bson:"payment_info" json:"paymentInfo"`
	OrderedItems        []OrderedItem      `bson:"ordered_items" json:"orderedItems"`
	CheckoutSessionID   string             `bson:"checkout_session_id" json:"checkoutSessionId"`
	OrderStatus         OrderStatus        `bson:"order_status" json:"orderStatus"`
	IsOrderDelivered    bool               `bson:"is_order_delivered" json:"isOrderDelivered"`
	OrderDate           time.Time          `bson:"order_date" json:"orderDate"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}
