// Package gateway declares the capabilities the services need from external
// providers (payments, object storage, email, token cache). Adapters under
// internal/adapter implement them; tests mock them.
package gateway

import (
	"context"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
)

// ProductParams is the remote payment-provider product record.
type ProductParams struct {
	Name        string
	Description string
	Images      []string
}

// PriceParams mints a remote price. Amount is in minor currency units.
// Prices are immutable once created; changing a price means minting a new one.
type PriceParams struct {
	ProductID  string
	UnitAmount int64
	Metadata   map[string]string
}

type CheckoutLineItem struct {
	PriceID  string
	Quantity int64
}

type CheckoutParams struct {
	Items         []CheckoutLineItem
	CustomerEmail string
	UserID        string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// SessionData is the order-relevant snapshot of a completed checkout session.
type SessionData struct {
	ID              string
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress entity.Address
	PaymentMethod   string
	PaymentIntentID string
	PaymentStatus   string
	AmountTotal     int64
	Metadata        map[string]string
}

// SessionLineItem carries the per-line-item price metadata stamped at SKU
// creation time (productId, skuCode, price, productName, lifetime).
type SessionLineItem struct {
	Quantity int64
	Metadata map[string]string
}

// WebhookEvent is a verified provider event. Session is populated only for
// checkout-completed events.
type WebhookEvent struct {
	Type    string
	Session *SessionData
}

const EventCheckoutSessionCompleted = "checkout.session.completed"

type PaymentGateway interface {
	CreateProduct(ctx context.Context, params ProductParams) (string, error)
	UpdateProduct(ctx context.Context, productID string, params ProductParams) error
	DeleteProduct(ctx context.Context, productID string) error
	CreatePrice(ctx context.Context, params PriceParams) (string, error)
	DeactivatePrice(ctx context.Context, priceID string) error
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	ListSessionLineItems(ctx context.Context, sessionID string) ([]SessionLineItem, error)
	ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}

type MediaObject struct {
	URL       string
	ObjectKey string
}

type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (*MediaObject, error)
	Delete(ctx context.Context, objectKey string) error
}

type Mailer interface {
	SendVerifyEmail(ctx context.Context, to, name, otp string) error
	SendPasswordReset(ctx context.Context, to, tempPassword, loginLink string) error
	SendOrderSuccess(ctx context.Context, to, orderID, orderLink string) error
}

type TokenCache interface {
	CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error
	InvalidateToken(ctx context.Context, userID string) error
}
