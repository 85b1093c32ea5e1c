package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Taraansh/e-commerce/internal/app/config"
	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

// StripeGateway implements gateway.PaymentGateway on the Stripe API.
type StripeGateway struct {
	sc  *client.API
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &StripeGateway{sc: sc, cfg: cfg}
}

func (g *StripeGateway) CreateProduct(ctx context.Context, params gateway.ProductParams) (string, error) {
	p := &stripe.ProductParams{
		Name:        stripe.String(params.Name),
		Description: stripe.String(params.Description),
	}
	p.Context = ctx
	product, err := g.sc.Products.New(p)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe product: %w", err)
	}
	return product.ID, nil
}

func (g *StripeGateway) UpdateProduct(ctx context.Context, productID string, params gateway.ProductParams) error {
	p := &stripe.ProductParams{}
	p.Context = ctx
	if params.Name != "" {
		p.Name = stripe.String(params.Name)
	}
	if params.Description != "" {
		p.Description = stripe.String(params.Description)
	}
	if len(params.Images) > 0 {
		p.Images = stripe.StringSlice(params.Images)
	}
	if _, err := g.sc.Products.Update(productID, p); err != nil {
		return fmt.Errorf("failed to update stripe product %s: %w", productID, err)
	}
	return nil
}

func (g *StripeGateway) DeleteProduct(ctx context.Context, productID string) error {
	p := &stripe.ProductParams{}
	p.Context = ctx
	if _, err := g.sc.Products.Del(productID, p); err != nil {
		return fmt.Errorf("failed to delete stripe product %s: %w", productID, err)
	}
	return nil
}

func (g *StripeGateway) CreatePrice(ctx context.Context, params gateway.PriceParams) (string, error) {
	p := &stripe.PriceParams{
		UnitAmount: stripe.Int64(params.UnitAmount),
		Currency:   stripe.String(g.cfg.Currency),
		Product:    stripe.String(params.ProductID),
	}
	p.Context = ctx
	for key, value := range params.Metadata {
		p.AddMetadata(key, value)
	}
	price, err := g.sc.Prices.New(p)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe price: %w", err)
	}
	return price.ID, nil
}

func (g *StripeGateway) DeactivatePrice(ctx context.Context, priceID string) error {
	p := &stripe.PriceParams{Active: stripe.Bool(false)}
	p.Context = ctx
	if _, err := g.sc.Prices.Update(priceID, p); err != nil {
		return fmt.Errorf("failed to deactivate stripe price %s: %w", priceID, err)
	}
	return nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.Items))
	for _, item := range params.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
			AdjustableQuantity: &stripe.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
				Minimum: stripe.Int64(1),
				Maximum: stripe.Int64(5),
			},
		})
	}

	p := &stripe.CheckoutSessionParams{
		LineItems:                lineItems,
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		CustomerEmail: stripe.String(params.CustomerEmail),
		SuccessURL:    stripe.String(g.cfg.SuccessURL),
		CancelURL:     stripe.String(g.cfg.CancelURL),
	}
	p.Context = ctx
	p.AddMetadata("userId", params.UserID)

	session, err := g.sc.CheckoutSessions.New(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &gateway.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) ListSessionLineItems(ctx context.Context, sessionID string) ([]gateway.SessionLineItem, error) {
	p := &stripe.CheckoutSessionListLineItemsParams{}
	p.Context = ctx

	var items []gateway.SessionLineItem
	iter := g.sc.CheckoutSessions.ListLineItems(sessionID, p)
	for iter.Next() {
		lineItem := iter.LineItem()
		item := gateway.SessionLineItem{Quantity: lineItem.Quantity}
		if lineItem.Price != nil {
			item.Metadata = lineItem.Price.Metadata
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list session line items: %w", err)
	}
	return items, nil
}

func (g *StripeGateway) ConstructWebhookEvent(payload []byte, signature string) (*gateway.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.cfg.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	out := &gateway.WebhookEvent{Type: string(event.Type)}
	if out.Type != gateway.EventCheckoutSessionCompleted {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session payload: %w", err)
	}
	out.Session = sessionData(&session)
	return out, nil
}

func sessionData(session *stripe.CheckoutSession) *gateway.SessionData {
	data := &gateway.SessionData{
		ID:            session.ID,
		CustomerEmail: session.CustomerEmail,
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Metadata:      session.Metadata,
	}
	if len(session.PaymentMethodTypes) > 0 {
		data.PaymentMethod = session.PaymentMethodTypes[0]
	}
	if session.PaymentIntent != nil {
		data.PaymentIntentID = session.PaymentIntent.ID
	}
	if details := session.CustomerDetails; details != nil {
		data.CustomerName = details.Name
		data.CustomerPhone = details.Phone
		if data.CustomerEmail == "" {
			data.CustomerEmail = details.Email
		}
		if addr := details.Address; addr != nil {
			data.CustomerAddress = entity.Address{
				Line1:      addr.Line1,
				Line2:      addr.Line2,
				City:       addr.City,
				State:      addr.State,
				PostalCode: addr.PostalCode,
				Country:    addr.Country,
			}
		}
	}
	return data
}
