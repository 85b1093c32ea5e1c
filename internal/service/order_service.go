package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	licenses  repository.LicenseRepository
	users     repository.UserRepository
	payments  gateway.PaymentGateway
	mailer    gateway.Mailer
	orderLink string
	log       logger.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	licenses repository.LicenseRepository,
	users repository.UserRepository,
	payments gateway.PaymentGateway,
	mailer gateway.Mailer,
	orderLink string,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		licenses:  licenses,
		users:     users,
		payments:  payments,
		mailer:    mailer,
		orderLink: orderLink,
		log:       log,
	}
}

// List returns the caller's orders. Non-customer users see every order.
func (s *OrderService) List(ctx context.Context, status entity.OrderStatus, user *entity.User) ([]entity.Order, error) {
	params := repository.ListOrdersParams{Status: status}
	if user.Type == entity.UserTypeCustomer {
		params.UserID = user.ID.Hex()
	}
	return s.orders.List(ctx, params)
}

func (s *OrderService) FindOne(ctx context.Context, id string) (*entity.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.orders.GetByID(ctx, orderID)
}

type CheckoutItem struct {
	SkuID      string `json:"skuId"`
	SkuPriceID string `json:"skuPriceId"`
	Quantity   int64  `json:"quantity"`
}

// Checkout builds a payment session for the requested cart. Items whose SKU
// does not have enough unsold licenses left are dropped from the session.
func (s *OrderService) Checkout(ctx context.Context, items []CheckoutItem, user *entity.User) (string, error) {
	lineItems := make([]gateway.CheckoutLineItem, 0, len(items))
	for _, item := range items {
		skuID, err := primitive.ObjectIDFromHex(item.SkuID)
		if err != nil {
			s.log.Warnf("dropping cart item with invalid sku id %q", item.SkuID)
			continue
		}
		unsold, err := s.licenses.CountUnsold(ctx, skuID)
		if err != nil {
			return "", err
		}
		if unsold < item.Quantity {
			s.log.Warnf("dropping cart item for sku %s: %d licenses left, %d requested", item.SkuID, unsold, item.Quantity)
			continue
		}
		lineItems = append(lineItems, gateway.CheckoutLineItem{
			PriceID:  item.SkuPriceID,
			Quantity: item.Quantity,
		})
	}
	if len(lineItems) == 0 {
		return "", ErrNoItemsAvailable
	}

	session, err := s.payments.CreateCheckoutSession(ctx, gateway.CheckoutParams{
		Items:         lineItems,
		CustomerEmail: user.Email,
		UserID:        user.ID.Hex(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

// Webhook verifies and processes a payment provider event. Completed checkout
// sessions are recorded as orders and, once paid, fulfilled with license keys.
func (s *OrderService) Webhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.payments.ConstructWebhookEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if event.Type != gateway.EventCheckoutSessionCompleted || event.Session == nil {
		s.log.Infof("ignoring webhook event of type %s", event.Type)
		return nil
	}

	order, err := s.createOrderFromSession(ctx, event.Session)
	if err != nil {
		return err
	}

	if event.Session.PaymentStatus == entity.PaymentStatusPaid && order.OrderStatus != entity.OrderStatusCompleted {
		fulfilled, err := s.fulfillOrder(ctx, order)
		if err != nil {
			return err
		}
		s.sendOrderMailAsync(fulfilled)
	}
	return nil
}

// createOrderFromSession records a pending order for the checkout session.
// Repeated deliveries of the same event return the already stored order.
func (s *OrderService) createOrderFromSession(ctx context.Context, session *gateway.SessionData) (*entity.Order, error) {
	existing, err := s.orders.GetByCheckoutSessionID(ctx, session.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	lineItems, err := s.payments.ListSessionLineItems(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session line items: %w", err)
	}

	items := make([]entity.OrderedItem, 0, len(lineItems))
	for _, li := range lineItems {
		price, _ := strconv.ParseFloat(li.Metadata["price"], 64)
		lifetime, _ := strconv.ParseBool(li.Metadata["lifetime"])
		items = append(items, entity.OrderedItem{
			ProductID:   li.Metadata["productId"],
			ProductName: li.Metadata["productName"],
			SkuCode:     li.Metadata["skuCode"],
			Price:       price,
			Quantity:    int(li.Quantity),
			Lifetime:    lifetime,
		})
	}

	userID := session.Metadata["userId"]
	var userName string
	if session.CustomerName != "" {
		userName = session.CustomerName
	} else if uid, err := primitive.ObjectIDFromHex(userID); err == nil {
		if user, err := s.users.GetByID(ctx, uid); err == nil {
			userName = user.Name
		}
	}

	now := time.Now()
	order := &entity.Order{
		OrderID:             generateOrderID(),
		UserID:              userID,
		UserName:            userName,
		CustomerEmail:       session.CustomerEmail,
		CustomerPhoneNumber: session.CustomerPhone,
		CustomerAddress:     session.CustomerAddress,
		PaymentInfo: entity.PaymentInfo{
			PaymentMethod:   session.PaymentMethod,
			PaymentIntentID: session.PaymentIntentID,
			PaymentDate:     now,
			PaymentAmount:   float64(session.AmountTotal) / 100,
			PaymentStatus:   session.PaymentStatus,
		},
		OrderedItems:      items,
		CheckoutSessionID: session.ID,
		OrderStatus:       entity.OrderStatusPending,
		OrderDate:         now,
	}
	return s.orders.Create(ctx, order)
}

// fulfillOrder allocates license keys for every line item and marks the order
// completed. Allocation is best effort: a SKU with fewer unsold licenses than
// ordered yields a short list.
func (s *OrderService) fulfillOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	items := make([]entity.OrderedItem, len(order.OrderedItems))
	copy(items, order.OrderedItems)

	for i, item := range items {
		keys, err := s.allocateLicenses(ctx, item, order.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate licenses for product %s: %w", item.ProductID, err)
		}
		if len(keys) < item.Quantity {
			s.log.Warnf("order %s: allocated %d of %d licenses for sku %s", order.OrderID, len(keys), item.Quantity, item.SkuCode)
		}
		items[i].Licenses = keys
	}

	paymentInfo := order.PaymentInfo
	paymentInfo.PaymentStatus = entity.PaymentStatusPaid

	return s.orders.FulfillByCheckoutSessionID(ctx, order.CheckoutSessionID, repository.FulfillOrderParams{
		OrderStatus:      entity.OrderStatusCompleted,
		IsOrderDelivered: true,
		OrderedItems:     items,
		PaymentInfo:      paymentInfo,
	})
}

func (s *OrderService) allocateLicenses(ctx context.Context, item entity.OrderedItem, orderID string) ([]string, error) {
	productID, err := primitive.ObjectIDFromHex(item.ProductID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	sku := product.FindSkuByCode(item.SkuCode)
	if sku == nil {
		return nil, repository.ErrNotFound
	}

	notSold := false
	licenses, err := s.licenses.Find(ctx, repository.FindLicensesParams{
		ProductID:  product.ID,
		ProductSku: sku.ID,
		IsSold:     &notSold,
		Limit:      int64(item.Quantity),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(licenses))
	keys := make([]string, 0, len(licenses))
	for _, lic := range licenses {
		ids = append(ids, lic.ID)
		keys = append(keys, lic.LicenseKey)
	}
	if len(ids) > 0 {
		if err := s.licenses.MarkSold(ctx, ids, orderID); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (s *OrderService) sendOrderMailAsync(order *entity.Order) {
	to := order.CustomerEmail
	orderID := order.OrderID
	link := s.orderLink + order.ID.Hex()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := s.mailer.SendOrderSuccess(ctx, to, orderID, link); err != nil {
			s.log.Warnf("failed to send order confirmation email: %v", err)
		}
	}()
}

func generateOrderID() string {
	return strconv.FormatInt(time.Now().UnixMilli()+rand.Int63n(1000), 10)
}
