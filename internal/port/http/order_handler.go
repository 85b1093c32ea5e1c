package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxWebhookBody bounds raw webhook payload reads, matching the payment
// provider's own limit.
const maxWebhookBody = 64 << 10

type OrderHandler struct {
	orders *service.OrderService
	log    logger.Logger
}

func NewOrderHandler(orders *service.OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	status := entity.OrderStatus(r.URL.Query().Get("status"))
	result, err := h.orders.List(r.Context(), status, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "orders fetched successfully", result)
}

func (h *OrderHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	user := userFromContext(r.Context())
	if user.Type == entity.UserTypeCustomer && order.UserID != user.ID.Hex() {
		writeError(w, service.ErrForbidden)
		return
	}
	writeSuccess(w, http.StatusOK, "order fetched successfully", order)
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CheckoutDetails []service.CheckoutItem `json:"checkoutDetails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.CheckoutDetails) == 0 {
		writeError(w, errBadRequest)
		return
	}
	user := userFromContext(r.Context())
	url, err := h.orders.Checkout(r.Context(), input.CheckoutDetails, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "payment checkout session created", map[string]string{"url": url})
}

// Webhook consumes raw provider events. The signature check needs the exact
// request bytes, so the body is not decoded as JSON here.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	err = h.orders.Webhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.log.Errorf("webhook processing failed: %v", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "webhook processed", nil)
}
