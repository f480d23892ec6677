package transport

import (
	"errors"
	"net/http"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutPayload is the checkout form submission. It carries no
// totals; the server prices the order from the catalog.
type CheckoutPayload struct {
	FirstName      string `json:"firstName" validate:"required,min=2"`
	LastName       string `json:"lastName" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=10"`
	Address        string `json:"address" validate:"required,min=5"`
	City           string `json:"city" validate:"required,min=2"`
	State          string `json:"state" validate:"required,min=2"`
	Pincode        string `json:"pincode" validate:"required,min=6"`
	ShippingMethod string `json:"shippingMethod" validate:"required,oneof=free standard express"`
	PaymentMethod  string `json:"paymentMethod" validate:"required,oneof=card upi cod"`
}

// OrderHandler handles HTTP requests for checkout and order history.
// Every route requires an authenticated session.
type OrderHandler struct {
	orders   service.OrderService
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, checkout service.CheckoutService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, checkout: checkout, logger: logger}
}

// RegisterRoutes registers order routes behind the auth middleware. The
// session middleware runs after auth so the cart is scoped to the user.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.SessionMiddleware)

		r.Get("/api/orders", h.List)
		r.Get("/api/orders/{id}", h.Get)
		r.Post("/api/orders/{id}/cancel", h.Cancel)
		r.Delete("/api/orders/{id}", h.Delete)
		r.Post("/api/checkout", h.Checkout)
	})
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns one of the caller's orders. Orders belonging to other
// users read as not found.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orders.Get(r.Context(), userID, orderID)
	if err != nil {
		h.respondOrderError(w, err, "Failed to get order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Cancel transitions one of the caller's orders to cancelled.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orders.Cancel(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotCancellable) {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondOrderError(w, err, "Failed to cancel order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Delete removes one of the caller's cancelled orders.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.orders.Delete(r.Context(), userID, orderID); err != nil {
		if errors.Is(err, service.ErrOrderNotDeletable) {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondOrderError(w, err, "Failed to delete order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

// Checkout validates the shipping form, prices the cart server-side,
// and places the order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var payload CheckoutPayload
	if err := middleware.DecodeAndValidate(r, &payload); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := service.CheckoutRequest{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Address:        payload.Address,
		City:           payload.City,
		State:          payload.State,
		Pincode:        payload.Pincode,
		ShippingMethod: domain.ShippingMethod(payload.ShippingMethod),
		PaymentMethod:  domain.PaymentMethod(payload.PaymentMethod),
	}

	order, err := h.checkout.PlaceOrder(r.Context(), userID, session, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrInvalidShippingMethod),
			errors.Is(err, service.ErrInvalidPaymentMethod):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusBadRequest, "cart contains a product no longer in the catalog")
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "order store unavailable, please retry")
		}
		return
	}

	h.logger.Info("Checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.Error("Invalid user ID in token", zap.Error(err))
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid token claims")
		return uuid.Nil, false
	}

	return userID, true
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, err error, logMessage string) {
	if errors.Is(err, repository.ErrOrderNotFound) || errors.Is(err, service.ErrOrderForbidden) {
		middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		return
	}
	h.logger.Error(logMessage, zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process order")
}
