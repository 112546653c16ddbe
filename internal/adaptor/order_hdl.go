package adaptor

import (
	"errors"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// CreateOrder handles POST /api/orders/create
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order placed successfully", order)
}

func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrTotalMismatch):
		h.log.Warn(operation+" failed - total mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, "Order total does not match items", map[string]string{
			"total": err.Error(),
		})

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Failed to place order")
	}
}
