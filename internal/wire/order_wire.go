package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/usecase"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	r.With(middleware.Auth(service.Auth, log)).Post("/api/orders/create", orderHandler.CreateOrder)
}
