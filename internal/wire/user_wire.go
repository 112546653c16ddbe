package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/usecase"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile and admin user management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	r.With(middleware.Auth(service.Auth, log)).Get("/api/user/profile", userHandler.GetProfile)

	r.With(
		middleware.Auth(service.Auth, log),
		middleware.Admin(log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)
		r.Post("/{id}/ban", userHandler.BanUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
