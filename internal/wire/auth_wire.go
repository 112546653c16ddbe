package wire

import (
	"storefront/internal/adaptor"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// public, rate limited per client IP
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit.AuthPerMinute, config.RateLimit.AuthBurst, log))

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
}
