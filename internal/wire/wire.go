package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/internal/usecase"
	"storefront/pkg/database"
	"storefront/pkg/mailer"
	"storefront/pkg/metrics"
	"storefront/pkg/middleware"
	"storefront/pkg/presence"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Infra holds the connections built in main.
type Infra struct {
	DB       database.Pinger
	Mailer   mailer.Sender
	Presence presence.Tracker
	Tokens   *utils.TokenManager
}

// App holds the wired services and router.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, infra Infra, config *utils.Config, logger *zap.Logger) *App {
	metrics.Register()

	service := usecase.NewService(repo, usecase.Deps{
		Tokens:   infra.Tokens,
		Mailer:   infra.Mailer,
		Presence: infra.Presence,
	}, config, logger)
	handler := adaptor.NewHandler(service, infra.DB, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, service, logger)
	wireOrder(r, handler.Order, service, logger)

	r.Post("/api/access/verify", handler.Access.Verify)
	r.Get("/api/health", handler.Health.Check)
	r.Handle("/metrics", metrics.Handler())

	return r
}
