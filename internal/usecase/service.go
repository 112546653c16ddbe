package usecase

import (
	"storefront/internal/data/repository"
	"storefront/pkg/mailer"
	"storefront/pkg/presence"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the outbound integrations services talk to besides the database.
type Deps struct {
	Tokens   *utils.TokenManager
	Mailer   mailer.Sender
	Presence presence.Tracker
}

type Service struct {
	Auth   AuthService
	User   UserService
	Order  OrderService
	Access AccessService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	act := newActivity(repo.User, deps.Presence, config.Presence.Window(), log)

	return &Service{
		Auth:   NewAuthService(repo.User, deps.Tokens, act, log),
		User:   NewUserService(repo.User, act, log),
		Order:  NewOrderService(repo.User, deps.Mailer, config.Email, log),
		Access: NewAccessService(config.App.SiteAccessPassword, log),
	}
}
