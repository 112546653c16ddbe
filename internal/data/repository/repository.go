package repository

import (
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User UserRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User: NewUserRepository(db, log),
	}
}
