package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront/internal/usecase"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Order  *OrderHandler
	Access *AccessHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, db database.Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Order:  NewOrderHandler(service.Order, log),
		Access: NewAccessHandler(service.Access, log),
		Health: NewHealthHandler(db, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the 400 response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors), validationErrors)
		return false
	}
	return true
}
