package adaptor

import (
	"errors"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type AccessHandler struct {
	service usecase.AccessService
	log     *zap.Logger
}

func NewAccessHandler(service usecase.AccessService, log *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		log:     log,
	}
}

// Verify handles POST /api/access/verify
func (h *AccessHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.AccessRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Verify(r.Context(), req.Password); err != nil {
		h.handleServiceError(w, err, "verify access")
		return
	}

	utils.ResponseSuccess(w, "Access granted", nil)
}

func (h *AccessHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrAccessGateDisabled):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrAccessDenied):
		utils.ResponseUnauthorized(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
