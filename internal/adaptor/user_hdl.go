package adaptor

import (
	"errors"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// GetAllUsers handles GET /api/admin/users?page=1&per_page=10 (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	}
	if req.Page > utils.MaxPage {
		req.Page = utils.MaxPage
	}
	if req.PerPage > utils.MaxPerPage {
		req.PerPage = utils.MaxPerPage
	}

	users, err := h.service.GetAllUsers(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get all users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// BanUser handles POST /api/admin/users/{id}/ban (admin only)
func (h *UserHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	userID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req request.BanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.SetBanned(r.Context(), actorID, userID, *req.Banned)
	if err != nil {
		h.handleServiceError(w, err, "ban user")
		return
	}

	message := "User unbanned successfully"
	if *req.Banned {
		message = "User banned successfully"
	}
	utils.ResponseSuccess(w, message, user)
}

// DeleteUser handles DELETE /api/admin/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	userID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), actorID, userID); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrProtectedUser),
		errors.Is(err, usecase.ErrSelfAction):
		h.log.Warn(operation+" failed - forbidden target", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
