package middleware

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/data/entity"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the current user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Auth validates the JWT and loads the user row, so bans and deletions apply
// to tokens that were issued before them.
func Auth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			token, ok := utils.ExtractBearerToken(authHeader)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			switch {
			case errors.Is(err, usecase.ErrUnauthenticated):
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			case errors.Is(err, usecase.ErrUserBanned):
				logger.Warn("Banned user request rejected", zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Account is banned")
				return
			case err != nil:
				logger.Error("Failed to authenticate request", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin rejects requests whose authenticated user is not an admin. Must run after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", userID),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
