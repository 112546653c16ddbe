package usecase

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.UserListResponse, error)
	SetBanned(ctx context.Context, actorID, userID int64, banned bool) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	activity *activity
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, act *activity, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		activity: act,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to get user profile", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	online := us.activity.online(ctx, []*entity.User{user})
	resp := response.UserToResponse(user, online[user.ID])
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.UserListResponse, error) {
	limit := req.Limit()
	offset := req.Offset()

	users, err := us.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", limit),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}

	// stats.Total doubles as the pagination total
	stats, err := us.activity.stats(ctx)
	if err != nil {
		us.log.Error("Failed to compute user stats", zap.Error(err))
		return nil, fmt.Errorf("user stats: %w", err)
	}

	online := us.activity.online(ctx, users)
	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user, online[user.ID])
	}

	pagination := response.NewPaginationMeta(req.Page, limit, stats.Total)

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", stats.Total),
		zap.Int("page", req.Page),
		zap.Int("total_pages", pagination.TotalPages),
	)

	return &response.UserListResponse{
		Users:      userResponses,
		Stats:      response.StatsToResponse(stats),
		Pagination: pagination,
	}, nil
}

func (us *userService) SetBanned(ctx context.Context, actorID, userID int64, banned bool) (*response.UserResponse, error) {
	user, err := us.loadTarget(ctx, actorID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsBanned != banned {
		if err := us.userRepo.SetBanned(ctx, userID, banned); err != nil {
			us.log.Error("Failed to update ban flag", zap.Error(err), zap.Int64("user_id", userID))
			return nil, fmt.Errorf("set banned: %w", err)
		}
		user.IsBanned = banned
	}

	if banned {
		us.activity.forget(ctx, userID)
	}

	us.log.Info("User ban updated",
		zap.Int64("user_id", userID),
		zap.Int64("admin_id", actorID),
		zap.Bool("banned", banned),
	)

	online := us.activity.online(ctx, []*entity.User{user})
	resp := response.UserToResponse(user, online[user.ID])
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	user, err := us.loadTarget(ctx, actorID, userID)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, userID); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("delete user: %w", err)
	}
	us.activity.forget(ctx, userID)

	us.log.Info("User deleted",
		zap.Int64("user_id", userID),
		zap.Int64("admin_id", actorID),
		zap.String("email", user.Email),
	)
	return nil
}

// loadTarget fetches the user an admin action applies to. Admin accounts,
// including the actor's own, are never valid targets.
func (us *userService) loadTarget(ctx context.Context, actorID, userID int64) (*entity.User, error) {
	if actorID == userID {
		return nil, ErrSelfAction
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to get target user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsAdmin() {
		return nil, ErrProtectedUser
	}
	return user, nil
}
