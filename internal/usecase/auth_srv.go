package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/metrics"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *utils.TokenManager
	activity *activity
	log      *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *utils.TokenManager,
	act *activity,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		activity: act,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	email := entity.NormalizeEmail(req.Email)

	existingUser, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		metrics.IncAuth("register", "conflict")
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.activity.now()
	user := &entity.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
		LastActiveAt: &now,
		Newsletter:   req.Newsletter,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can slip past the pre-check
		if errors.Is(err, repository.ErrDuplicateEmail) {
			metrics.IncAuth("register", "conflict")
			return nil, ErrEmailTaken
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.IncAuth("register", "success")
	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.Bool("newsletter", user.Newsletter),
	)
	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	email := entity.NormalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", email))
		metrics.IncAuth("login", "invalid")
		return nil, ErrInvalidCredentials
	}

	if user.IsBanned {
		s.log.Warn("Banned user tried to login", zap.Int64("user_id", user.ID))
		metrics.IncAuth("login", "banned")
		return nil, ErrUserBanned
	}

	s.activity.touch(ctx, user, true)

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.IncAuth("login", "success")
	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return resp, nil
}

// Authenticate resolves a bearer token to the current user row. Banned and
// deleted users are rejected even while their token is still valid.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("Token rejected", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		s.log.Error("Failed to load token user", zap.Error(err), zap.Int64("user_id", claims.UserID))
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	s.activity.touch(ctx, user, false)
	return user, nil
}

// EnsureAdmin creates the bootstrap admin, or promotes an existing account with that email.
// The password of an existing account is left unchanged.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}

	if user != nil {
		if user.IsAdmin() {
			return nil
		}
		if err := s.users.SetRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.log.Info("Existing user promoted to admin", zap.Int64("user_id", user.ID))
		return nil
	}

	if len(password) < utils.MinPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", utils.MinPasswordLength)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		FirstName:    "Admin",
		LastName:     "",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin account created", zap.Int64("user_id", admin.ID), zap.String("email", email))
	return nil
}

func (s *authService) issue(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}
