package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateEmail is returned when the users_email_key constraint rejects a write.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Stats(ctx context.Context, onlineSince time.Time) (*entity.UserStats, error)
	TouchLastActive(ctx context.Context, id int64, at time.Time) error
	SetBanned(ctx context.Context, id int64, banned bool) error
	SetRole(ctx context.Context, id int64, role entity.UserRole) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, first_name, last_name, email, password, role,
		       is_banned, last_active_at, newsletter, created_at, updated_at`

func scanUser(row pgx.Row, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsBanned,
		&user.LastActiveAt,
		&user.Newsletter,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// Create inserts a new user and fills in the generated id and timestamps.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password, role,
		                   is_banned, last_active_at, newsletter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := ur.db.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsBanned,
		user.LastActiveAt,
		user.Newsletter,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, id), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	return &user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, email), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return &user, nil
}

// FindAll returns one page of users, newest first.
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		var user entity.User
		if err := scanUser(rows, &user); err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

// Stats counts all users in one pass; a user is online when last_active_at >= onlineSince.
func (ur *userRepository) Stats(ctx context.Context, onlineSince time.Time) (*entity.UserStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE last_active_at >= $1),
		       COUNT(*) FILTER (WHERE role = 'admin'),
		       COUNT(*) FILTER (WHERE is_banned)
		FROM users
	`

	var stats entity.UserStats
	err := ur.db.QueryRow(ctx, query, onlineSince).Scan(
		&stats.Total,
		&stats.Online,
		&stats.Admins,
		&stats.Banned,
	)
	if err != nil {
		ur.log.Error("Failed to compute user stats", zap.Error(err))
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &stats, nil
}

func (ur *userRepository) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	// updated_at is left alone: activity is not a profile change
	result, err := ur.db.Exec(ctx, `UPDATE users SET last_active_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		ur.log.Error("Failed to touch last active",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return fmt.Errorf("touch last active %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func (ur *userRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `UPDATE users SET is_banned = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, banned)
	if err != nil {
		ur.log.Error("Failed to update ban flag",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.Bool("banned", banned),
		)
		return fmt.Errorf("set banned %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func (ur *userRepository) SetRole(ctx context.Context, id int64, role entity.UserRole) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}

	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, role)
	if err != nil {
		ur.log.Error("Failed to update role",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("set role %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	ur.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
