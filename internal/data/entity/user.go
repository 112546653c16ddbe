package entity

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Base
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Role         UserRole   `db:"role"`
	IsBanned     bool       `db:"is_banned"`
	LastActiveAt *time.Time `db:"last_active_at"`
	Newsletter   bool       `db:"newsletter"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ActiveWithin reports whether the user was active during the last window before now.
func (u *User) ActiveWithin(now time.Time, window time.Duration) bool {
	if u.LastActiveAt == nil {
		return false
	}
	return now.Sub(*u.LastActiveAt) <= window
}

// NormalizeEmail is the canonical form stored in users.email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserStats aggregates the admin panel counters.
type UserStats struct {
	Total  int64
	Online int64
	Admins int64
	Banned int64
}
