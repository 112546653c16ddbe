package usecase

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("invalid or expired token")
	ErrUserBanned         = errors.New("account is banned")
	ErrUserNotFound       = errors.New("user not found")
	ErrProtectedUser      = errors.New("admin accounts cannot be modified")
	ErrSelfAction         = errors.New("cannot perform this action on your own account")
	ErrTotalMismatch      = errors.New("order total does not match items")
	ErrAccessDenied       = errors.New("invalid access password")
	ErrAccessGateDisabled = errors.New("access gate is not enabled")
)
