package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"go.uber.org/zap"
)

// AccessService guards the storefront behind a shared password.
type AccessService interface {
	Enabled() bool
	Verify(ctx context.Context, password string) error
}

type accessService struct {
	digest  [sha256.Size]byte
	enabled bool
	log     *zap.Logger
}

func NewAccessService(password string, log *zap.Logger) AccessService {
	return &accessService{
		digest:  sha256.Sum256([]byte(password)),
		enabled: password != "",
		log:     log.With(zap.String("service", "access")),
	}
}

func (s *accessService) Enabled() bool {
	return s.enabled
}

// Verify compares digests so timing does not reveal the password length.
// Surrounding whitespace from copy-paste is ignored.
func (s *accessService) Verify(ctx context.Context, password string) error {
	if !s.enabled {
		return ErrAccessGateDisabled
	}

	given := sha256.Sum256([]byte(strings.TrimSpace(password)))
	if subtle.ConstantTimeCompare(given[:], s.digest[:]) != 1 {
		s.log.Warn("Wrong access password")
		return ErrAccessDenied
	}
	return nil
}
