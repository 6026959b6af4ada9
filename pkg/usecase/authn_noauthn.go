package usecase

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
)

// NoAuthnUseCase authenticates every request as the anonymous admin. It is
// used in development mode only.
type NoAuthnUseCase struct{}

func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

// Login issues no credential; the anonymous token is returned for any input.
func (uc *NoAuthnUseCase) Login(ctx context.Context, email, password string) (string, *auth.Token, error) {
	return "", auth.NewAnonymousUser(), nil
}

// ValidateToken always returns the anonymous token
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
