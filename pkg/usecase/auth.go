package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the iss claim of issued tokens.
const TokenIssuer = "grc"

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

// AuthUseCaseInterface is implemented by the password based AuthUseCase and
// by NoAuthnUseCase for development mode.
type AuthUseCaseInterface interface {
	Login(ctx context.Context, email, password string) (string, *auth.Token, error)
	ValidateToken(ctx context.Context, raw string) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

type AuthUseCase struct {
	repo     interfaces.Repository
	activity interfaces.ActivityLog
	secret   []byte
	ttl      time.Duration
	sessions *sessionCache
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithTokenTTL sets the session lifetime
func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.ttl = ttl
	}
}

// WithLoginActivity records successful logins in log
func WithLoginActivity(log interfaces.ActivityLog) AuthOption {
	return func(uc *AuthUseCase) {
		uc.activity = log
	}
}

func NewAuthUseCase(repo interfaces.Repository, secret []byte, options ...AuthOption) (*AuthUseCase, error) {
	if len(secret) < MinSecretLength {
		return nil, goerr.New("JWT secret is too short", goerr.V("min", MinSecretLength))
	}

	uc := &AuthUseCase{
		repo:     repo,
		secret:   secret,
		ttl:      auth.DefaultTokenTTL,
		sessions: newSessionCache(),
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc, nil
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// Login verifies the password and issues a signed session token. Unknown
// accounts and wrong passwords are reported the same way.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, *auth.Token, error) {
	user, err := uc.repo.User().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, goerr.Wrap(ErrUnauthorized, "invalid credentials", goerr.V(EmailKey, email))
		}
		return "", nil, goerr.Wrap(err, "failed to look up user", goerr.V(EmailKey, email))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, goerr.Wrap(ErrUnauthorized, "invalid credentials", goerr.V(EmailKey, email))
	}

	token := auth.NewToken(user.ID, user.Email, user.Name, user.Role, uc.ttl)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return "", nil, goerr.Wrap(err, "failed to store token", goerr.V("tokenID", token.ID))
	}

	signed, err := uc.sign(token)
	if err != nil {
		return "", nil, err
	}

	if uc.activity != nil {
		entry := &model.Activity{
			ID:         model.NewID(),
			Actor:      user.Email,
			Action:     types.ActivityLogin,
			Kind:       types.KindUser,
			ResourceID: user.ID,
			Summary:    "login",
			Timestamp:  time.Now().UTC(),
		}
		if err := uc.activity.Record(ctx, entry); err != nil {
			logging.From(ctx).Warn("failed to record login", "error", err, "email", user.Email)
		}
	}

	return signed, token, nil
}

func (uc *AuthUseCase) sign(token *auth.Token) (string, error) {
	claims, err := jwt.NewBuilder().
		JwtID(token.ID.String()).
		Subject(token.Sub).
		Issuer(TokenIssuer).
		IssuedAt(token.CreatedAt).
		Expiration(token.ExpiresAt).
		Claim("email", token.Email).
		Claim("name", token.Name).
		Claim("role", token.Role.String()).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build JWT")
	}

	signed, err := jwt.Sign(claims, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign JWT")
	}
	return string(signed), nil
}

// ValidateToken verifies the signature and expiry of raw and checks that
// the session it names has not been revoked.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	claims, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "invalid token", goerr.V("cause", err.Error()))
	}

	tokenID := auth.TokenID(claims.JwtID())
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "invalid token ID", goerr.V("tokenID", tokenID))
	}
	return uc.resolveSession(ctx, tokenID)
}

// Logout revokes the session
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.sessions.evict(tokenID)
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil && !errors.Is(err, ErrNotFound) {
		return goerr.Wrap(err, "failed to delete token", goerr.V("tokenID", tokenID))
	}
	return nil
}

// EnsureUser creates the account when no user with the e-mail exists. An
// existing account is left untouched.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, email, name, password string, role types.Role) (*model.User, error) {
	existing, err := uc.repo.User().GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(EmailKey, email))
	}
	if password == "" {
		return nil, goerr.Wrap(ErrValidation, "password is required", goerr.V(EmailKey, email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := user.Validate(); err != nil {
		return nil, validationError(err, types.KindUser)
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(EmailKey, email))
	}
	logging.From(ctx).Info("user account created", "email", email, "role", role)
	return created, nil
}
