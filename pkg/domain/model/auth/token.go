package auth

import (
	"context"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TokenID is the identifier of an issued session. It is carried in the jti
// claim of the signed JWT so that a session can be revoked server side.
type TokenID string

func NewTokenID() TokenID {
	return TokenID(uuid.Must(uuid.NewV7()).String())
}

func (id TokenID) String() string { return string(id) }

func (id TokenID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid token ID format", goerr.V("tokenID", id))
	}
	return nil
}

// DefaultTokenTTL is the lifetime of a login session.
const DefaultTokenTTL = 24 * time.Hour

// AnonymousUserID is the subject used when authentication is disabled.
const AnonymousUserID = "anonymous"

type Token struct {
	ID        TokenID    `json:"id"`
	Sub       string     `json:"sub"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      types.Role `json:"role"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func NewToken(sub, email, name string, role types.Role, ttl time.Duration) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        NewTokenID(),
		Sub:       sub,
		Email:     email,
		Name:      name,
		Role:      role,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// NewAnonymousUser returns the token used in no-authentication mode. It
// carries the admin role.
func NewAnonymousUser() *Token {
	return &Token{
		ID:        TokenID(AnonymousUserID),
		Sub:       AnonymousUserID,
		Email:     "anonymous@localhost",
		Name:      "Anonymous",
		Role:      types.RoleAdmin,
		ExpiresAt: time.Now().Add(DefaultTokenTTL),
		CreatedAt: time.Now(),
	}
}

func (t *Token) IsAnonymous() bool {
	return t.Sub == AnonymousUserID
}

func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.Sub == "" {
		return goerr.New("token subject is required", goerr.V("tokenID", t.ID))
	}
	if !t.Role.IsValid() {
		return goerr.New("invalid token role", goerr.V("tokenID", t.ID), goerr.V("role", t.Role))
	}
	return nil
}

type ctxTokenKey struct{}

func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext returns the authenticated token, or nil.
func TokenFromContext(ctx context.Context) *Token {
	token, _ := ctx.Value(ctxTokenKey{}).(*Token)
	return token
}

// ActorFromContext returns the e-mail of the authenticated user for audit
// records, or "system" outside of a request.
func ActorFromContext(ctx context.Context) string {
	if token := TokenFromContext(ctx); token != nil {
		return token.Email
	}
	return "system"
}
