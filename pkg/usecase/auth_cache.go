package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/m-mizutani/goerr/v2"
)

// sessionCacheTTL bounds how long a revocation on another instance can go
// unnoticed.
const sessionCacheTTL = 5 * time.Minute

type sessionEntry struct {
	token *auth.Token
	until time.Time
}

// sessionCache keeps recently validated sessions so that every request does
// not hit the token store. An entry never outlives its token.
type sessionCache struct {
	mu      sync.Mutex
	entries map[auth.TokenID]sessionEntry
}

func newSessionCache() *sessionCache {
	return &sessionCache{entries: make(map[auth.TokenID]sessionEntry)}
}

func (c *sessionCache) lookup(id auth.TokenID, now time.Time) (*auth.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if !now.Before(e.until) {
		delete(c.entries, id)
		return nil, false
	}
	return e.token, true
}

func (c *sessionCache) store(token *auth.Token, now time.Time) {
	until := now.Add(sessionCacheTTL)
	if token.ExpiresAt.Before(until) {
		until = token.ExpiresAt
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if !now.Before(e.until) {
			delete(c.entries, id)
		}
	}
	c.entries[token.ID] = sessionEntry{token: token, until: until}
}

func (c *sessionCache) evict(id auth.TokenID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// resolveSession returns the live session named by tokenID. The token store
// is only read on a cache miss; expired sessions found there are purged.
func (uc *AuthUseCase) resolveSession(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	now := time.Now()
	if token, ok := uc.sessions.lookup(tokenID, now); ok {
		return token, nil
	}

	token, err := uc.repo.GetToken(ctx, tokenID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, goerr.Wrap(ErrUnauthorized, "session revoked", goerr.V("tokenID", tokenID))
	case err != nil:
		return nil, goerr.Wrap(err, "failed to look up session", goerr.V("tokenID", tokenID))
	}

	if token.IsExpired() {
		if err := uc.repo.DeleteToken(ctx, tokenID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to purge expired session", goerr.V("tokenID", tokenID))
		}
		return nil, goerr.Wrap(ErrUnauthorized, "session expired", goerr.V("tokenID", tokenID))
	}

	uc.sessions.store(token, now)
	return token, nil
}
