package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/jackc/pgx/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (p *Postgres) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return goerr.Wrap(err, "failed to encode token")
	}

	if _, err := p.pool.Exec(ctx,
		`INSERT INTO tokens (id, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		token.ID.String(), data, token.ExpiresAt,
	); err != nil {
		return goerr.Wrap(err, "failed to put token", goerr.V("tokenID", token.ID))
	}
	return nil
}

func (p *Postgres) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM tokens WHERE id = $1`, tokenID.String()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenID", tokenID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get token", goerr.V("tokenID", tokenID))
	}

	var token auth.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, goerr.Wrap(err, "failed to decode token", goerr.V("tokenID", tokenID))
	}
	return &token, nil
}

func (p *Postgres) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	tag, err := p.pool.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, tokenID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete token", goerr.V("tokenID", tokenID))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenID", tokenID))
	}
	return nil
}
