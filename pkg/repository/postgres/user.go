package postgres

import (
	"context"
	"errors"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	*table[*model.User]
}

func newUserRepository(pool *pgxpool.Pool) *userRepository {
	return &userRepository{table: newTable[*model.User](pool, "users")}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM users WHERE lower(data->>'email') = lower($1)`, email).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select user", goerr.V("email", email))
	}
	return decode[*model.User](raw)
}
