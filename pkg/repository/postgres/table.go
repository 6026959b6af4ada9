package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

// table maps one entity kind onto a JSONB table with the layout created by
// Migrate: id, data, created_at, updated_at.
type table[T model.Entity] struct {
	pool *pgxpool.Pool
	name string
}

func newTable[T model.Entity](pool *pgxpool.Pool, name string) *table[T] {
	return &table[T]{pool: pool, name: name}
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, goerr.Wrap(err, "failed to decode row")
	}
	return v, nil
}

func (r *table[T]) Create(ctx context.Context, v T) (T, error) {
	meta := v.GetMeta()
	if meta.ID == "" {
		meta.ID = model.NewID()
	}
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	data, err := json.Marshal(v)
	if err != nil {
		return v, goerr.Wrap(err, "failed to encode row", goerr.V("table", r.name))
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO `+r.name+` (id, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		meta.ID, data, meta.CreatedAt, meta.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return v, goerr.Wrap(ErrAlreadyExists, "row already exists", goerr.V("table", r.name), goerr.V("id", meta.ID))
		}
		return v, goerr.Wrap(err, "failed to insert row", goerr.V("table", r.name), goerr.V("id", meta.ID))
	}

	return decode[T](data)
}

func (r *table[T]) Get(ctx context.Context, id string) (T, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM `+r.name+` WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, goerr.Wrap(ErrNotFound, "row not found", goerr.V("table", r.name), goerr.V("id", id))
	}
	if err != nil {
		var zero T
		return zero, goerr.Wrap(err, "failed to select row", goerr.V("table", r.name), goerr.V("id", id))
	}
	return decode[T](raw)
}

func (r *table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.pool.Query(ctx, `SELECT data FROM `+r.name+` ORDER BY created_at, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list rows", goerr.V("table", r.name))
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, goerr.Wrap(err, "failed to scan row", goerr.V("table", r.name))
		}
		v, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate rows", goerr.V("table", r.name))
	}
	return result, nil
}

// Update keeps the stored createdAt by copying it into the new document.
func (r *table[T]) Update(ctx context.Context, v T) (T, error) {
	meta := v.GetMeta()
	meta.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(v)
	if err != nil {
		return v, goerr.Wrap(err, "failed to encode row", goerr.V("table", r.name))
	}

	var raw []byte
	err = r.pool.QueryRow(ctx,
		`UPDATE `+r.name+` SET data = jsonb_set($2::jsonb, '{createdAt}', data->'createdAt'), updated_at = $3
		 WHERE id = $1 RETURNING data`,
		meta.ID, data, meta.UpdatedAt,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, goerr.Wrap(ErrNotFound, "row not found", goerr.V("table", r.name), goerr.V("id", meta.ID))
	}
	if err != nil {
		var zero T
		return zero, goerr.Wrap(err, "failed to update row", goerr.V("table", r.name), goerr.V("id", meta.ID))
	}
	return decode[T](raw)
}

func (r *table[T]) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+r.name+` WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete row", goerr.V("table", r.name), goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "row not found", goerr.V("table", r.name), goerr.V("id", id))
	}
	return nil
}
