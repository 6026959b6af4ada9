package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// table is an in-memory store for one entity kind. Records are deep copied
// on the way in and out so callers never share state with the store.
type table[T model.Entity] struct {
	mu      sync.RWMutex
	name    string
	records map[string]T
}

func newTable[T model.Entity](name string) *table[T] {
	return &table[T]{
		name:    name,
		records: make(map[string]T),
	}
}

func clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, goerr.Wrap(err, "failed to marshal record")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, goerr.Wrap(err, "failed to unmarshal record")
	}
	return out, nil
}

func (r *table[T]) Create(ctx context.Context, v T) (T, error) {
	created, err := clone(v)
	if err != nil {
		return created, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	meta := created.GetMeta()
	if meta.ID == "" {
		meta.ID = model.NewID()
	}
	if _, exists := r.records[meta.ID]; exists {
		var zero T
		return zero, goerr.Wrap(ErrAlreadyExists, r.name+" already exists", goerr.V("id", meta.ID))
	}
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	r.records[meta.ID] = created
	return clone(created)
}

func (r *table[T]) Get(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.records[id]
	if !exists {
		var zero T
		return zero, goerr.Wrap(ErrNotFound, r.name+" not found", goerr.V("id", id))
	}
	return clone(v)
}

func (r *table[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]T, 0, len(r.records))
	for _, v := range r.records {
		copied, err := clone(v)
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].GetMeta(), result[j].GetMeta()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return result, nil
}

func (r *table[T]) Update(ctx context.Context, v T) (T, error) {
	updated, err := clone(v)
	if err != nil {
		return updated, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	meta := updated.GetMeta()
	existing, exists := r.records[meta.ID]
	if !exists {
		var zero T
		return zero, goerr.Wrap(ErrNotFound, r.name+" not found", goerr.V("id", meta.ID))
	}
	meta.CreatedAt = existing.GetMeta().CreatedAt
	meta.UpdatedAt = time.Now().UTC()

	r.records[meta.ID] = updated
	return clone(updated)
}

func (r *table[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, r.name+" not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}
