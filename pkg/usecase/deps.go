package usecase

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const dashboardCacheKey = "dashboard"

// deps is shared by every use case. Optional services are nil when not
// configured and the side effects that need them are skipped.
type deps struct {
	repo         interfaces.Repository
	activity     interfaces.ActivityLog
	cache        interfaces.Cache
	search       interfaces.SearchIndex
	blob         interfaces.BlobStore
	notifiers    []interfaces.Notifier
	catalog      *catalog.Catalog
	clock        func() time.Time
	dashboardTTL time.Duration

	// generation counts mutations. A dashboard computed across a mutation
	// is stale and must not be cached.
	generation atomic.Uint64
}

func (d *deps) now() time.Time {
	return d.clock().UTC()
}

// record appends to the activity trail. A failure is logged and does not
// fail the mutation that was already committed.
func (d *deps) record(ctx context.Context, action types.ActivityAction, kind types.ResourceKind, id, summary string) {
	if d.activity == nil {
		return
	}
	entry := &model.Activity{
		ID:         model.NewID(),
		Actor:      auth.ActorFromContext(ctx),
		Action:     action,
		Kind:       kind,
		ResourceID: id,
		Summary:    summary,
		Timestamp:  d.now(),
	}
	if err := d.activity.Record(ctx, entry); err != nil {
		logging.From(ctx).Warn("failed to record activity",
			"error", err, "action", action, "kind", kind, "id", id)
	}
}

// changed drops cached aggregates after a mutation.
func (d *deps) changed(ctx context.Context) {
	d.generation.Add(1)
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, dashboardCacheKey); err != nil {
		logging.From(ctx).Warn("failed to invalidate dashboard cache", "error", err)
	}
}

func (d *deps) index(ctx context.Context, v any) {
	if d.search == nil {
		return
	}
	doc, ok := model.SearchDocumentOf(v)
	if !ok {
		return
	}
	if err := d.search.Index(ctx, doc); err != nil {
		logging.From(ctx).Warn("failed to index document", "error", err, "key", doc.Key())
	}
}

func (d *deps) unindex(ctx context.Context, kind types.ResourceKind, id string) {
	if d.search == nil {
		return
	}
	if err := d.search.Remove(ctx, kind, id); err != nil {
		logging.From(ctx).Warn("failed to remove document from index", "error", err, "kind", kind, "id", id)
	}
}

// mutated runs the common side effects of a committed write.
func (d *deps) mutated(ctx context.Context, action types.ActivityAction, kind types.ResourceKind, id, summary string) {
	d.record(ctx, action, kind, id, summary)
	d.changed(ctx)
}

func getEntity[T model.Entity](ctx context.Context, repo interfaces.EntityRepository[T], kind types.ResourceKind, id string) (T, error) {
	v, err := repo.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, goerr.Wrap(err, "failed to get "+kind.String(), goerr.V(KindKey, kind), goerr.V(IDKey, id))
	}
	return v, nil
}

// filterEntities returns the records matching match, ordered by less.
func filterEntities[T model.Entity](ctx context.Context, repo interfaces.EntityRepository[T], kind types.ResourceKind, match func(T) bool, less func(a, b T) bool) ([]T, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list "+kind.String(), goerr.V(KindKey, kind))
	}

	result := make([]T, 0, len(all))
	for _, v := range all {
		if match == nil || match(v) {
			result = append(result, v)
		}
	}
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	}
	return result, nil
}

func validationError(err error, kind types.ResourceKind) error {
	return goerr.Wrap(err, "invalid "+kind.String(), goerr.V(KindKey, kind))
}

// newerFirst orders by creation time, newest first.
func newerFirst[T model.Entity](a, b T) bool {
	return a.GetMeta().CreatedAt.After(b.GetMeta().CreatedAt)
}
