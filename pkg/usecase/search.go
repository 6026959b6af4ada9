package usecase

import (
	"context"
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MaxSearchLimit caps the number of hits per query.
const MaxSearchLimit = 100

type SearchUseCase struct {
	d *deps
}

// Query searches the index. Only searchable kinds may be requested; an
// unconfigured index yields no hits.
func (uc *SearchUseCase) Query(ctx context.Context, query model.SearchQuery) ([]*model.SearchHit, error) {
	query.Text = strings.TrimSpace(query.Text)
	if query.Text == "" {
		return nil, goerr.Wrap(ErrValidation, "search text is required")
	}
	for _, k := range query.Kinds {
		if !k.IsSearchable() {
			return nil, goerr.Wrap(ErrValidation, "kind is not searchable", goerr.V(KindKey, k))
		}
	}
	if query.Limit <= 0 || query.Limit > MaxSearchLimit {
		query.Limit = MaxSearchLimit
	}

	if uc.d.search == nil {
		return []*model.SearchHit{}, nil
	}
	hits, err := uc.d.search.Search(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search", goerr.V("query", query.Text))
	}
	return hits, nil
}

// Reindex loads every searchable record into the index and returns the
// number of documents indexed.
func (uc *SearchUseCase) Reindex(ctx context.Context) (int, error) {
	if uc.d.search == nil {
		return 0, nil
	}

	var records []any
	collect := func(kind types.ResourceKind, list func() ([]any, error)) error {
		items, err := list()
		if err != nil {
			return goerr.Wrap(err, "failed to list records for reindex", goerr.V(KindKey, kind))
		}
		records = append(records, items...)
		return nil
	}

	if err := collect(types.KindRisk, func() ([]any, error) { return asAny(uc.d.repo.Risk().List(ctx)) }); err != nil {
		return 0, err
	}
	if err := collect(types.KindIncident, func() ([]any, error) { return asAny(uc.d.repo.Incident().List(ctx)) }); err != nil {
		return 0, err
	}
	if err := collect(types.KindControl, func() ([]any, error) { return asAny(uc.d.repo.Control().List(ctx)) }); err != nil {
		return 0, err
	}
	if err := collect(types.KindPolicy, func() ([]any, error) { return asAny(uc.d.repo.Policy().List(ctx)) }); err != nil {
		return 0, err
	}
	if err := collect(types.KindDocument, func() ([]any, error) { return asAny(uc.d.repo.Document().List(ctx)) }); err != nil {
		return 0, err
	}

	count := 0
	for _, r := range records {
		doc, ok := model.SearchDocumentOf(r)
		if !ok {
			continue
		}
		if err := uc.d.search.Index(ctx, doc); err != nil {
			return count, goerr.Wrap(err, "failed to index document", goerr.V("key", doc.Key()))
		}
		count++
	}

	logging.From(ctx).Info("search index rebuilt", "documents", count)
	return count, nil
}

func asAny[T any](items []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out, nil
}
