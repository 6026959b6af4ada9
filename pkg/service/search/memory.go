package search

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// DefaultLimit caps result size when the query does not.
const DefaultLimit = 20

// Memory is an in-process index with substring matching.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]model.SearchDocument
}

var _ interfaces.SearchIndex = &Memory{}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]model.SearchDocument)}
}

func (m *Memory) Index(ctx context.Context, doc *model.SearchDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *doc
	copied.Tags = slices.Clone(doc.Tags)
	m.docs[doc.Key()] = copied
	return nil
}

func (m *Memory) Remove(ctx context.Context, kind types.ResourceKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := (&model.SearchDocument{Kind: kind, ID: id}).Key()
	delete(m.docs, key)
	return nil
}

func (m *Memory) Search(ctx context.Context, query model.SearchQuery) ([]*model.SearchHit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query.Text))
	hits := make([]*model.SearchHit, 0)
	for _, doc := range m.docs {
		if len(query.Kinds) > 0 && !slices.Contains(query.Kinds, doc.Kind) {
			continue
		}
		if !doc.Matches(query.Text) {
			continue
		}
		hits = append(hits, &model.SearchHit{SearchDocument: doc, Score: score(&doc, terms)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Key() < hits[j].Key()
	})

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// score weighs title occurrences twice as much as body and tag occurrences.
func score(doc *model.SearchDocument, terms []string) float64 {
	title := strings.ToLower(doc.Title)
	rest := strings.ToLower(doc.Body + " " + strings.Join(doc.Tags, " "))
	var s float64
	for _, term := range terms {
		s += 2*float64(strings.Count(title, term)) + float64(strings.Count(rest, term))
	}
	return s
}
