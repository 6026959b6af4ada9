package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

const DefaultIndex = "grc-search"

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":    {"type": "keyword"},
      "kind":  {"type": "keyword"},
      "title": {"type": "text"},
      "body":  {"type": "text"},
      "tags":  {"type": "keyword"}
    }
  }
}`

// OpenSearch is a SearchIndex backed by an OpenSearch or Elasticsearch
// compatible cluster.
type OpenSearch struct {
	client *opensearch.Client
	index  string
}

var _ interfaces.SearchIndex = &OpenSearch{}

type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

func NewOpenSearch(cfg Config) (*OpenSearch, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create opensearch client", goerr.V("addresses", cfg.Addresses))
	}

	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	return &OpenSearch{client: client, index: index}, nil
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (s *OpenSearch) EnsureIndex(ctx context.Context) error {
	exists := opensearchapi.IndicesExistsRequest{Index: []string{s.index}}
	res, err := exists.Do(ctx, s.client)
	if err != nil {
		return goerr.Wrap(err, "failed to check index", goerr.V("index", s.index))
	}
	safe.Close(ctx, res.Body)
	if res.StatusCode == http.StatusOK {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: s.index,
		Body:  bytes.NewReader([]byte(indexMapping)),
	}
	res, err = create.Do(ctx, s.client)
	if err != nil {
		return goerr.Wrap(err, "failed to create index", goerr.V("index", s.index))
	}
	defer safe.Close(ctx, res.Body)
	if res.IsError() {
		return goerr.New("failed to create index", goerr.V("index", s.index), goerr.V("response", res.String()))
	}
	return nil
}

func (s *OpenSearch) Index(ctx context.Context, doc *model.SearchDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal search document")
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: doc.Key(),
		Body:       bytes.NewReader(raw),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return goerr.Wrap(err, "failed to index document", goerr.V("key", doc.Key()))
	}
	defer safe.Close(ctx, res.Body)

	if res.IsError() {
		return goerr.New("error indexing document", goerr.V("key", doc.Key()), goerr.V("response", res.String()))
	}
	return nil
}

func (s *OpenSearch) Remove(ctx context.Context, kind types.ResourceKind, id string) error {
	key := (&model.SearchDocument{Kind: kind, ID: id}).Key()
	req := opensearchapi.DeleteRequest{
		Index:      s.index,
		DocumentID: key,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V("key", key))
	}
	defer safe.Close(ctx, res.Body)

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return goerr.New("error deleting document", goerr.V("key", key), goerr.V("response", res.String()))
	}
	return nil
}

// BuildQuery renders the search request body.
func BuildQuery(query model.SearchQuery) map[string]any {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	boolQuery := map[string]any{
		"must": []any{
			map[string]any{
				"multi_match": map[string]any{
					"query":    query.Text,
					"fields":   []string{"title^2", "body", "tags"},
					"operator": "and",
				},
			},
		},
	}
	if len(query.Kinds) > 0 {
		boolQuery["filter"] = []any{
			map[string]any{"terms": map[string]any{"kind": query.Kinds}},
		}
	}

	return map[string]any{
		"size":  limit,
		"query": map[string]any{"bool": boolQuery},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64              `json:"_score"`
			Source model.SearchDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *OpenSearch) Search(ctx context.Context, query model.SearchQuery) ([]*model.SearchHit, error) {
	body, err := json.Marshal(BuildQuery(query))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal search query")
	}

	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search", goerr.V("query", query.Text))
	}
	defer safe.Close(ctx, res.Body)

	if res.IsError() {
		return nil, goerr.New("error searching", goerr.V("query", query.Text), goerr.V("response", res.String()))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read search response")
	}
	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse search response")
	}

	hits := make([]*model.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, &model.SearchHit{SearchDocument: h.Source, Score: h.Score})
	}
	return hits, nil
}
