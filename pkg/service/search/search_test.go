package search_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/search"
	"github.com/m-mizutani/gt"
)

func runSearchIndexTest(t *testing.T, idx interfaces.SearchIndex) {
	ctx := context.Background()
	suffix := model.NewID()

	docs := []*model.SearchDocument{
		{ID: "r-" + suffix, Kind: types.KindRisk, Title: "Phishing " + suffix, Body: "credential theft"},
		{ID: "i-" + suffix, Kind: types.KindIncident, Title: "Phishing wave " + suffix, Body: "users clicked"},
		{ID: "p-" + suffix, Kind: types.KindPolicy, Title: "Password policy " + suffix, Body: "rotation"},
	}
	for _, d := range docs {
		gt.NoError(t, idx.Index(ctx, d)).Required()
	}

	hits, err := idx.Search(ctx, model.SearchQuery{Text: "phishing " + suffix})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(2)

	hits, err = idx.Search(ctx, model.SearchQuery{Text: "phishing " + suffix, Kinds: []types.ResourceKind{types.KindIncident}})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(1)
	gt.Value(t, hits[0].ID).Equal("i-" + suffix)

	gt.NoError(t, idx.Remove(ctx, types.KindRisk, "r-"+suffix)).Required()
	hits, err = idx.Search(ctx, model.SearchQuery{Text: "phishing " + suffix})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(1)

	// removing twice is not an error
	gt.NoError(t, idx.Remove(ctx, types.KindRisk, "r-"+suffix))
}

func TestMemory(t *testing.T) {
	runSearchIndexTest(t, search.NewMemory())
}

func TestMemoryRanking(t *testing.T) {
	ctx := context.Background()
	idx := search.NewMemory()
	gt.NoError(t, idx.Index(ctx, &model.SearchDocument{ID: "1", Kind: types.KindControl, Title: "Backup", Body: "encryption"}))
	gt.NoError(t, idx.Index(ctx, &model.SearchDocument{ID: "2", Kind: types.KindControl, Title: "Encryption at rest", Body: "encryption keys"}))

	hits, err := idx.Search(ctx, model.SearchQuery{Text: "encryption", Limit: 1})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(1)
	gt.Value(t, hits[0].ID).Equal("2")
}

func TestBuildQuery(t *testing.T) {
	q := search.BuildQuery(model.SearchQuery{Text: "ransomware", Kinds: []types.ResourceKind{types.KindRisk}})
	raw, err := json.Marshal(q)
	gt.NoError(t, err).Required()
	gt.String(t, string(raw)).Contains(`"size":20`)
	gt.String(t, string(raw)).Contains(`"terms":{"kind":["risk"]}`)
	gt.String(t, string(raw)).Contains(`"query":"ransomware"`)
}

func TestOpenSearchAgainstStub(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/_search"):
			gt.String(t, string(body)).Contains("multi_match")
			_, _ = w.Write([]byte(`{"hits":{"hits":[{"_score":1.5,"_source":{"id":"r1","kind":"risk","title":"Phishing"}}]}}`))
		default:
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	}))
	defer srv.Close()

	idx, err := search.NewOpenSearch(search.Config{Addresses: []string{srv.URL}, Index: "test"})
	gt.NoError(t, err).Required()

	ctx := context.Background()
	gt.NoError(t, idx.Index(ctx, &model.SearchDocument{ID: "r1", Kind: types.KindRisk, Title: "Phishing"})).Required()

	hits, err := idx.Search(ctx, model.SearchQuery{Text: "phishing"})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(1)
	gt.Value(t, hits[0].Kind).Equal(types.KindRisk)
	gt.Number(t, hits[0].Score).Equal(1.5)

	mu.Lock()
	defer mu.Unlock()
	gt.Array(t, requests).Has("PUT /test/_doc/risk:r1")
}

func TestOpenSearch(t *testing.T) {
	addr := os.Getenv("TEST_OPENSEARCH_URL")
	if addr == "" {
		t.Skip("TEST_OPENSEARCH_URL not set")
	}

	idx, err := search.NewOpenSearch(search.Config{Addresses: []string{addr}, Index: "grc-test"})
	gt.NoError(t, err).Required()
	gt.NoError(t, idx.EnsureIndex(context.Background())).Required()
	runSearchIndexTest(t, idx)
}
