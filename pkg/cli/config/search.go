package config

import (
	"context"
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/search"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const defaultSearchIndex = "grc"

// Search selects the full text search index.
type Search struct {
	urls     []string
	username string
	password string
	index    string
}

func (x *Search) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "opensearch-url",
			Usage:       "OpenSearch or Elasticsearch node URL, repeatable. In-memory index when empty",
			Category:    "Search",
			Sources:     cli.EnvVars("GRC_OPENSEARCH_URLS", "GRC_OPENSEARCH_URL"),
			Destination: &x.urls,
		},
		&cli.StringFlag{
			Name:        "opensearch-username",
			Usage:       "OpenSearch basic auth user",
			Category:    "Search",
			Sources:     cli.EnvVars("GRC_OPENSEARCH_USERNAME"),
			Destination: &x.username,
		},
		&cli.StringFlag{
			Name:        "opensearch-password",
			Usage:       "OpenSearch basic auth password",
			Category:    "Search",
			Sources:     cli.EnvVars("GRC_OPENSEARCH_PASSWORD"),
			Destination: &x.password,
		},
		&cli.StringFlag{
			Name:        "opensearch-index",
			Usage:       "Index holding the searchable records",
			Category:    "Search",
			Value:       defaultSearchIndex,
			Sources:     cli.EnvVars("GRC_OPENSEARCH_INDEX"),
			Destination: &x.index,
		},
	}
}

func (x Search) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("urls", x.urls),
		slog.String("username", x.username),
		slog.Int("password.len", len(x.password)),
		slog.String("index", x.index),
	)
}

// Configure returns the OpenSearch index when URLs are set, creating the
// index if needed, and an in-memory index otherwise.
func (x *Search) Configure(ctx context.Context) (interfaces.SearchIndex, error) {
	if len(x.urls) == 0 {
		logging.From(ctx).Info("Using in-memory search index")
		return search.NewMemory(), nil
	}

	index, err := search.NewOpenSearch(search.Config{
		Addresses: x.urls,
		Username:  x.username,
		Password:  x.password,
		Index:     x.index,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize opensearch client")
	}
	if err := index.EnsureIndex(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to ensure search index", goerr.V("index", x.index))
	}
	logging.From(ctx).Info("Using OpenSearch index", "index", x.index)
	return index, nil
}
