package config

import (
	"context"
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/memory"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/mongo"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/postgres"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	defaultMongoDatabase = "grc"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend       string
	databaseURL   string
	mongoURI      string
	mongoDatabase string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (postgres or memory)",
			Category:    "Repository",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("GRC_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "PostgreSQL connection URL (required when using postgres backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("GRC_DATABASE_URL", "DATABASE_URL"),
			Destination: &r.databaseURL,
		},
		&cli.StringFlag{
			Name:        "mongodb-uri",
			Usage:       "MongoDB URI for the activity trail (in-memory trail when empty)",
			Category:    "Repository",
			Sources:     cli.EnvVars("GRC_MONGODB_URI"),
			Destination: &r.mongoURI,
		},
		&cli.StringFlag{
			Name:        "mongodb-database",
			Usage:       "MongoDB database of the activity trail",
			Category:    "Repository",
			Value:       defaultMongoDatabase,
			Sources:     cli.EnvVars("GRC_MONGODB_DATABASE"),
			Destination: &r.mongoDatabase,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.Bool("database_url.set", r.databaseURL != ""),
		slog.Bool("mongodb_uri.set", r.mongoURI != ""),
		slog.String("mongodb_database", r.mongoDatabase),
	)
}

// NewPostgresRepository returns a Repository config pointing at databaseURL.
func NewPostgresRepository(databaseURL string) *Repository {
	return &Repository{backend: BackendPostgres, databaseURL: databaseURL}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Postgres connects to the configured database.
func (r *Repository) Postgres(ctx context.Context) (*postgres.Postgres, error) {
	if r.databaseURL == "" {
		return nil, goerr.New("database-url is required when using postgres backend")
	}
	repo, err := postgres.New(ctx, r.databaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize postgres repository")
	}
	return repo, nil
}

// Configure initializes and returns a repository based on the configured
// backend. The returned function releases it.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, func(), error) {
	switch r.backend {
	case BackendPostgres:
		repo, err := r.Postgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		logging.From(ctx).Info("Using PostgreSQL repository")
		return repo, repo.Close, nil

	case BackendMemory:
		logging.From(ctx).Info("Using in-memory repository (development mode)")
		return memory.New(), func() {}, nil

	default:
		return nil, nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}

// ActivityLog returns the MongoDB activity trail when a URI is set and an
// in-memory one otherwise.
func (r *Repository) ActivityLog(ctx context.Context) (interfaces.ActivityLog, func(), error) {
	if r.mongoURI == "" {
		logging.From(ctx).Info("Using in-memory activity log")
		return memory.NewActivityLog(), func() {}, nil
	}

	log, err := mongo.New(ctx, r.mongoURI, r.mongoDatabase)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize mongodb activity log")
	}
	logging.From(ctx).Info("Using MongoDB activity log", "database", r.mongoDatabase)

	closer := func() {
		if err := log.Close(context.Background()); err != nil {
			logging.Default().Error("failed to close mongodb activity log", "error", err)
		}
	}
	return log, closer, nil
}
