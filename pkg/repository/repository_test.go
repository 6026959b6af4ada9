package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/memory"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/postgres"
	"github.com/m-mizutani/gt"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, postgres.ErrNotFound)
}

func containsID[T model.Entity](items []T, id string) bool {
	for _, v := range items {
		if v.GetMeta().ID == id {
			return true
		}
	}
	return false
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title:      "SQL injection",
			Category:   types.RiskCategorySecurity,
			Status:     types.RiskStatusIdentified,
			Likelihood: 3,
			Impact:     4,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
		gt.Value(t, created.Title).Equal("SQL injection")

		second, err := repo.Risk().Create(ctx, &model.Risk{Title: "XSS"})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).NotEqual(created.ID)
	})

	t.Run("Create keeps a caller supplied ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := model.NewID()
		created, err := repo.Vendor().Create(ctx, &model.Vendor{Meta: model.Meta{ID: id}, Name: "Acme"})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(id)
	})

	t.Run("Create rejects a taken ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := model.NewID()
		_, err := repo.Vendor().Create(ctx, &model.Vendor{Meta: model.Meta{ID: id}, Name: "Acme"})
		gt.NoError(t, err).Required()

		_, err = repo.Vendor().Create(ctx, &model.Vendor{Meta: model.Meta{ID: id}, Name: "Acme again"})
		gt.Error(t, err).Is(interfaces.ErrAlreadyExists)

		got, err := repo.Vendor().Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Acme")
	})

	t.Run("Get returns stored record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Incident().Create(ctx, &model.Incident{
			Title:          "Laptop stolen",
			Severity:       types.SeverityHigh,
			Status:         types.IncidentStatusOpen,
			Category:       types.IncidentCategorySecurity,
			RelatedRiskIDs: []string{"r1", "r2"},
		})
		gt.NoError(t, err).Required()

		got, err := repo.Incident().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Laptop stolen")
		gt.Value(t, got.RelatedRiskIDs).Equal([]string{"r1", "r2"})
	})

	t.Run("Get reports not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Control().Get(context.Background(), model.NewID())
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RecoveryPlan().Create(ctx, &model.RecoveryPlan{
			Name:  "Failover",
			Steps: []model.RecoveryStep{{Order: 1, Description: "declare"}},
		})
		gt.NoError(t, err).Required()
		created.Steps[0].Description = "mutated"

		got, err := repo.RecoveryPlan().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Steps[0].Description).Equal("declare")
	})

	t.Run("List returns created records", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Policy().Create(ctx, &model.Policy{Title: "Access control"})
		gt.NoError(t, err).Required()
		b, err := repo.Policy().Create(ctx, &model.Policy{Title: "Backup"})
		gt.NoError(t, err).Required()

		list, err := repo.Policy().List(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, containsID(list, a.ID)).True()
		gt.Bool(t, containsID(list, b.ID)).True()
	})

	t.Run("Update keeps CreatedAt and bumps UpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Document().Create(ctx, &model.Document{Name: "soc2.pdf", StorageKey: "k"})
		gt.NoError(t, err).Required()

		time.Sleep(5 * time.Millisecond)
		created.Name = "soc2-2026.pdf"
		created.CreatedAt = time.Time{}
		updated, err := repo.Document().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("soc2-2026.pdf")
		gt.Bool(t, updated.CreatedAt.IsZero()).False()
		gt.Bool(t, updated.UpdatedAt.After(updated.CreatedAt)).True()
	})

	t.Run("Update of missing record fails", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Audit().Update(context.Background(), &model.Audit{Meta: model.Meta{ID: model.NewID()}})
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Delete removes record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Framework().Create(ctx, &model.CustomFramework{Name: "Baseline"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Framework().Delete(ctx, created.ID)).Required()
		_, err = repo.Framework().Get(ctx, created.ID)
		gt.Bool(t, isNotFound(err)).True()

		err = repo.Framework().Delete(ctx, created.ID)
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("User lookup by email ignores case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		email := model.NewID() + "@Example.com"
		created, err := repo.User().Create(ctx, &model.User{
			Email:        email,
			Name:         "Alice",
			Role:         types.RoleAnalyst,
			PasswordHash: "hash",
		})
		gt.NoError(t, err).Required()

		got, err := repo.User().GetByEmail(ctx, created.Email)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.PasswordHash).Equal("hash")

		_, err = repo.User().GetByEmail(ctx, "nobody-"+model.NewID()+"@example.com")
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Token store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken("user-1", "alice@example.com", "Alice", types.RoleViewer, time.Hour)
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		got, err := repo.GetToken(ctx, token.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Email).Equal("alice@example.com")
		gt.Value(t, got.Role).Equal(types.RoleViewer)

		gt.NoError(t, repo.DeleteToken(ctx, token.ID)).Required()
		_, err = repo.GetToken(ctx, token.ID)
		gt.Bool(t, isNotFound(err)).True()

		invalid := auth.NewToken("", "alice@example.com", "Alice", types.RoleViewer, time.Hour)
		gt.Error(t, repo.PutToken(ctx, invalid))
	})
}

func newPostgresRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := postgres.New(ctx, databaseURL)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Migrate(ctx)).Required()
	t.Cleanup(repo.Close)
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestPostgresRepository(t *testing.T) {
	runRepositoryTest(t, newPostgresRepository)
}
