package usecase_test

import (
	"context"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/search"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestSearchUseCase(t *testing.T) {
	index := search.NewMemory()
	env := setup(t, usecase.WithSearchIndex(index))
	ctx := context.Background()

	risk, err := env.uc.Risk.Create(ctx, newRisk("Ransomware outbreak", 4, 4))
	gt.NoError(t, err).Required()
	_, err = env.uc.Policy.Create(ctx, &model.Policy{Title: "Ransomware response policy"})
	gt.NoError(t, err).Required()
	_, err = env.uc.Control.Create(ctx, &model.Control{Code: "BK-1", Title: "Offline backups", Type: types.ControlTypeCorrective})
	gt.NoError(t, err).Required()

	t.Run("matches across kinds", func(t *testing.T) {
		hits, err := env.uc.Search.Query(ctx, model.SearchQuery{Text: "ransomware"})
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(2)
	})

	t.Run("kind filter", func(t *testing.T) {
		hits, err := env.uc.Search.Query(ctx, model.SearchQuery{Text: "ransomware", Kinds: []types.ResourceKind{types.KindPolicy}})
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(1).Required()
		gt.Value(t, hits[0].Kind).Equal(types.KindPolicy)
	})

	t.Run("deleted records leave the index", func(t *testing.T) {
		gt.NoError(t, env.uc.Risk.Delete(ctx, risk.ID)).Required()
		hits, err := env.uc.Search.Query(ctx, model.SearchQuery{Text: "outbreak"})
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(0)
	})

	t.Run("invalid queries", func(t *testing.T) {
		_, err := env.uc.Search.Query(ctx, model.SearchQuery{Text: "   "})
		gt.Error(t, err).Is(usecase.ErrValidation)
		_, err = env.uc.Search.Query(ctx, model.SearchQuery{Text: "x", Kinds: []types.ResourceKind{types.KindAlert}})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})
}

func TestSearchUseCase_Reindex(t *testing.T) {
	repoOnly := setup(t)
	ctx := context.Background()
	_, err := repoOnly.uc.Risk.Create(ctx, newRisk("Supply chain attack", 3, 4))
	gt.NoError(t, err).Required()
	_, err = repoOnly.uc.Incident.Create(ctx, newIncident("Supply chain compromise", types.SeverityHigh))
	gt.NoError(t, err).Required()

	count, err := repoOnly.uc.Search.Reindex(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, count).Equal(0)

	index := search.NewMemory()
	indexed := usecase.New(repoOnly.repo, usecase.WithSearchIndex(index))
	count, err = indexed.Search.Reindex(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, count).Equal(2)

	hits, err := indexed.Search.Query(ctx, model.SearchQuery{Text: "supply chain"})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(2)
}

func TestSearchUseCase_WithoutIndex(t *testing.T) {
	env := setup(t)
	hits, err := env.uc.Search.Query(context.Background(), model.SearchQuery{Text: "anything"})
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(0)
}
