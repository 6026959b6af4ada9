package usecase

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type RiskUseCase struct {
	d *deps
}

// Create stores a new risk. Scores and severity are derived from the
// likelihood and impact ratings; a missing status defaults to identified.
func (uc *RiskUseCase) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	risk.ID = ""
	if risk.Status == "" {
		risk.Status = types.RiskStatusIdentified
	}
	risk.Score()
	if err := risk.Validate(); err != nil {
		return nil, validationError(err, types.KindRisk)
	}

	created, err := uc.d.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	uc.d.mutated(ctx, types.ActivityCreate, types.KindRisk, created.ID, created.Title)
	uc.d.index(ctx, created)
	return created, nil
}

func (uc *RiskUseCase) Get(ctx context.Context, id string) (*model.Risk, error) {
	return getEntity(ctx, uc.d.repo.Risk(), types.KindRisk, id)
}

// List returns matching risks, highest inherent score first and newest first
// within the same score.
func (uc *RiskUseCase) List(ctx context.Context, filter model.RiskFilter) ([]*model.Risk, error) {
	return filterEntities(ctx, uc.d.repo.Risk(), types.KindRisk, filter.Match, func(a, b *model.Risk) bool {
		if a.InherentScore != b.InherentScore {
			return a.InherentScore > b.InherentScore
		}
		return newerFirst(a, b)
	})
}

func (uc *RiskUseCase) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	if _, err := uc.Get(ctx, risk.ID); err != nil {
		return nil, err
	}
	risk.Score()
	if err := risk.Validate(); err != nil {
		return nil, validationError(err, types.KindRisk)
	}

	updated, err := uc.d.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(IDKey, risk.ID))
	}

	uc.d.mutated(ctx, types.ActivityUpdate, types.KindRisk, updated.ID, updated.Title)
	uc.d.index(ctx, updated)
	return updated, nil
}

func (uc *RiskUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.d.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(IDKey, id))
	}

	uc.d.mutated(ctx, types.ActivityDelete, types.KindRisk, id, "")
	uc.d.unindex(ctx, types.KindRisk, id)
	return nil
}

func (uc *RiskUseCase) Stats(ctx context.Context) (*model.RiskStats, error) {
	risks, err := uc.List(ctx, model.RiskFilter{})
	if err != nil {
		return nil, err
	}

	stats := &model.RiskStats{
		Total:      len(risks),
		BySeverity: make(map[types.Severity]int),
		ByStatus:   make(map[types.RiskStatus]int),
	}
	inherent := make([]float64, 0, len(risks))
	residual := make([]float64, 0, len(risks))
	for _, r := range risks {
		stats.BySeverity[r.Severity]++
		stats.ByStatus[r.Status]++
		inherent = append(inherent, float64(r.InherentScore))
		residual = append(residual, float64(r.ResidualScore))
	}
	stats.AverageInherentScore = model.Mean(inherent)
	stats.AverageResidualScore = model.Mean(residual)
	return stats, nil
}
