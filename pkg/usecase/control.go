package usecase

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ControlUseCase struct {
	d *deps
}

func (uc *ControlUseCase) Create(ctx context.Context, control *model.Control) (*model.Control, error) {
	control.ID = ""
	if control.Status == "" {
		control.Status = types.ControlStatusNotImplemented
	}
	if err := control.Validate(); err != nil {
		return nil, validationError(err, types.KindControl)
	}

	created, err := uc.d.repo.Control().Create(ctx, control)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control")
	}

	uc.d.mutated(ctx, types.ActivityCreate, types.KindControl, created.ID, created.Code+" "+created.Title)
	uc.d.index(ctx, created)
	return created, nil
}

func (uc *ControlUseCase) Get(ctx context.Context, id string) (*model.Control, error) {
	return getEntity(ctx, uc.d.repo.Control(), types.KindControl, id)
}

// List returns matching controls ordered by code.
func (uc *ControlUseCase) List(ctx context.Context, filter model.ControlFilter) ([]*model.Control, error) {
	return filterEntities(ctx, uc.d.repo.Control(), types.KindControl, filter.Match, func(a, b *model.Control) bool {
		return a.Code < b.Code
	})
}

func (uc *ControlUseCase) Update(ctx context.Context, control *model.Control) (*model.Control, error) {
	if _, err := uc.Get(ctx, control.ID); err != nil {
		return nil, err
	}
	if err := control.Validate(); err != nil {
		return nil, validationError(err, types.KindControl)
	}

	updated, err := uc.d.repo.Control().Update(ctx, control)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V(IDKey, control.ID))
	}

	uc.d.mutated(ctx, types.ActivityUpdate, types.KindControl, updated.ID, updated.Code+" "+updated.Title)
	uc.d.index(ctx, updated)
	return updated, nil
}

func (uc *ControlUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.d.repo.Control().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete control", goerr.V(IDKey, id))
	}

	uc.d.mutated(ctx, types.ActivityDelete, types.KindControl, id, "")
	uc.d.unindex(ctx, types.KindControl, id)
	return nil
}

// Stats reports the share of fully implemented controls and the mean
// effectiveness over all controls.
func (uc *ControlUseCase) Stats(ctx context.Context) (*model.ControlStats, error) {
	controls, err := uc.List(ctx, model.ControlFilter{})
	if err != nil {
		return nil, err
	}

	stats := &model.ControlStats{
		Total:    len(controls),
		ByStatus: make(map[types.ControlStatus]int),
		ByType:   make(map[types.ControlType]int),
	}
	effectiveness := make([]float64, 0, len(controls))
	for _, c := range controls {
		stats.ByStatus[c.Status]++
		stats.ByType[c.Type]++
		effectiveness = append(effectiveness, float64(c.Effectiveness))
	}
	stats.ImplementationRate = model.Percent(stats.ByStatus[types.ControlStatusImplemented], len(controls))
	stats.AverageEffectiveness = model.Mean(effectiveness)
	return stats, nil
}
