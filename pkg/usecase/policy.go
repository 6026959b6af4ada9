package usecase

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type PolicyUseCase struct {
	d *deps
}

func (uc *PolicyUseCase) Create(ctx context.Context, policy *model.Policy) (*model.Policy, error) {
	policy.ID = ""
	if policy.Status == "" {
		policy.Status = types.PolicyStatusDraft
	}
	if err := policy.Validate(); err != nil {
		return nil, validationError(err, types.KindPolicy)
	}

	created, err := uc.d.repo.Policy().Create(ctx, policy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create policy")
	}

	uc.d.mutated(ctx, types.ActivityCreate, types.KindPolicy, created.ID, created.Title)
	uc.d.index(ctx, created)
	return created, nil
}

func (uc *PolicyUseCase) Get(ctx context.Context, id string) (*model.Policy, error) {
	return getEntity(ctx, uc.d.repo.Policy(), types.KindPolicy, id)
}

// List returns matching policies ordered by title.
func (uc *PolicyUseCase) List(ctx context.Context, filter model.PolicyFilter) ([]*model.Policy, error) {
	return filterEntities(ctx, uc.d.repo.Policy(), types.KindPolicy, filter.Match, func(a, b *model.Policy) bool {
		return a.Title < b.Title
	})
}

func (uc *PolicyUseCase) Update(ctx context.Context, policy *model.Policy) (*model.Policy, error) {
	if _, err := uc.Get(ctx, policy.ID); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, validationError(err, types.KindPolicy)
	}

	updated, err := uc.d.repo.Policy().Update(ctx, policy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update policy", goerr.V(IDKey, policy.ID))
	}

	uc.d.mutated(ctx, types.ActivityUpdate, types.KindPolicy, updated.ID, updated.Title)
	uc.d.index(ctx, updated)
	return updated, nil
}

func (uc *PolicyUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.d.repo.Policy().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete policy", goerr.V(IDKey, id))
	}

	uc.d.mutated(ctx, types.ActivityDelete, types.KindPolicy, id, "")
	uc.d.unindex(ctx, types.KindPolicy, id)
	return nil
}

// DueForReview returns policies whose next review date has passed.
func (uc *PolicyUseCase) DueForReview(ctx context.Context) ([]*model.Policy, error) {
	now := uc.d.now()
	return filterEntities(ctx, uc.d.repo.Policy(), types.KindPolicy,
		func(p *model.Policy) bool { return p.DueForReview(now) },
		func(a, b *model.Policy) bool { return a.NextReviewDate.Before(*b.NextReviewDate) },
	)
}

func (uc *PolicyUseCase) Stats(ctx context.Context) (*model.PolicyStats, error) {
	policies, err := uc.List(ctx, model.PolicyFilter{})
	if err != nil {
		return nil, err
	}

	now := uc.d.now()
	stats := &model.PolicyStats{
		Total:    len(policies),
		ByStatus: make(map[types.PolicyStatus]int),
	}
	for _, p := range policies {
		stats.ByStatus[p.Status]++
		if p.DueForReview(now) {
			stats.DueForReview++
		}
	}
	return stats, nil
}
