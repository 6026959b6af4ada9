package usecase

import (
	"context"
	"fmt"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type MaturityUseCase struct {
	d *deps
}

func (uc *MaturityUseCase) Create(ctx context.Context, a *model.MaturityAssessment) (*model.MaturityAssessment, error) {
	a.ID = ""
	a.CompletedAt = nil
	if a.Status == "" {
		a.Status = types.AssessmentStatusDraft
	}
	if a.Domains == nil {
		a.Domains = []model.MaturityDomain{}
	}
	for i := range a.Domains {
		if a.Domains[i].ID == "" {
			a.Domains[i].ID = model.NewID()
		}
		for j := range a.Domains[i].Capabilities {
			if a.Domains[i].Capabilities[j].ID == "" {
				a.Domains[i].Capabilities[j].ID = model.NewID()
			}
		}
	}
	if err := a.Validate(); err != nil {
		return nil, validationError(err, types.KindAssessment)
	}

	created, err := uc.d.repo.Assessment().Create(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create maturity assessment")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindAssessment, created.ID, created.Name)
	return created, nil
}

// Models returns the maturity models of the catalog.
func (uc *MaturityUseCase) Models() []catalog.MaturityModel {
	if uc.d.catalog == nil {
		return []catalog.MaturityModel{}
	}
	return uc.d.catalog.MaturityModels
}

// CreateFromModel creates an unscored assessment with the domains and
// capabilities of a catalog maturity model. Domain and capability IDs are
// the catalog IDs.
func (uc *MaturityUseCase) CreateFromModel(ctx context.Context, modelID types.CatalogID, a *model.MaturityAssessment) (*model.MaturityAssessment, error) {
	m := uc.d.catalog.MaturityModel(modelID)
	if m == nil {
		return nil, goerr.Wrap(ErrNotFound, "maturity model not found", goerr.V(IDKey, modelID))
	}

	a.ModelID = m.ID.String()
	a.Domains = make([]model.MaturityDomain, 0, len(m.Domains))
	for _, md := range m.Domains {
		d := model.MaturityDomain{
			ID:           md.ID.String(),
			Name:         md.Name,
			Capabilities: make([]model.MaturityCapability, 0, len(md.Capabilities)),
		}
		for _, mc := range md.Capabilities {
			d.Capabilities = append(d.Capabilities, model.MaturityCapability{
				ID:          mc.ID.String(),
				Name:        mc.Name,
				Description: mc.Description,
				TargetScore: mc.TargetScore,
			})
		}
		a.Domains = append(a.Domains, d)
	}
	return uc.Create(ctx, a)
}

func (uc *MaturityUseCase) Get(ctx context.Context, id string) (*model.MaturityAssessment, error) {
	return getEntity(ctx, uc.d.repo.Assessment(), types.KindAssessment, id)
}

// List returns matching assessments, newest first.
func (uc *MaturityUseCase) List(ctx context.Context, filter model.AssessmentFilter) ([]*model.MaturityAssessment, error) {
	return filterEntities(ctx, uc.d.repo.Assessment(), types.KindAssessment, filter.Match, newerFirst[*model.MaturityAssessment])
}

// ScoreInput is the new rating of one capability.
type ScoreInput struct {
	DomainID     string
	CapabilityID string
	Score        float64
	TargetScore  float64
	Evidence     string
}

// UpdateCapability rates a capability. A zero target score keeps the
// current target. Scoring a draft assessment moves it to in-progress;
// completed assessments cannot be changed.
func (uc *MaturityUseCase) UpdateCapability(ctx context.Context, id string, input ScoreInput) (*model.MaturityAssessment, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == types.AssessmentStatusCompleted {
		return nil, goerr.Wrap(ErrConflict, "assessment is completed", goerr.V(IDKey, id))
	}

	c := a.Capability(input.DomainID, input.CapabilityID)
	if c == nil {
		return nil, goerr.Wrap(ErrNotFound, "capability not found",
			goerr.V(IDKey, id), goerr.V("domain_id", input.DomainID), goerr.V("capability_id", input.CapabilityID))
	}
	c.CurrentScore = input.Score
	if input.TargetScore != 0 {
		c.TargetScore = input.TargetScore
	}
	if input.Evidence != "" {
		c.Evidence = input.Evidence
	}
	if a.Status == types.AssessmentStatusDraft {
		a.Status = types.AssessmentStatusInProgress
	}

	return uc.save(ctx, a, fmt.Sprintf("%s: %s scored %.1f", a.Name, c.Name, input.Score))
}

// Complete freezes the assessment.
func (uc *MaturityUseCase) Complete(ctx context.Context, id string) (*model.MaturityAssessment, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == types.AssessmentStatusCompleted {
		return nil, goerr.Wrap(ErrConflict, "assessment is already completed", goerr.V(IDKey, id))
	}
	now := uc.d.now()
	a.Status = types.AssessmentStatusCompleted
	a.CompletedAt = &now
	return uc.save(ctx, a, a.Name+": completed")
}

func (uc *MaturityUseCase) save(ctx context.Context, a *model.MaturityAssessment, summary string) (*model.MaturityAssessment, error) {
	if err := a.Validate(); err != nil {
		return nil, validationError(err, types.KindAssessment)
	}
	updated, err := uc.d.repo.Assessment().Update(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update maturity assessment", goerr.V(IDKey, a.ID))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindAssessment, updated.ID, summary)
	return updated, nil
}

func (uc *MaturityUseCase) Summary(ctx context.Context, id string) (*model.MaturitySummary, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Summarize(), nil
}
