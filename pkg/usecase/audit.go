package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type AuditUseCase struct {
	d *deps
}

func (uc *AuditUseCase) Create(ctx context.Context, a *model.Audit) (*model.Audit, error) {
	a.ID = ""
	if a.Status == "" {
		a.Status = types.AuditStatusPlanned
	}
	now := uc.d.now()
	for i := range a.Findings {
		prepareFinding(&a.Findings[i], now)
	}
	if a.Findings == nil {
		a.Findings = []model.AuditFinding{}
	}
	if err := a.Validate(); err != nil {
		return nil, validationError(err, types.KindAudit)
	}

	created, err := uc.d.repo.Audit().Create(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create audit")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindAudit, created.ID, created.Title)
	return created, nil
}

func prepareFinding(f *model.AuditFinding, now time.Time) {
	if f.ID == "" {
		f.ID = model.NewID()
	}
	if f.Status == "" {
		f.Status = types.FindingStatusOpen
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
}

func (uc *AuditUseCase) Get(ctx context.Context, id string) (*model.Audit, error) {
	return getEntity(ctx, uc.d.repo.Audit(), types.KindAudit, id)
}

// List returns matching audits, newest first.
func (uc *AuditUseCase) List(ctx context.Context, filter model.AuditFilter) ([]*model.Audit, error) {
	return filterEntities(ctx, uc.d.repo.Audit(), types.KindAudit, filter.Match, newerFirst[*model.Audit])
}

func (uc *AuditUseCase) UpdateStatus(ctx context.Context, id string, status types.AuditStatus) (*model.Audit, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := a.Status
	a.Status = status
	return uc.save(ctx, a, fmt.Sprintf("%s (%s -> %s)", a.Title, previous, status))
}

func (uc *AuditUseCase) AddFinding(ctx context.Context, auditID string, finding model.AuditFinding) (*model.Audit, error) {
	a, err := uc.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	finding.ID = ""
	finding.ClosedAt = nil
	prepareFinding(&finding, uc.d.now())
	if finding.Status == types.FindingStatusClosed {
		closedAt := finding.CreatedAt
		finding.ClosedAt = &closedAt
	}
	a.Findings = append(a.Findings, finding)
	return uc.save(ctx, a, a.Title+": finding "+finding.Title)
}

// UpdateFindingStatus moves a finding. Closing stamps ClosedAt and
// reopening clears it.
func (uc *AuditUseCase) UpdateFindingStatus(ctx context.Context, auditID, findingID string, status types.FindingStatus) (*model.Audit, error) {
	a, err := uc.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	f := a.Finding(findingID)
	if f == nil {
		return nil, goerr.Wrap(ErrNotFound, "finding not found", goerr.V(IDKey, auditID), goerr.V("finding_id", findingID))
	}

	previous := f.Status
	f.Status = status
	switch {
	case status == types.FindingStatusClosed && f.ClosedAt == nil:
		now := uc.d.now()
		f.ClosedAt = &now
	case status != types.FindingStatusClosed:
		f.ClosedAt = nil
	}
	return uc.save(ctx, a, fmt.Sprintf("%s: finding %s (%s -> %s)", a.Title, f.Title, previous, status))
}

func (uc *AuditUseCase) save(ctx context.Context, a *model.Audit, summary string) (*model.Audit, error) {
	if err := a.Validate(); err != nil {
		return nil, validationError(err, types.KindAudit)
	}
	updated, err := uc.d.repo.Audit().Update(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update audit", goerr.V(IDKey, a.ID))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindAudit, updated.ID, summary)
	return updated, nil
}

func (uc *AuditUseCase) Stats(ctx context.Context) (*model.AuditStats, error) {
	audits, err := uc.List(ctx, model.AuditFilter{})
	if err != nil {
		return nil, err
	}

	now := uc.d.now()
	stats := &model.AuditStats{
		Total:                  len(audits),
		ByStatus:               make(map[types.AuditStatus]int),
		OpenFindingsBySeverity: make(map[types.Severity]int),
	}
	for _, a := range audits {
		stats.ByStatus[a.Status]++
		for i := range a.Findings {
			f := &a.Findings[i]
			if f.Status == types.FindingStatusClosed {
				continue
			}
			stats.OpenFindings++
			stats.OpenFindingsBySeverity[f.Severity]++
			if f.Overdue(now) {
				stats.OverdueFindings++
			}
		}
	}
	return stats, nil
}
