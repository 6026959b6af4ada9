package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/async"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/metrics"
	"github.com/m-mizutani/goerr/v2"
)

type RegulatoryUseCase struct {
	d      *deps
	notify *NotifyUseCase
}

// CreateChange stores a regulatory change and raises its alerts right away.
func (uc *RegulatoryUseCase) CreateChange(ctx context.Context, c *model.RegulatoryChange) (*model.RegulatoryChange, error) {
	c.ID = ""
	if c.Status == "" {
		c.Status = types.ChangeStatusNew
	}
	if err := c.Validate(); err != nil {
		return nil, validationError(err, types.KindRegulatoryChange)
	}

	created, err := uc.d.repo.RegulatoryChange().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create regulatory change")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindRegulatoryChange, created.ID, created.Title)

	// the change is stored; the alert worker retries whatever is missed here
	if _, err := uc.raiseAlerts(ctx, created, nil); err != nil {
		_ = errutil.Handle(ctx, err, "failed to raise compliance alerts")
	}
	return created, nil
}

func (uc *RegulatoryUseCase) GetChange(ctx context.Context, id string) (*model.RegulatoryChange, error) {
	return getEntity(ctx, uc.d.repo.RegulatoryChange(), types.KindRegulatoryChange, id)
}

// ListChanges returns matching changes ordered by effective date; changes
// without an effective date come last, newest first.
func (uc *RegulatoryUseCase) ListChanges(ctx context.Context, filter model.RegulatoryChangeFilter) ([]*model.RegulatoryChange, error) {
	return filterEntities(ctx, uc.d.repo.RegulatoryChange(), types.KindRegulatoryChange, filter.Match, func(a, b *model.RegulatoryChange) bool {
		switch {
		case a.EffectiveDate != nil && b.EffectiveDate != nil:
			return a.EffectiveDate.Before(*b.EffectiveDate)
		case a.EffectiveDate != nil:
			return true
		case b.EffectiveDate != nil:
			return false
		default:
			return newerFirst(a, b)
		}
	})
}

func (uc *RegulatoryUseCase) UpdateChangeStatus(ctx context.Context, id string, status types.ChangeStatus) (*model.RegulatoryChange, error) {
	c, err := uc.GetChange(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := c.Status
	c.Status = status
	if err := c.Validate(); err != nil {
		return nil, validationError(err, types.KindRegulatoryChange)
	}

	updated, err := uc.d.repo.RegulatoryChange().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update regulatory change", goerr.V(IDKey, id))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindRegulatoryChange, id,
		fmt.Sprintf("%s (%s -> %s)", updated.Title, previous, status))
	return updated, nil
}

func (uc *RegulatoryUseCase) CreateFrameworkUpdate(ctx context.Context, u *model.FrameworkUpdate) (*model.FrameworkUpdate, error) {
	u.ID = ""
	if u.Status == "" {
		u.Status = types.UpdateStatusPending
	}
	if err := u.Validate(); err != nil {
		return nil, validationError(err, types.KindFrameworkUpdate)
	}

	created, err := uc.d.repo.FrameworkUpdate().Create(ctx, u)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create framework update")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindFrameworkUpdate, created.ID, created.Framework+" "+created.ToVersion)
	return created, nil
}

// ListFrameworkUpdates returns matching updates, newest release first.
func (uc *RegulatoryUseCase) ListFrameworkUpdates(ctx context.Context, filter model.FrameworkUpdateFilter) ([]*model.FrameworkUpdate, error) {
	return filterEntities(ctx, uc.d.repo.FrameworkUpdate(), types.KindFrameworkUpdate, filter.Match, func(a, b *model.FrameworkUpdate) bool {
		if a.ReleaseDate != nil && b.ReleaseDate != nil {
			return a.ReleaseDate.After(*b.ReleaseDate)
		}
		return a.ReleaseDate != nil && b.ReleaseDate == nil
	})
}

func (uc *RegulatoryUseCase) UpdateFrameworkUpdateStatus(ctx context.Context, id string, status types.UpdateStatus) (*model.FrameworkUpdate, error) {
	u, err := getEntity(ctx, uc.d.repo.FrameworkUpdate(), types.KindFrameworkUpdate, id)
	if err != nil {
		return nil, err
	}
	u.Status = status
	if err := u.Validate(); err != nil {
		return nil, validationError(err, types.KindFrameworkUpdate)
	}

	updated, err := uc.d.repo.FrameworkUpdate().Update(ctx, u)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update framework update", goerr.V(IDKey, id))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindFrameworkUpdate, id, fmt.Sprintf("%s %s: %s", u.Framework, u.ToVersion, status))
	return updated, nil
}

func (uc *RegulatoryUseCase) GetAlert(ctx context.Context, id string) (*model.ComplianceAlert, error) {
	return getEntity(ctx, uc.d.repo.Alert(), types.KindAlert, id)
}

// ListAlerts returns matching alerts, newest first.
func (uc *RegulatoryUseCase) ListAlerts(ctx context.Context, filter model.AlertFilter) ([]*model.ComplianceAlert, error) {
	return filterEntities(ctx, uc.d.repo.Alert(), types.KindAlert, filter.Match, newerFirst[*model.ComplianceAlert])
}

// AcknowledgeAlert marks an alert as seen by the caller. Acknowledging an
// acknowledged alert is a no-op that returns the stored alert.
func (uc *RegulatoryUseCase) AcknowledgeAlert(ctx context.Context, id string) (*model.ComplianceAlert, error) {
	alert, err := uc.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Acknowledged {
		return alert, nil
	}

	now := uc.d.now()
	alert.Acknowledged = true
	alert.AcknowledgedBy = auth.ActorFromContext(ctx)
	alert.AcknowledgedAt = &now

	updated, err := uc.d.repo.Alert().Update(ctx, alert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to acknowledge alert", goerr.V(IDKey, id))
	}
	uc.d.mutated(ctx, types.ActivityAcknowledge, types.KindAlert, id, updated.Message)
	return updated, nil
}

type alertKey struct {
	changeID string
	reason   types.AlertReason
}

func (uc *RegulatoryUseCase) existingAlerts(ctx context.Context) (map[alertKey]bool, error) {
	alerts, err := uc.ListAlerts(ctx, model.AlertFilter{})
	if err != nil {
		return nil, err
	}
	existing := make(map[alertKey]bool, len(alerts))
	for _, a := range alerts {
		existing[alertKey{a.ChangeID, a.Reason}] = true
	}
	return existing, nil
}

// raiseAlerts creates the alerts change warrants and does not have yet.
// existing is loaded when nil.
func (uc *RegulatoryUseCase) raiseAlerts(ctx context.Context, change *model.RegulatoryChange, existing map[alertKey]bool) ([]*model.ComplianceAlert, error) {
	reasons := change.AlertReasons(uc.d.now())
	if len(reasons) == 0 {
		return nil, nil
	}
	if existing == nil {
		var err error
		if existing, err = uc.existingAlerts(ctx); err != nil {
			return nil, err
		}
	}

	var raised []*model.ComplianceAlert
	for _, reason := range reasons {
		key := alertKey{change.ID, reason}
		if existing[key] {
			continue
		}
		created, err := uc.d.repo.Alert().Create(ctx, model.NewComplianceAlert(change, reason))
		if errors.Is(err, ErrAlreadyExists) {
			existing[key] = true
			continue
		}
		if err != nil {
			return raised, goerr.Wrap(err, "failed to create compliance alert", goerr.V(IDKey, change.ID), goerr.V("reason", reason))
		}
		existing[key] = true
		raised = append(raised, created)
		metrics.AlertsRaised.Inc()
		uc.d.mutated(ctx, types.ActivityCreate, types.KindAlert, created.ID, created.Message)

		if len(uc.d.notifiers) > 0 {
			changeCopy := *change
			async.Dispatch(ctx, "notify-alert", func(ctx context.Context) error {
				uc.notify.SendAlert(ctx, created, &changeCopy)
				return nil
			})
		}
	}
	return raised, nil
}

// EvaluateAlerts re-checks every open change and raises missing alerts. It
// returns the number of alerts created.
func (uc *RegulatoryUseCase) EvaluateAlerts(ctx context.Context) (int, error) {
	changes, err := uc.ListChanges(ctx, model.RegulatoryChangeFilter{})
	if err != nil {
		return 0, err
	}
	existing, err := uc.existingAlerts(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, c := range changes {
		raised, err := uc.raiseAlerts(ctx, c, existing)
		count += len(raised)
		if err != nil {
			return count, err
		}
	}

	if count > 0 {
		logging.From(ctx).Info("compliance alerts raised", "count", count)
	}
	return count, nil
}

func (uc *RegulatoryUseCase) Stats(ctx context.Context) (*model.RegulatoryStats, error) {
	changes, err := uc.ListChanges(ctx, model.RegulatoryChangeFilter{})
	if err != nil {
		return nil, err
	}
	unacknowledged := false
	alerts, err := uc.ListAlerts(ctx, model.AlertFilter{Acknowledged: &unacknowledged})
	if err != nil {
		return nil, err
	}
	pending, err := uc.ListFrameworkUpdates(ctx, model.FrameworkUpdateFilter{Status: types.UpdateStatusPending})
	if err != nil {
		return nil, err
	}

	now := uc.d.now()
	stats := &model.RegulatoryStats{
		TotalChanges:         len(changes),
		ByImpact:             make(map[types.Severity]int),
		ByStatus:             make(map[types.ChangeStatus]int),
		UnacknowledgedAlerts: len(alerts),
		PendingUpdates:       len(pending),
	}
	for _, c := range changes {
		stats.ByImpact[c.Impact]++
		stats.ByStatus[c.Status]++
		if c.Status.IsOpen() {
			stats.OpenChanges++
		}
		if c.EffectiveDate != nil && !c.EffectiveDate.Before(now) && c.EffectiveDate.Before(now.Add(model.AlertWindow)) {
			stats.EffectiveWithin30d++
		}
	}
	return stats, nil
}
