package usecase

import (
	"context"
	"fmt"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

type IncidentUseCase struct {
	d      *deps
	notify *NotifyUseCase
}

// Create stores a new incident and notifies the configured integrations in
// the background.
func (uc *IncidentUseCase) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	incident.ID = ""
	incident.ResolvedAt = nil
	if incident.Status == "" {
		incident.Status = types.IncidentStatusOpen
	}
	if incident.DetectedAt.IsZero() {
		incident.DetectedAt = uc.d.now()
	}
	if incident.Status.IsResolved() {
		incident.SetStatus(incident.Status, uc.d.now())
	}
	if err := incident.Validate(); err != nil {
		return nil, validationError(err, types.KindIncident)
	}

	created, err := uc.d.repo.Incident().Create(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}

	uc.d.mutated(ctx, types.ActivityCreate, types.KindIncident, created.ID, created.Title)
	uc.d.index(ctx, created)

	if len(uc.d.notifiers) > 0 {
		notification := &model.Notification{
			Title:      fmt.Sprintf("New %s incident: %s", created.Severity, created.Title),
			Message:    created.Description,
			Severity:   created.Severity,
			Kind:       types.KindIncident,
			ResourceID: created.ID,
		}
		if notification.Message == "" {
			notification.Message = created.Title
		}
		async.Dispatch(ctx, "notify-incident", func(ctx context.Context) error {
			_, err := uc.notify.Send(ctx, notification)
			return err
		})
	}

	return created, nil
}

func (uc *IncidentUseCase) Get(ctx context.Context, id string) (*model.Incident, error) {
	return getEntity(ctx, uc.d.repo.Incident(), types.KindIncident, id)
}

// List returns matching incidents, most recently detected first.
func (uc *IncidentUseCase) List(ctx context.Context, filter model.IncidentFilter) ([]*model.Incident, error) {
	return filterEntities(ctx, uc.d.repo.Incident(), types.KindIncident, filter.Match, func(a, b *model.Incident) bool {
		return a.DetectedAt.After(b.DetectedAt)
	})
}

// Update replaces the incident. The resolution timestamp is maintained from
// the stored record so clients cannot forge it.
func (uc *IncidentUseCase) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	existing, err := uc.Get(ctx, incident.ID)
	if err != nil {
		return nil, err
	}

	status := incident.Status
	incident.Status = existing.Status
	incident.ResolvedAt = existing.ResolvedAt
	if status != "" {
		incident.SetStatus(status, uc.d.now())
	}
	if incident.DetectedAt.IsZero() {
		incident.DetectedAt = existing.DetectedAt
	}
	if err := incident.Validate(); err != nil {
		return nil, validationError(err, types.KindIncident)
	}

	updated, err := uc.d.repo.Incident().Update(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V(IDKey, incident.ID))
	}

	summary := updated.Title
	if existing.Status != updated.Status {
		summary = fmt.Sprintf("%s (%s -> %s)", updated.Title, existing.Status, updated.Status)
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindIncident, updated.ID, summary)
	uc.d.index(ctx, updated)
	return updated, nil
}

func (uc *IncidentUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.d.repo.Incident().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V(IDKey, id))
	}

	uc.d.mutated(ctx, types.ActivityDelete, types.KindIncident, id, "")
	uc.d.unindex(ctx, types.KindIncident, id)
	return nil
}

func (uc *IncidentUseCase) Stats(ctx context.Context) (*model.IncidentStats, error) {
	incidents, err := uc.List(ctx, model.IncidentFilter{})
	if err != nil {
		return nil, err
	}

	stats := &model.IncidentStats{
		Total:      len(incidents),
		BySeverity: make(map[types.Severity]int),
		ByStatus:   make(map[types.IncidentStatus]int),
	}
	var hours []float64
	for _, i := range incidents {
		stats.BySeverity[i.Severity]++
		stats.ByStatus[i.Status]++
		if !i.Status.IsResolved() {
			stats.Open++
		}
		if d, ok := i.TimeToResolve(); ok {
			hours = append(hours, d.Hours())
		}
	}
	stats.MeanTimeToResolveHours = model.Mean(hours)
	return stats, nil
}
