package model_test

import (
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestIncidentSetStatus(t *testing.T) {
	detected := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	inc := &model.Incident{Status: types.IncidentStatusOpen, DetectedAt: detected}

	_, ok := inc.TimeToResolve()
	gt.Bool(t, ok).False()

	inc.SetStatus(types.IncidentStatusInvestigating, detected.Add(time.Hour))
	gt.Value(t, inc.ResolvedAt).Nil()

	resolved := detected.Add(6 * time.Hour)
	inc.SetStatus(types.IncidentStatusResolved, resolved)
	gt.Value(t, inc.ResolvedAt).NotNil()
	gt.Bool(t, inc.ResolvedAt.Equal(resolved)).True()

	// closing later keeps the first resolution time
	inc.SetStatus(types.IncidentStatusClosed, resolved.Add(24*time.Hour))
	gt.Bool(t, inc.ResolvedAt.Equal(resolved)).True()

	d, ok := inc.TimeToResolve()
	gt.Bool(t, ok).True()
	gt.Value(t, d).Equal(6 * time.Hour)

	inc.SetStatus(types.IncidentStatusOpen, resolved.Add(48*time.Hour))
	gt.Value(t, inc.ResolvedAt).Nil()
}

func TestIncidentFilter(t *testing.T) {
	inc := &model.Incident{
		Severity: types.SeverityCritical,
		Status:   types.IncidentStatusOpen,
		Category: types.IncidentCategoryPrivacy,
		Assignee: "carol",
	}

	gt.Bool(t, model.IncidentFilter{}.Match(inc)).True()
	gt.Bool(t, model.IncidentFilter{Severity: types.SeverityCritical, Assignee: "carol"}.Match(inc)).True()
	gt.Bool(t, model.IncidentFilter{Category: types.IncidentCategorySecurity}.Match(inc)).False()
	gt.Bool(t, model.IncidentFilter{Status: types.IncidentStatusOpen, Assignee: "dave"}.Match(inc)).False()
}
