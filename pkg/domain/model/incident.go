package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

type Incident struct {
	Meta
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Severity       types.Severity         `json:"severity"`
	Status         types.IncidentStatus   `json:"status"`
	Category       types.IncidentCategory `json:"category"`
	Reporter       string                 `json:"reporter"`
	Assignee       string                 `json:"assignee"`
	DetectedAt     time.Time              `json:"detectedAt"`
	ResolvedAt     *time.Time             `json:"resolvedAt,omitempty"`
	RelatedRiskIDs []string               `json:"relatedRiskIds"`
}

func (i *Incident) Validate() error {
	if i.Title == "" {
		return required("title")
	}
	if !i.Severity.IsValid() {
		return invalid("severity", "invalid severity", i.Severity)
	}
	if !i.Status.IsValid() {
		return invalid("status", "invalid incident status", i.Status)
	}
	if !i.Category.IsValid() {
		return invalid("category", "invalid incident category", i.Category)
	}
	return nil
}

// SetStatus moves the incident to status. ResolvedAt is stamped on the first
// transition into a resolved state and cleared when the incident is reopened.
func (i *Incident) SetStatus(status types.IncidentStatus, now time.Time) {
	i.Status = status
	switch {
	case status.IsResolved() && i.ResolvedAt == nil:
		t := now
		i.ResolvedAt = &t
	case !status.IsResolved():
		i.ResolvedAt = nil
	}
}

// TimeToResolve returns the duration from detection to resolution.
func (i *Incident) TimeToResolve() (time.Duration, bool) {
	if i.ResolvedAt == nil {
		return 0, false
	}
	return i.ResolvedAt.Sub(i.DetectedAt), true
}

type IncidentFilter struct {
	Severity types.Severity
	Status   types.IncidentStatus
	Category types.IncidentCategory
	Assignee string
}

func (f IncidentFilter) Match(i *Incident) bool {
	return (f.Severity == "" || i.Severity == f.Severity) &&
		(f.Status == "" || i.Status == f.Status) &&
		(f.Category == "" || i.Category == f.Category) &&
		(f.Assignee == "" || i.Assignee == f.Assignee)
}

type IncidentStats struct {
	Total                  int                          `json:"total"`
	Open                   int                          `json:"open"`
	BySeverity             map[types.Severity]int       `json:"bySeverity"`
	ByStatus               map[types.IncidentStatus]int `json:"byStatus"`
	MeanTimeToResolveHours float64                      `json:"meanTimeToResolveHours"`
}
