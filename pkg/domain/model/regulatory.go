package model

import (
	"fmt"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/google/uuid"
)

// AlertWindow is how far ahead an effective date triggers an alert.
const AlertWindow = 30 * 24 * time.Hour

// RegulatoryChange tracks a new or amended regulation.
type RegulatoryChange struct {
	Meta
	Title              string             `json:"title"`
	Regulator          string             `json:"regulator"`
	Jurisdiction       string             `json:"jurisdiction"`
	Summary            string             `json:"summary"`
	Impact             types.Severity     `json:"impact"`
	Status             types.ChangeStatus `json:"status"`
	PublishedAt        *time.Time         `json:"publishedAt,omitempty"`
	EffectiveDate      *time.Time         `json:"effectiveDate,omitempty"`
	AffectedFrameworks []string           `json:"affectedFrameworks"`
	Owner              string             `json:"owner"`
}

func (c *RegulatoryChange) Validate() error {
	if c.Title == "" {
		return required("title")
	}
	if c.Regulator == "" {
		return required("regulator")
	}
	if !c.Impact.IsValid() {
		return invalid("impact", "invalid impact", c.Impact)
	}
	if !c.Status.IsValid() {
		return invalid("status", "invalid change status", c.Status)
	}
	return nil
}

// AlertReasons returns why the change warrants an alert at now. Closed
// changes never alert.
func (c *RegulatoryChange) AlertReasons(now time.Time) []types.AlertReason {
	if !c.Status.IsOpen() {
		return nil
	}
	var reasons []types.AlertReason
	if c.Impact.AtLeast(types.SeverityHigh) {
		reasons = append(reasons, types.AlertReasonHighImpact)
	}
	if c.EffectiveDate != nil && c.EffectiveDate.Before(now.Add(AlertWindow)) {
		reasons = append(reasons, types.AlertReasonEffectiveSoon)
	}
	return reasons
}

// NewComplianceAlert builds the alert raised for change with reason.
var alertNamespace = uuid.MustParse("6f1c2a4e-8b0d-4c3e-9a57-2d7e91b4c0f8")

// AlertID is the ID of the alert raised for change and reason. A change has
// at most one alert per reason, so the ID is derived rather than random.
func AlertID(changeID string, reason types.AlertReason) string {
	return uuid.NewSHA1(alertNamespace, []byte(changeID+"/"+string(reason))).String()
}

func NewComplianceAlert(c *RegulatoryChange, reason types.AlertReason) *ComplianceAlert {
	alert := &ComplianceAlert{
		Meta:     Meta{ID: AlertID(c.ID, reason)},
		ChangeID: c.ID,
		Reason:   reason,
		Severity: c.Impact,
	}
	switch reason {
	case types.AlertReasonHighImpact:
		alert.Message = fmt.Sprintf("%s impact regulatory change from %s: %s", c.Impact, c.Regulator, c.Title)
	case types.AlertReasonEffectiveSoon:
		alert.Message = fmt.Sprintf("Regulatory change %q becomes effective on %s", c.Title, c.EffectiveDate.Format(time.DateOnly))
		if alert.Severity.Rank() < types.SeverityHigh.Rank() {
			alert.Severity = types.SeverityHigh
		}
	}
	return alert
}

type RegulatoryChangeFilter struct {
	Regulator    string
	Jurisdiction string
	Impact       types.Severity
	Status       types.ChangeStatus
}

func (f RegulatoryChangeFilter) Match(c *RegulatoryChange) bool {
	return (f.Regulator == "" || c.Regulator == f.Regulator) &&
		(f.Jurisdiction == "" || c.Jurisdiction == f.Jurisdiction) &&
		(f.Impact == "" || c.Impact == f.Impact) &&
		(f.Status == "" || c.Status == f.Status)
}

// FrameworkUpdate tracks adoption of a new version of an external framework.
type FrameworkUpdate struct {
	Meta
	Framework   string             `json:"framework"`
	FromVersion string             `json:"fromVersion"`
	ToVersion   string             `json:"toVersion"`
	ReleaseDate *time.Time         `json:"releaseDate,omitempty"`
	Summary     string             `json:"summary"`
	ChangeCount int                `json:"changeCount"`
	Status      types.UpdateStatus `json:"status"`
}

func (u *FrameworkUpdate) Validate() error {
	if u.Framework == "" {
		return required("framework")
	}
	if u.ToVersion == "" {
		return required("toVersion")
	}
	if u.ChangeCount < 0 {
		return invalid("changeCount", "change count must not be negative", u.ChangeCount)
	}
	if !u.Status.IsValid() {
		return invalid("status", "invalid framework update status", u.Status)
	}
	return nil
}

type FrameworkUpdateFilter struct {
	Framework string
	Status    types.UpdateStatus
}

func (f FrameworkUpdateFilter) Match(u *FrameworkUpdate) bool {
	return (f.Framework == "" || u.Framework == f.Framework) &&
		(f.Status == "" || u.Status == f.Status)
}

// ComplianceAlert is derived from a regulatory change. At most one alert
// exists per change and reason.
type ComplianceAlert struct {
	Meta
	ChangeID       string            `json:"changeId"`
	Reason         types.AlertReason `json:"reason"`
	Severity       types.Severity    `json:"severity"`
	Message        string            `json:"message"`
	Acknowledged   bool              `json:"acknowledged"`
	AcknowledgedBy string            `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time        `json:"acknowledgedAt,omitempty"`
}

// AlertFilter selects alerts. A nil Acknowledged matches both states.
type AlertFilter struct {
	Acknowledged *bool
	Severity     types.Severity
	ChangeID     string
}

func (f AlertFilter) Match(a *ComplianceAlert) bool {
	return (f.Acknowledged == nil || a.Acknowledged == *f.Acknowledged) &&
		(f.Severity == "" || a.Severity == f.Severity) &&
		(f.ChangeID == "" || a.ChangeID == f.ChangeID)
}

type RegulatoryStats struct {
	TotalChanges         int                        `json:"totalChanges"`
	OpenChanges          int                        `json:"openChanges"`
	ByImpact             map[types.Severity]int     `json:"byImpact"`
	ByStatus             map[types.ChangeStatus]int `json:"byStatus"`
	EffectiveWithin30d   int                        `json:"effectiveWithin30Days"`
	UnacknowledgedAlerts int                        `json:"unacknowledgedAlerts"`
	PendingUpdates       int                        `json:"pendingFrameworkUpdates"`
}
