package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

type AuditFinding struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Severity       types.Severity      `json:"severity"`
	Status         types.FindingStatus `json:"status"`
	Recommendation string              `json:"recommendation"`
	Owner          string              `json:"owner"`
	DueDate        *time.Time          `json:"dueDate,omitempty"`
	ClosedAt       *time.Time          `json:"closedAt,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func (f *AuditFinding) Validate() error {
	if f.Title == "" {
		return required("title")
	}
	if !f.Severity.IsValid() {
		return invalid("severity", "invalid severity", f.Severity)
	}
	if !f.Status.IsValid() {
		return invalid("status", "invalid finding status", f.Status)
	}
	return nil
}

// Overdue is true for an unclosed finding past its due date.
func (f *AuditFinding) Overdue(now time.Time) bool {
	return f.Status != types.FindingStatusClosed && f.DueDate != nil && f.DueDate.Before(now)
}

type Audit struct {
	Meta
	Title       string            `json:"title"`
	Type        types.AuditType   `json:"type"`
	Scope       string            `json:"scope"`
	LeadAuditor string            `json:"leadAuditor"`
	FrameworkID string            `json:"frameworkId,omitempty"`
	Status      types.AuditStatus `json:"status"`
	StartDate   *time.Time        `json:"startDate,omitempty"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	Findings    []AuditFinding    `json:"findings"`
}

func (a *Audit) Validate() error {
	if a.Title == "" {
		return required("title")
	}
	if !a.Type.IsValid() {
		return invalid("type", "invalid audit type", a.Type)
	}
	if !a.Status.IsValid() {
		return invalid("status", "invalid audit status", a.Status)
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return invalid("endDate", "end date precedes start date", a.EndDate)
	}
	for i := range a.Findings {
		if err := a.Findings[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Finding returns the finding with id, or nil.
func (a *Audit) Finding(id string) *AuditFinding {
	for i := range a.Findings {
		if a.Findings[i].ID == id {
			return &a.Findings[i]
		}
	}
	return nil
}

type AuditFilter struct {
	Type        types.AuditType
	Status      types.AuditStatus
	LeadAuditor string
}

func (f AuditFilter) Match(a *Audit) bool {
	return (f.Type == "" || a.Type == f.Type) &&
		(f.Status == "" || a.Status == f.Status) &&
		(f.LeadAuditor == "" || a.LeadAuditor == f.LeadAuditor)
}

type AuditStats struct {
	Total                  int                       `json:"total"`
	ByStatus               map[types.AuditStatus]int `json:"byStatus"`
	OpenFindings           int                       `json:"openFindings"`
	OpenFindingsBySeverity map[types.Severity]int    `json:"openFindingsBySeverity"`
	OverdueFindings        int                       `json:"overdueFindings"`
}
