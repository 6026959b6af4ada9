package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

type Policy struct {
	Meta
	Title          string             `json:"title"`
	Category       string             `json:"category"`
	Version        string             `json:"version"`
	Status         types.PolicyStatus `json:"status"`
	Owner          string             `json:"owner"`
	Content        string             `json:"content"`
	EffectiveDate  *time.Time         `json:"effectiveDate,omitempty"`
	NextReviewDate *time.Time         `json:"nextReviewDate,omitempty"`
}

func (p *Policy) Validate() error {
	if p.Title == "" {
		return required("title")
	}
	if !p.Status.IsValid() {
		return invalid("status", "invalid policy status", p.Status)
	}
	if p.EffectiveDate != nil && p.NextReviewDate != nil && p.NextReviewDate.Before(*p.EffectiveDate) {
		return invalid("nextReviewDate", "next review date precedes effective date", p.NextReviewDate)
	}
	return nil
}

// DueForReview is true when the review date has passed for a policy still in force.
func (p *Policy) DueForReview(now time.Time) bool {
	if p.NextReviewDate == nil || p.Status == types.PolicyStatusRetired {
		return false
	}
	return !p.NextReviewDate.After(now)
}

type PolicyFilter struct {
	Status   types.PolicyStatus
	Category string
	Owner    string
}

func (f PolicyFilter) Match(p *Policy) bool {
	return (f.Status == "" || p.Status == f.Status) &&
		(f.Category == "" || p.Category == f.Category) &&
		(f.Owner == "" || p.Owner == f.Owner)
}

type PolicyStats struct {
	Total        int                        `json:"total"`
	ByStatus     map[types.PolicyStatus]int `json:"byStatus"`
	DueForReview int                        `json:"dueForReview"`
}
