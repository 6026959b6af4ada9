package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Risk is an entry of the risk register. Likelihood and impact are rated 1-5.
type Risk struct {
	Meta
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Category           types.RiskCategory `json:"category"`
	Status             types.RiskStatus   `json:"status"`
	Likelihood         int                `json:"likelihood"`
	Impact             int                `json:"impact"`
	ResidualLikelihood int                `json:"residualLikelihood,omitempty"`
	ResidualImpact     int                `json:"residualImpact,omitempty"`
	InherentScore      int                `json:"inherentScore"`
	ResidualScore      int                `json:"residualScore"`
	Severity           types.Severity     `json:"severity"`
	Owner              string             `json:"owner"`
	ControlIDs         []string           `json:"controlIds"`
	ReviewDate         *time.Time         `json:"reviewDate,omitempty"`
}

// Score recomputes the derived score fields. Residual ratings fall back to
// the inherent ones when not assessed.
func (r *Risk) Score() {
	r.InherentScore = r.Likelihood * r.Impact
	if r.ResidualLikelihood > 0 && r.ResidualImpact > 0 {
		r.ResidualScore = r.ResidualLikelihood * r.ResidualImpact
	} else {
		r.ResidualScore = r.InherentScore
	}
	r.Severity = types.SeverityFromRiskScore(r.InherentScore)
}

func (r *Risk) Validate() error {
	if r.Title == "" {
		return required("title")
	}
	if !r.Category.IsValid() {
		return invalid("category", "invalid risk category", r.Category)
	}
	if !r.Status.IsValid() {
		return invalid("status", "invalid risk status", r.Status)
	}
	if err := between("likelihood", r.Likelihood, 1, 5); err != nil {
		return err
	}
	if err := between("impact", r.Impact, 1, 5); err != nil {
		return err
	}
	if r.ResidualLikelihood != 0 {
		if err := between("residualLikelihood", r.ResidualLikelihood, 1, 5); err != nil {
			return err
		}
	}
	if r.ResidualImpact != 0 {
		if err := between("residualImpact", r.ResidualImpact, 1, 5); err != nil {
			return err
		}
	}
	return nil
}

// RiskFilter selects risks by equality. Zero fields match everything.
type RiskFilter struct {
	Category types.RiskCategory
	Status   types.RiskStatus
	Severity types.Severity
	Owner    string
}

func (f RiskFilter) Match(r *Risk) bool {
	return (f.Category == "" || r.Category == f.Category) &&
		(f.Status == "" || r.Status == f.Status) &&
		(f.Severity == "" || r.Severity == f.Severity) &&
		(f.Owner == "" || r.Owner == f.Owner)
}

// RiskStats summarises the risk register.
type RiskStats struct {
	Total                int                      `json:"total"`
	BySeverity           map[types.Severity]int   `json:"bySeverity"`
	ByStatus             map[types.RiskStatus]int `json:"byStatus"`
	AverageInherentScore float64                  `json:"averageInherentScore"`
	AverageResidualScore float64                  `json:"averageResidualScore"`
}
