package model

import (
	"sort"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// MaturityCapability is a scored capability. Scores use a 1-5 scale; a zero
// current score means not yet assessed.
type MaturityCapability struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	CurrentScore float64 `json:"currentScore"`
	TargetScore  float64 `json:"targetScore"`
	Evidence     string  `json:"evidence"`
}

// Gap is the distance from the current score to the target.
func (c MaturityCapability) Gap() float64 {
	return round2(c.TargetScore - c.CurrentScore)
}

type MaturityDomain struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Capabilities []MaturityCapability `json:"capabilities"`
}

// Score is the mean current score of assessed capabilities.
func (d MaturityDomain) Score() float64 {
	var scores []float64
	for _, c := range d.Capabilities {
		if c.CurrentScore > 0 {
			scores = append(scores, c.CurrentScore)
		}
	}
	return Mean(scores)
}

// TargetScore is the mean target score of all capabilities.
func (d MaturityDomain) TargetScore() float64 {
	scores := make([]float64, 0, len(d.Capabilities))
	for _, c := range d.Capabilities {
		scores = append(scores, c.TargetScore)
	}
	return Mean(scores)
}

type MaturityAssessment struct {
	Meta
	Name        string                 `json:"name"`
	Scope       string                 `json:"scope"`
	Assessor    string                 `json:"assessor"`
	ModelID     string                 `json:"modelId,omitempty"`
	Status      types.AssessmentStatus `json:"status"`
	Domains     []MaturityDomain       `json:"domains"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
}

func (a *MaturityAssessment) Validate() error {
	if a.Name == "" {
		return required("name")
	}
	if !a.Status.IsValid() {
		return invalid("status", "invalid assessment status", a.Status)
	}
	for _, d := range a.Domains {
		if d.Name == "" {
			return required("domains.name")
		}
		for _, c := range d.Capabilities {
			if c.Name == "" {
				return required("capabilities.name")
			}
			if c.CurrentScore != 0 && (c.CurrentScore < types.MinMaturityScore || c.CurrentScore > types.MaxMaturityScore) {
				return invalid("capabilities.currentScore", "score must be between 1 and 5", c.CurrentScore)
			}
			if c.TargetScore < types.MinMaturityScore || c.TargetScore > types.MaxMaturityScore {
				return invalid("capabilities.targetScore", "score must be between 1 and 5", c.TargetScore)
			}
		}
	}
	return nil
}

// Capability returns the capability with id inside domain domainID, or nil.
func (a *MaturityAssessment) Capability(domainID, capabilityID string) *MaturityCapability {
	for i := range a.Domains {
		if a.Domains[i].ID != domainID {
			continue
		}
		for j := range a.Domains[i].Capabilities {
			if a.Domains[i].Capabilities[j].ID == capabilityID {
				return &a.Domains[i].Capabilities[j]
			}
		}
	}
	return nil
}

type DomainScore struct {
	DomainID    string              `json:"domainId"`
	Name        string              `json:"name"`
	Score       float64             `json:"score"`
	TargetScore float64             `json:"targetScore"`
	Gap         float64             `json:"gap"`
	Level       types.MaturityLevel `json:"level"`
	LevelName   string              `json:"levelName"`
}

type CapabilityGap struct {
	DomainID     string  `json:"domainId"`
	CapabilityID string  `json:"capabilityId"`
	Name         string  `json:"name"`
	CurrentScore float64 `json:"currentScore"`
	TargetScore  float64 `json:"targetScore"`
	Gap          float64 `json:"gap"`
}

type MaturitySummary struct {
	AssessmentID string              `json:"assessmentId"`
	OverallScore float64             `json:"overallScore"`
	Level        types.MaturityLevel `json:"level"`
	LevelName    string              `json:"levelName"`
	Domains      []DomainScore       `json:"domains"`
	Gaps         []CapabilityGap     `json:"gaps"`
}

// Summarize computes per domain scores, the overall score (mean of scored
// domains), the maturity level and capability gaps ordered by largest gap.
func (a *MaturityAssessment) Summarize() *MaturitySummary {
	summary := &MaturitySummary{
		AssessmentID: a.ID,
		Domains:      make([]DomainScore, 0, len(a.Domains)),
		Gaps:         []CapabilityGap{},
	}

	var domainScores []float64
	for _, d := range a.Domains {
		score := d.Score()
		level := types.MaturityLevelFromScore(score)
		summary.Domains = append(summary.Domains, DomainScore{
			DomainID:    d.ID,
			Name:        d.Name,
			Score:       score,
			TargetScore: d.TargetScore(),
			Gap:         round2(d.TargetScore() - score),
			Level:       level,
			LevelName:   level.Name(),
		})
		if score > 0 {
			domainScores = append(domainScores, score)
		}

		for _, c := range d.Capabilities {
			if c.CurrentScore > 0 && c.Gap() > 0 {
				summary.Gaps = append(summary.Gaps, CapabilityGap{
					DomainID:     d.ID,
					CapabilityID: c.ID,
					Name:         c.Name,
					CurrentScore: c.CurrentScore,
					TargetScore:  c.TargetScore,
					Gap:          c.Gap(),
				})
			}
		}
	}

	summary.OverallScore = Mean(domainScores)
	summary.Level = types.MaturityLevelFromScore(summary.OverallScore)
	summary.LevelName = summary.Level.Name()

	sort.SliceStable(summary.Gaps, func(i, j int) bool {
		return summary.Gaps[i].Gap > summary.Gaps[j].Gap
	})

	return summary
}

type AssessmentFilter struct {
	Status   types.AssessmentStatus
	Assessor string
}

func (f AssessmentFilter) Match(a *MaturityAssessment) bool {
	return (f.Status == "" || a.Status == f.Status) &&
		(f.Assessor == "" || a.Assessor == f.Assessor)
}
