package model

import (
	"sort"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// BusinessProcess is a process covered by business continuity planning.
// RTO and RPO are expressed in hours.
type BusinessProcess struct {
	Meta
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Department   string            `json:"department"`
	Owner        string            `json:"owner"`
	Criticality  types.Criticality `json:"criticality"`
	RTOHours     float64           `json:"rtoHours"`
	RPOHours     float64           `json:"rpoHours"`
	Dependencies []string          `json:"dependencies"`
}

func (p *BusinessProcess) Validate() error {
	if p.Name == "" {
		return required("name")
	}
	if !p.Criticality.IsValid() {
		return invalid("criticality", "invalid criticality", p.Criticality)
	}
	if p.RTOHours < 0 {
		return invalid("rtoHours", "RTO must not be negative", p.RTOHours)
	}
	if p.RPOHours < 0 {
		return invalid("rpoHours", "RPO must not be negative", p.RPOHours)
	}
	return nil
}

type BusinessProcessFilter struct {
	Criticality types.Criticality
	Department  string
	Owner       string
}

func (f BusinessProcessFilter) Match(p *BusinessProcess) bool {
	return (f.Criticality == "" || p.Criticality == f.Criticality) &&
		(f.Department == "" || p.Department == f.Department) &&
		(f.Owner == "" || p.Owner == f.Owner)
}

// RecoveryStep is one ordered action of a recovery plan.
type RecoveryStep struct {
	Order            int    `json:"order"`
	Description      string `json:"description"`
	Owner            string `json:"owner"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type RecoveryPlan struct {
	Meta
	ProcessID      string           `json:"processId"`
	Name           string           `json:"name"`
	Status         types.PlanStatus `json:"status"`
	Steps          []RecoveryStep   `json:"steps"`
	LastReviewedAt *time.Time       `json:"lastReviewedAt,omitempty"`
}

// SortSteps orders steps ascending by Order.
func (p *RecoveryPlan) SortSteps() {
	sort.SliceStable(p.Steps, func(i, j int) bool {
		return p.Steps[i].Order < p.Steps[j].Order
	})
}

// NextStepOrder returns the order value for a step appended at the end.
func (p *RecoveryPlan) NextStepOrder() int {
	next := 1
	for _, s := range p.Steps {
		if s.Order >= next {
			next = s.Order + 1
		}
	}
	return next
}

// TotalEstimatedMinutes sums the estimates of all steps.
func (p *RecoveryPlan) TotalEstimatedMinutes() int {
	total := 0
	for _, s := range p.Steps {
		total += s.EstimatedMinutes
	}
	return total
}

func (p *RecoveryPlan) Validate() error {
	if p.Name == "" {
		return required("name")
	}
	if p.ProcessID == "" {
		return required("processId")
	}
	if !p.Status.IsValid() {
		return invalid("status", "invalid plan status", p.Status)
	}
	seen := make(map[int]bool, len(p.Steps))
	for _, s := range p.Steps {
		if s.Order < 1 {
			return invalid("steps.order", "step order must be positive", s.Order)
		}
		if seen[s.Order] {
			return invalid("steps.order", "duplicate step order", s.Order)
		}
		seen[s.Order] = true
		if s.Description == "" {
			return required("steps.description")
		}
		if s.EstimatedMinutes < 0 {
			return invalid("steps.estimatedMinutes", "estimate must not be negative", s.EstimatedMinutes)
		}
	}
	return nil
}

type RecoveryPlanFilter struct {
	ProcessID string
	Status    types.PlanStatus
}

func (f RecoveryPlanFilter) Match(p *RecoveryPlan) bool {
	return (f.ProcessID == "" || p.ProcessID == f.ProcessID) &&
		(f.Status == "" || p.Status == f.Status)
}

// BCPTest is a scheduled exercise of a recovery plan.
type BCPTest struct {
	Meta
	PlanID              string              `json:"planId"`
	Name                string              `json:"name"`
	Type                types.BCPTestType   `json:"type"`
	Status              types.BCPTestStatus `json:"status"`
	ScheduledAt         time.Time           `json:"scheduledAt"`
	CompletedAt         *time.Time          `json:"completedAt,omitempty"`
	ActualRecoveryHours *float64            `json:"actualRecoveryHours,omitempty"`
	Findings            []string            `json:"findings"`
	Notes               string              `json:"notes"`
}

func (t *BCPTest) Validate() error {
	if t.PlanID == "" {
		return required("planId")
	}
	if !t.Type.IsValid() {
		return invalid("type", "invalid test type", t.Type)
	}
	if !t.Status.IsValid() {
		return invalid("status", "invalid test status", t.Status)
	}
	if t.ScheduledAt.IsZero() {
		return required("scheduledAt")
	}
	if t.ActualRecoveryHours != nil && *t.ActualRecoveryHours < 0 {
		return invalid("actualRecoveryHours", "recovery time must not be negative", *t.ActualRecoveryHours)
	}
	return nil
}

type BCPTestFilter struct {
	PlanID string
	Status types.BCPTestStatus
	Type   types.BCPTestType
}

func (f BCPTestFilter) Match(t *BCPTest) bool {
	return (f.PlanID == "" || t.PlanID == f.PlanID) &&
		(f.Status == "" || t.Status == f.Status) &&
		(f.Type == "" || t.Type == f.Type)
}

// RecoveryObjectives aggregates RTO/RPO over a set of processes.
type RecoveryObjectives struct {
	Count           int     `json:"count"`
	AverageRTOHours float64 `json:"averageRtoHours"`
	AverageRPOHours float64 `json:"averageRpoHours"`
}

// AverageObjectives returns the mean RTO and RPO of processes. An empty
// input yields zero averages.
func AverageObjectives(processes []*BusinessProcess) RecoveryObjectives {
	out := RecoveryObjectives{Count: len(processes)}
	if len(processes) == 0 {
		return out
	}
	var rto, rpo float64
	for _, p := range processes {
		rto += p.RTOHours
		rpo += p.RPOHours
	}
	out.AverageRTOHours = round2(rto / float64(len(processes)))
	out.AverageRPOHours = round2(rpo / float64(len(processes)))
	return out
}

type BCPMetrics struct {
	TotalProcesses  int                                      `json:"totalProcesses"`
	Overall         RecoveryObjectives                       `json:"overall"`
	ByCriticality   map[types.Criticality]RecoveryObjectives `json:"byCriticality"`
	TotalPlans      int                                      `json:"totalPlans"`
	ActivePlans     int                                      `json:"activePlans"`
	ProcessesNoPlan []string                                 `json:"processesWithoutPlan"`
	TestsByStatus   map[types.BCPTestStatus]int              `json:"testsByStatus"`
	PassRate        float64                                  `json:"passRate"`
	UpcomingTests   int                                      `json:"upcomingTests"`
	RTOBreaches     []string                                 `json:"rtoBreaches"`
}
