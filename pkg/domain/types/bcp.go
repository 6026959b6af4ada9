package types

// Criticality ranks how important a business process is to operations
type Criticality string

const (
	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
)

func AllCriticalities() []Criticality {
	return []Criticality{CriticalityCritical, CriticalityHigh, CriticalityMedium, CriticalityLow}
}

func (c Criticality) IsValid() bool  { return oneOf(c, AllCriticalities()) }
func (c Criticality) String() string { return string(c) }

func ParseCriticality(s string) (Criticality, error) {
	return parseEnum[Criticality]("criticality", s)
}

// PlanStatus is the approval state of a recovery plan
type PlanStatus string

const (
	PlanStatusDraft    PlanStatus = "draft"
	PlanStatusApproved PlanStatus = "approved"
	PlanStatusActive   PlanStatus = "active"
	PlanStatusRetired  PlanStatus = "retired"
)

func AllPlanStatuses() []PlanStatus {
	return []PlanStatus{PlanStatusDraft, PlanStatusApproved, PlanStatusActive, PlanStatusRetired}
}

func (s PlanStatus) IsValid() bool  { return oneOf(s, AllPlanStatuses()) }
func (s PlanStatus) String() string { return string(s) }

func ParsePlanStatus(s string) (PlanStatus, error) {
	return parseEnum[PlanStatus]("plan status", s)
}

// BCPTestType is the exercise format of a continuity test
type BCPTestType string

const (
	BCPTestTypeTabletop         BCPTestType = "tabletop"
	BCPTestTypeWalkthrough      BCPTestType = "walkthrough"
	BCPTestTypeSimulation       BCPTestType = "simulation"
	BCPTestTypeFullInterruption BCPTestType = "full-interruption"
)

func AllBCPTestTypes() []BCPTestType {
	return []BCPTestType{
		BCPTestTypeTabletop,
		BCPTestTypeWalkthrough,
		BCPTestTypeSimulation,
		BCPTestTypeFullInterruption,
	}
}

func (t BCPTestType) IsValid() bool  { return oneOf(t, AllBCPTestTypes()) }
func (t BCPTestType) String() string { return string(t) }

func ParseBCPTestType(s string) (BCPTestType, error) {
	return parseEnum[BCPTestType]("bcp test type", s)
}

// BCPTestStatus tracks a scheduled continuity test
type BCPTestStatus string

const (
	BCPTestStatusScheduled  BCPTestStatus = "scheduled"
	BCPTestStatusInProgress BCPTestStatus = "in-progress"
	BCPTestStatusCompleted  BCPTestStatus = "completed"
	BCPTestStatusFailed     BCPTestStatus = "failed"
	BCPTestStatusCancelled  BCPTestStatus = "cancelled"
)

func AllBCPTestStatuses() []BCPTestStatus {
	return []BCPTestStatus{
		BCPTestStatusScheduled,
		BCPTestStatusInProgress,
		BCPTestStatusCompleted,
		BCPTestStatusFailed,
		BCPTestStatusCancelled,
	}
}

func (s BCPTestStatus) IsValid() bool  { return oneOf(s, AllBCPTestStatuses()) }
func (s BCPTestStatus) String() string { return string(s) }

// IsFinished is true for tests that produced a result.
func (s BCPTestStatus) IsFinished() bool {
	return s == BCPTestStatusCompleted || s == BCPTestStatusFailed
}

func ParseBCPTestStatus(s string) (BCPTestStatus, error) {
	return parseEnum[BCPTestStatus]("bcp test status", s)
}
