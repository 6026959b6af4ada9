package types

// AssessmentStatus tracks a maturity assessment
type AssessmentStatus string

const (
	AssessmentStatusDraft      AssessmentStatus = "draft"
	AssessmentStatusInProgress AssessmentStatus = "in-progress"
	AssessmentStatusCompleted  AssessmentStatus = "completed"
)

func AllAssessmentStatuses() []AssessmentStatus {
	return []AssessmentStatus{AssessmentStatusDraft, AssessmentStatusInProgress, AssessmentStatusCompleted}
}

func (s AssessmentStatus) IsValid() bool  { return oneOf(s, AllAssessmentStatuses()) }
func (s AssessmentStatus) String() string { return string(s) }

func ParseAssessmentStatus(s string) (AssessmentStatus, error) {
	return parseEnum[AssessmentStatus]("assessment status", s)
}

// MaturityLevel is the CMMI style level 1 (Initial) to 5 (Optimizing)
type MaturityLevel int

const (
	MaturityLevelInitial               MaturityLevel = 1
	MaturityLevelManaged               MaturityLevel = 2
	MaturityLevelDefined               MaturityLevel = 3
	MaturityLevelQuantitativelyManaged MaturityLevel = 4
	MaturityLevelOptimizing            MaturityLevel = 5
)

// Capability scores are on a 1-5 scale.
const (
	MinMaturityScore float64 = 1
	MaxMaturityScore float64 = 5
)

// MaturityLevelFromScore buckets an average capability score.
func MaturityLevelFromScore(score float64) MaturityLevel {
	switch {
	case score >= 4.5:
		return MaturityLevelOptimizing
	case score >= 3.5:
		return MaturityLevelQuantitativelyManaged
	case score >= 2.5:
		return MaturityLevelDefined
	case score >= 1.5:
		return MaturityLevelManaged
	default:
		return MaturityLevelInitial
	}
}

// Name returns the human readable level name
func (l MaturityLevel) Name() string {
	switch l {
	case MaturityLevelInitial:
		return "Initial"
	case MaturityLevelManaged:
		return "Managed"
	case MaturityLevelDefined:
		return "Defined"
	case MaturityLevelQuantitativelyManaged:
		return "Quantitatively Managed"
	case MaturityLevelOptimizing:
		return "Optimizing"
	default:
		return "Unknown"
	}
}

func (l MaturityLevel) IsValid() bool {
	return l >= MaturityLevelInitial && l <= MaturityLevelOptimizing
}
