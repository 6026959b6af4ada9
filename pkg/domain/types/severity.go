package types

// Severity is the shared four level rating used by risks, incidents,
// regulatory changes, audit findings and vendor tiers.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AllSeverities returns all severities from lowest to highest
func AllSeverities() []Severity {
	return []Severity{
		SeverityLow,
		SeverityMedium,
		SeverityHigh,
		SeverityCritical,
	}
}

// IsValid checks if the severity is one of the defined values
func (s Severity) IsValid() bool {
	return oneOf(s, AllSeverities())
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// Rank orders severities from 1 (low) to 4 (critical). Invalid values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// ParseSeverity parses a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	return parseEnum[Severity]("severity", s)
}

// SeverityFromRiskScore buckets a likelihood x impact score (1-25).
func SeverityFromRiskScore(score int) Severity {
	switch {
	case score >= 20:
		return SeverityCritical
	case score >= 12:
		return SeverityHigh
	case score >= 6:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SeverityFromPercent buckets a 0-100 score, such as a vendor risk score.
func SeverityFromPercent(score int) Severity {
	switch {
	case score >= 75:
		return SeverityCritical
	case score >= 50:
		return SeverityHigh
	case score >= 25:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
