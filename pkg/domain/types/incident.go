package types

// IncidentStatus represents the lifecycle of an incident
type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "open"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusContained     IncidentStatus = "contained"
	IncidentStatusResolved      IncidentStatus = "resolved"
	IncidentStatusClosed        IncidentStatus = "closed"
)

func AllIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{
		IncidentStatusOpen,
		IncidentStatusInvestigating,
		IncidentStatusContained,
		IncidentStatusResolved,
		IncidentStatusClosed,
	}
}

func (s IncidentStatus) IsValid() bool  { return oneOf(s, AllIncidentStatuses()) }
func (s IncidentStatus) String() string { return string(s) }

// IsResolved is true once the incident no longer needs active handling.
func (s IncidentStatus) IsResolved() bool {
	return s == IncidentStatusResolved || s == IncidentStatusClosed
}

func ParseIncidentStatus(s string) (IncidentStatus, error) {
	return parseEnum[IncidentStatus]("incident status", s)
}

// IncidentCategory classifies an incident
type IncidentCategory string

const (
	IncidentCategorySecurity    IncidentCategory = "security"
	IncidentCategoryPrivacy     IncidentCategory = "privacy"
	IncidentCategoryOperational IncidentCategory = "operational"
	IncidentCategoryCompliance  IncidentCategory = "compliance"
	IncidentCategoryThirdParty  IncidentCategory = "third-party"
)

func AllIncidentCategories() []IncidentCategory {
	return []IncidentCategory{
		IncidentCategorySecurity,
		IncidentCategoryPrivacy,
		IncidentCategoryOperational,
		IncidentCategoryCompliance,
		IncidentCategoryThirdParty,
	}
}

func (c IncidentCategory) IsValid() bool  { return oneOf(c, AllIncidentCategories()) }
func (c IncidentCategory) String() string { return string(c) }

func ParseIncidentCategory(s string) (IncidentCategory, error) {
	return parseEnum[IncidentCategory]("incident category", s)
}
