package types

// FrameworkStatus is the publication state of a custom framework
type FrameworkStatus string

const (
	FrameworkStatusDraft    FrameworkStatus = "draft"
	FrameworkStatusActive   FrameworkStatus = "active"
	FrameworkStatusArchived FrameworkStatus = "archived"
)

func AllFrameworkStatuses() []FrameworkStatus {
	return []FrameworkStatus{FrameworkStatusDraft, FrameworkStatusActive, FrameworkStatusArchived}
}

func (s FrameworkStatus) IsValid() bool  { return oneOf(s, AllFrameworkStatuses()) }
func (s FrameworkStatus) String() string { return string(s) }

func ParseFrameworkStatus(s string) (FrameworkStatus, error) {
	return parseEnum[FrameworkStatus]("framework status", s)
}

// MappingType qualifies how closely two controls from different frameworks correspond
type MappingType string

const (
	MappingTypeEquivalent MappingType = "equivalent"
	MappingTypePartial    MappingType = "partial"
	MappingTypeRelated    MappingType = "related"
)

func AllMappingTypes() []MappingType {
	return []MappingType{MappingTypeEquivalent, MappingTypePartial, MappingTypeRelated}
}

func (t MappingType) IsValid() bool  { return oneOf(t, AllMappingTypes()) }
func (t MappingType) String() string { return string(t) }

func ParseMappingType(s string) (MappingType, error) {
	return parseEnum[MappingType]("mapping type", s)
}
