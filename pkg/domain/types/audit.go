package types

// AuditType classifies an audit engagement
type AuditType string

const (
	AuditTypeInternal      AuditType = "internal"
	AuditTypeExternal      AuditType = "external"
	AuditTypeRegulatory    AuditType = "regulatory"
	AuditTypeCertification AuditType = "certification"
)

func AllAuditTypes() []AuditType {
	return []AuditType{AuditTypeInternal, AuditTypeExternal, AuditTypeRegulatory, AuditTypeCertification}
}

func (t AuditType) IsValid() bool  { return oneOf(t, AllAuditTypes()) }
func (t AuditType) String() string { return string(t) }

func ParseAuditType(s string) (AuditType, error) {
	return parseEnum[AuditType]("audit type", s)
}

// AuditStatus is the phase of an audit engagement
type AuditStatus string

const (
	AuditStatusPlanned   AuditStatus = "planned"
	AuditStatusFieldwork AuditStatus = "fieldwork"
	AuditStatusReporting AuditStatus = "reporting"
	AuditStatusCompleted AuditStatus = "completed"
	AuditStatusCancelled AuditStatus = "cancelled"
)

func AllAuditStatuses() []AuditStatus {
	return []AuditStatus{
		AuditStatusPlanned,
		AuditStatusFieldwork,
		AuditStatusReporting,
		AuditStatusCompleted,
		AuditStatusCancelled,
	}
}

func (s AuditStatus) IsValid() bool  { return oneOf(s, AllAuditStatuses()) }
func (s AuditStatus) String() string { return string(s) }

func ParseAuditStatus(s string) (AuditStatus, error) {
	return parseEnum[AuditStatus]("audit status", s)
}

// FindingStatus tracks remediation of an audit finding
type FindingStatus string

const (
	FindingStatusOpen        FindingStatus = "open"
	FindingStatusRemediating FindingStatus = "remediating"
	FindingStatusClosed      FindingStatus = "closed"
)

func AllFindingStatuses() []FindingStatus {
	return []FindingStatus{FindingStatusOpen, FindingStatusRemediating, FindingStatusClosed}
}

func (s FindingStatus) IsValid() bool  { return oneOf(s, AllFindingStatuses()) }
func (s FindingStatus) String() string { return string(s) }

func ParseFindingStatus(s string) (FindingStatus, error) {
	return parseEnum[FindingStatus]("finding status", s)
}
