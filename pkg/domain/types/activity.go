package types

// ActivityAction is the verb recorded in the activity trail
type ActivityAction string

const (
	ActivityCreate      ActivityAction = "create"
	ActivityUpdate      ActivityAction = "update"
	ActivityDelete      ActivityAction = "delete"
	ActivityUpload      ActivityAction = "upload"
	ActivityNotify      ActivityAction = "notify"
	ActivityLogin       ActivityAction = "login"
	ActivityAcknowledge ActivityAction = "acknowledge"
)

func (a ActivityAction) String() string { return string(a) }

// ResourceKind names a stored entity type. It is used in the activity trail,
// the search index and repository table names.
type ResourceKind string

const (
	KindRisk             ResourceKind = "risk"
	KindIncident         ResourceKind = "incident"
	KindControl          ResourceKind = "control"
	KindPolicy           ResourceKind = "policy"
	KindDocument         ResourceKind = "document"
	KindProcess          ResourceKind = "process"
	KindRecoveryPlan     ResourceKind = "recovery-plan"
	KindBCPTest          ResourceKind = "bcp-test"
	KindFramework        ResourceKind = "framework"
	KindMapping          ResourceKind = "mapping"
	KindAssessment       ResourceKind = "assessment"
	KindRegulatoryChange ResourceKind = "regulatory-change"
	KindFrameworkUpdate  ResourceKind = "framework-update"
	KindAlert            ResourceKind = "alert"
	KindAudit            ResourceKind = "audit"
	KindVendor           ResourceKind = "vendor"
	KindUser             ResourceKind = "user"
	KindToken            ResourceKind = "token"
)

// SearchableKinds are the kinds indexed for full text search.
func SearchableKinds() []ResourceKind {
	return []ResourceKind{KindRisk, KindIncident, KindControl, KindPolicy, KindDocument}
}

func (k ResourceKind) String() string { return string(k) }

func (k ResourceKind) IsSearchable() bool { return oneOf(k, SearchableKinds()) }
