package types

// PolicyStatus represents the approval workflow of a policy document
type PolicyStatus string

const (
	PolicyStatusDraft       PolicyStatus = "draft"
	PolicyStatusUnderReview PolicyStatus = "under-review"
	PolicyStatusApproved    PolicyStatus = "approved"
	PolicyStatusPublished   PolicyStatus = "published"
	PolicyStatusRetired     PolicyStatus = "retired"
)

func AllPolicyStatuses() []PolicyStatus {
	return []PolicyStatus{
		PolicyStatusDraft,
		PolicyStatusUnderReview,
		PolicyStatusApproved,
		PolicyStatusPublished,
		PolicyStatusRetired,
	}
}

func (s PolicyStatus) IsValid() bool  { return oneOf(s, AllPolicyStatuses()) }
func (s PolicyStatus) String() string { return string(s) }

func ParsePolicyStatus(s string) (PolicyStatus, error) {
	return parseEnum[PolicyStatus]("policy status", s)
}
