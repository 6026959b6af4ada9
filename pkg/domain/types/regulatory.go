package types

// ChangeStatus tracks the organisation's response to a regulatory change
type ChangeStatus string

const (
	ChangeStatusNew           ChangeStatus = "new"
	ChangeStatusUnderReview   ChangeStatus = "under-review"
	ChangeStatusAssessed      ChangeStatus = "assessed"
	ChangeStatusImplementing  ChangeStatus = "implementing"
	ChangeStatusImplemented   ChangeStatus = "implemented"
	ChangeStatusNotApplicable ChangeStatus = "not-applicable"
)

func AllChangeStatuses() []ChangeStatus {
	return []ChangeStatus{
		ChangeStatusNew,
		ChangeStatusUnderReview,
		ChangeStatusAssessed,
		ChangeStatusImplementing,
		ChangeStatusImplemented,
		ChangeStatusNotApplicable,
	}
}

func (s ChangeStatus) IsValid() bool  { return oneOf(s, AllChangeStatuses()) }
func (s ChangeStatus) String() string { return string(s) }

// IsOpen is true while the change still requires work.
func (s ChangeStatus) IsOpen() bool {
	return s != ChangeStatusImplemented && s != ChangeStatusNotApplicable
}

func ParseChangeStatus(s string) (ChangeStatus, error) {
	return parseEnum[ChangeStatus]("change status", s)
}

// UpdateStatus tracks adoption of a new framework version
type UpdateStatus string

const (
	UpdateStatusPending    UpdateStatus = "pending"
	UpdateStatusInProgress UpdateStatus = "in-progress"
	UpdateStatusAdopted    UpdateStatus = "adopted"
)

func AllUpdateStatuses() []UpdateStatus {
	return []UpdateStatus{UpdateStatusPending, UpdateStatusInProgress, UpdateStatusAdopted}
}

func (s UpdateStatus) IsValid() bool  { return oneOf(s, AllUpdateStatuses()) }
func (s UpdateStatus) String() string { return string(s) }

func ParseUpdateStatus(s string) (UpdateStatus, error) {
	return parseEnum[UpdateStatus]("framework update status", s)
}

// AlertReason explains why a compliance alert was raised
type AlertReason string

const (
	AlertReasonHighImpact    AlertReason = "high-impact"
	AlertReasonEffectiveSoon AlertReason = "effective-soon"
)

func (r AlertReason) String() string { return string(r) }
