package types

// VendorStatus is the relationship state with a third party
type VendorStatus string

const (
	VendorStatusOnboarding  VendorStatus = "onboarding"
	VendorStatusActive      VendorStatus = "active"
	VendorStatusUnderReview VendorStatus = "under-review"
	VendorStatusOffboarded  VendorStatus = "offboarded"
)

func AllVendorStatuses() []VendorStatus {
	return []VendorStatus{
		VendorStatusOnboarding,
		VendorStatusActive,
		VendorStatusUnderReview,
		VendorStatusOffboarded,
	}
}

func (s VendorStatus) IsValid() bool  { return oneOf(s, AllVendorStatuses()) }
func (s VendorStatus) String() string { return string(s) }

func ParseVendorStatus(s string) (VendorStatus, error) {
	return parseEnum[VendorStatus]("vendor status", s)
}
