package types

// RiskCategory classifies a risk register entry
type RiskCategory string

const (
	RiskCategoryOperational  RiskCategory = "operational"
	RiskCategoryFinancial    RiskCategory = "financial"
	RiskCategoryStrategic    RiskCategory = "strategic"
	RiskCategoryCompliance   RiskCategory = "compliance"
	RiskCategoryTechnology   RiskCategory = "technology"
	RiskCategorySecurity     RiskCategory = "security"
	RiskCategoryReputational RiskCategory = "reputational"
)

func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryOperational,
		RiskCategoryFinancial,
		RiskCategoryStrategic,
		RiskCategoryCompliance,
		RiskCategoryTechnology,
		RiskCategorySecurity,
		RiskCategoryReputational,
	}
}

func (c RiskCategory) IsValid() bool  { return oneOf(c, AllRiskCategories()) }
func (c RiskCategory) String() string { return string(c) }

func ParseRiskCategory(s string) (RiskCategory, error) {
	return parseEnum[RiskCategory]("risk category", s)
}

// RiskStatus tracks a risk through treatment
type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusAssessed   RiskStatus = "assessed"
	RiskStatusMitigating RiskStatus = "mitigating"
	RiskStatusAccepted   RiskStatus = "accepted"
	RiskStatusClosed     RiskStatus = "closed"
)

func AllRiskStatuses() []RiskStatus {
	return []RiskStatus{
		RiskStatusIdentified,
		RiskStatusAssessed,
		RiskStatusMitigating,
		RiskStatusAccepted,
		RiskStatusClosed,
	}
}

func (s RiskStatus) IsValid() bool  { return oneOf(s, AllRiskStatuses()) }
func (s RiskStatus) String() string { return string(s) }

func ParseRiskStatus(s string) (RiskStatus, error) {
	return parseEnum[RiskStatus]("risk status", s)
}
