package model

import "time"

// Dashboard is the aggregated overview served to the home page.
type Dashboard struct {
	Risks       RiskStats       `json:"risks"`
	Incidents   IncidentStats   `json:"incidents"`
	Controls    ControlStats    `json:"controls"`
	Policies    PolicyStats     `json:"policies"`
	Regulatory  RegulatoryStats `json:"regulatory"`
	BCP         BCPMetrics      `json:"bcp"`
	Audits      AuditStats      `json:"audits"`
	Vendors     VendorStats     `json:"vendors"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
