package model

import (
	"net/mail"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Vendor is a third party. RiskScore is 0-100 and Tier is derived from it.
type Vendor struct {
	Meta
	Name           string             `json:"name"`
	Service        string             `json:"service"`
	Criticality    types.Criticality  `json:"criticality"`
	Status         types.VendorStatus `json:"status"`
	ContactEmail   string             `json:"contactEmail"`
	ContractEnd    *time.Time         `json:"contractEnd,omitempty"`
	RiskScore      int                `json:"riskScore"`
	Tier           types.Severity     `json:"tier"`
	LastAssessedAt *time.Time         `json:"lastAssessedAt,omitempty"`
}

// Rate derives Tier from RiskScore.
func (v *Vendor) Rate() {
	v.Tier = types.SeverityFromPercent(v.RiskScore)
}

func (v *Vendor) Validate() error {
	if v.Name == "" {
		return required("name")
	}
	if !v.Criticality.IsValid() {
		return invalid("criticality", "invalid criticality", v.Criticality)
	}
	if !v.Status.IsValid() {
		return invalid("status", "invalid vendor status", v.Status)
	}
	if v.ContactEmail != "" {
		if _, err := mail.ParseAddress(v.ContactEmail); err != nil {
			return invalid("contactEmail", "invalid email address", v.ContactEmail)
		}
	}
	return between("riskScore", v.RiskScore, 0, 100)
}

// ContractExpiresWithin reports whether the contract ends between now and now+d.
func (v *Vendor) ContractExpiresWithin(now time.Time, d time.Duration) bool {
	return v.ContractEnd != nil && !v.ContractEnd.Before(now) && v.ContractEnd.Before(now.Add(d))
}

type VendorFilter struct {
	Criticality types.Criticality
	Status      types.VendorStatus
	Tier        types.Severity
}

func (f VendorFilter) Match(v *Vendor) bool {
	return (f.Criticality == "" || v.Criticality == f.Criticality) &&
		(f.Status == "" || v.Status == f.Status) &&
		(f.Tier == "" || v.Tier == f.Tier)
}

type VendorStats struct {
	Total                 int                        `json:"total"`
	ByTier                map[types.Severity]int     `json:"byTier"`
	ByStatus              map[types.VendorStatus]int `json:"byStatus"`
	ContractsExpiringSoon int                        `json:"contractsExpiringSoon"`
}
