package usecase

import (
	"context"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ContractExpiryWindow is the horizon for counting expiring vendor contracts.
const ContractExpiryWindow = 90 * 24 * time.Hour

type VendorUseCase struct {
	d *deps
}

func (uc *VendorUseCase) Create(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	v.ID = ""
	if v.Status == "" {
		v.Status = types.VendorStatusOnboarding
	}
	v.Rate()
	if err := v.Validate(); err != nil {
		return nil, validationError(err, types.KindVendor)
	}

	created, err := uc.d.repo.Vendor().Create(ctx, v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create vendor")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindVendor, created.ID, created.Name)
	return created, nil
}

func (uc *VendorUseCase) Get(ctx context.Context, id string) (*model.Vendor, error) {
	return getEntity(ctx, uc.d.repo.Vendor(), types.KindVendor, id)
}

// List returns matching vendors, riskiest first and by name within the same
// score.
func (uc *VendorUseCase) List(ctx context.Context, filter model.VendorFilter) ([]*model.Vendor, error) {
	return filterEntities(ctx, uc.d.repo.Vendor(), types.KindVendor, filter.Match, func(a, b *model.Vendor) bool {
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		return a.Name < b.Name
	})
}

// Update replaces the vendor. A changed risk score counts as a new
// assessment.
func (uc *VendorUseCase) Update(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	existing, err := uc.Get(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if v.RiskScore != existing.RiskScore {
		now := uc.d.now()
		v.LastAssessedAt = &now
	}
	v.Rate()
	if err := v.Validate(); err != nil {
		return nil, validationError(err, types.KindVendor)
	}

	updated, err := uc.d.repo.Vendor().Update(ctx, v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update vendor", goerr.V(IDKey, v.ID))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindVendor, updated.ID, updated.Name)
	return updated, nil
}

func (uc *VendorUseCase) Stats(ctx context.Context) (*model.VendorStats, error) {
	vendors, err := uc.List(ctx, model.VendorFilter{})
	if err != nil {
		return nil, err
	}

	now := uc.d.now()
	stats := &model.VendorStats{
		Total:    len(vendors),
		ByTier:   make(map[types.Severity]int),
		ByStatus: make(map[types.VendorStatus]int),
	}
	for _, v := range vendors {
		stats.ByTier[v.Tier]++
		stats.ByStatus[v.Status]++
		if v.Status != types.VendorStatusOffboarded && v.ContractExpiresWithin(now, ContractExpiryWindow) {
			stats.ContractsExpiringSoon++
		}
	}
	return stats, nil
}
