package usecase

import (
	"context"
	"encoding/json"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

type DashboardUseCase struct {
	d *deps

	risk       *RiskUseCase
	incident   *IncidentUseCase
	control    *ControlUseCase
	policy     *PolicyUseCase
	regulatory *RegulatoryUseCase
	bcp        *BCPUseCase
	audit      *AuditUseCase
	vendor     *VendorUseCase
}

// Get returns the aggregated dashboard, served from cache when present.
// Cache failures degrade to a fresh computation.
func (uc *DashboardUseCase) Get(ctx context.Context) (*model.Dashboard, error) {
	logger := logging.From(ctx)

	if uc.d.cache != nil {
		raw, ok, err := uc.d.cache.Get(ctx, dashboardCacheKey)
		switch {
		case err != nil:
			logger.Warn("failed to read dashboard cache", "error", err)
		case ok:
			var cached model.Dashboard
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			logger.Warn("discarding malformed dashboard cache entry")
		}
	}

	generation := uc.d.generation.Load()
	dashboard, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if uc.d.cache != nil && uc.d.generation.Load() == generation {
		raw, err := json.Marshal(dashboard)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal dashboard")
		}
		if err := uc.d.cache.Set(ctx, dashboardCacheKey, raw, uc.d.dashboardTTL); err != nil {
			logger.Warn("failed to write dashboard cache", "error", err)
		}
	}
	return dashboard, nil
}

func (uc *DashboardUseCase) compute(ctx context.Context) (*model.Dashboard, error) {
	dashboard := &model.Dashboard{GeneratedAt: uc.d.now()}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s, err := uc.risk.Stats(ctx)
		if err == nil {
			dashboard.Risks = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.incident.Stats(ctx)
		if err == nil {
			dashboard.Incidents = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.control.Stats(ctx)
		if err == nil {
			dashboard.Controls = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.policy.Stats(ctx)
		if err == nil {
			dashboard.Policies = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.regulatory.Stats(ctx)
		if err == nil {
			dashboard.Regulatory = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.bcp.Metrics(ctx, DefaultUpcomingWindow)
		if err == nil {
			dashboard.BCP = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.audit.Stats(ctx)
		if err == nil {
			dashboard.Audits = *s
		}
		return err
	})
	eg.Go(func() error {
		s, err := uc.vendor.Stats(ctx)
		if err == nil {
			dashboard.Vendors = *s
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate dashboard")
	}
	return dashboard, nil
}
