package usecase

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
)

// DefaultDashboardTTL is how long an aggregated dashboard is served from cache.
const DefaultDashboardTTL = time.Minute

type UseCases struct {
	deps *deps

	Risk       *RiskUseCase
	Incident   *IncidentUseCase
	Control    *ControlUseCase
	Policy     *PolicyUseCase
	Document   *DocumentUseCase
	BCP        *BCPUseCase
	Framework  *FrameworkUseCase
	Maturity   *MaturityUseCase
	Regulatory *RegulatoryUseCase
	Audit      *AuditUseCase
	Vendor     *VendorUseCase
	Dashboard  *DashboardUseCase
	Search     *SearchUseCase
	Notify     *NotifyUseCase
	Activity   *ActivityUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

func WithActivityLog(log interfaces.ActivityLog) Option {
	return func(uc *UseCases) {
		uc.deps.activity = log
	}
}

func WithCache(cache interfaces.Cache) Option {
	return func(uc *UseCases) {
		uc.deps.cache = cache
	}
}

func WithSearchIndex(index interfaces.SearchIndex) Option {
	return func(uc *UseCases) {
		uc.deps.search = index
	}
}

func WithBlobStore(store interfaces.BlobStore) Option {
	return func(uc *UseCases) {
		uc.deps.blob = store
	}
}

// WithNotifiers sets the integrations notifications fan out to.
func WithNotifiers(notifiers ...interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.deps.notifiers = append(uc.deps.notifiers, notifiers...)
	}
}

func WithCatalog(c *catalog.Catalog) Option {
	return func(uc *UseCases) {
		uc.deps.catalog = c
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.deps.clock = now
	}
}

func WithDashboardTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.deps.dashboardTTL = ttl
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		deps: &deps{
			repo:         repo,
			clock:        time.Now,
			dashboardTTL: DefaultDashboardTTL,
		},
	}

	for _, opt := range opts {
		opt(uc)
	}

	d := uc.deps
	uc.Notify = &NotifyUseCase{d: d}
	uc.Risk = &RiskUseCase{d: d}
	uc.Incident = &IncidentUseCase{d: d, notify: uc.Notify}
	uc.Control = &ControlUseCase{d: d}
	uc.Policy = &PolicyUseCase{d: d}
	uc.Document = &DocumentUseCase{d: d}
	uc.BCP = &BCPUseCase{d: d}
	uc.Framework = &FrameworkUseCase{d: d}
	uc.Maturity = &MaturityUseCase{d: d}
	uc.Regulatory = &RegulatoryUseCase{d: d, notify: uc.Notify}
	uc.Audit = &AuditUseCase{d: d}
	uc.Vendor = &VendorUseCase{d: d}
	uc.Search = &SearchUseCase{d: d}
	uc.Activity = &ActivityUseCase{d: d}
	uc.Dashboard = &DashboardUseCase{
		d:          d,
		risk:       uc.Risk,
		incident:   uc.Incident,
		control:    uc.Control,
		policy:     uc.Policy,
		regulatory: uc.Regulatory,
		bcp:        uc.BCP,
		audit:      uc.Audit,
		vendor:     uc.Vendor,
	}

	if uc.Auth == nil {
		uc.Auth = NewNoAuthnUseCase()
	}

	return uc
}
