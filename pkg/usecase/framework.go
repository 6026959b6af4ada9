package usecase

import (
	"context"
	"fmt"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type FrameworkUseCase struct {
	d *deps
}

func assignFrameworkIDs(f *model.CustomFramework) {
	for i := range f.Domains {
		if f.Domains[i].ID == "" {
			f.Domains[i].ID = model.NewID()
		}
		for j := range f.Domains[i].Controls {
			if f.Domains[i].Controls[j].ID == "" {
				f.Domains[i].Controls[j].ID = model.NewID()
			}
		}
	}
}

// Create stores a custom framework. Domains and controls without an ID get
// one; a missing status defaults to draft.
func (uc *FrameworkUseCase) Create(ctx context.Context, f *model.CustomFramework) (*model.CustomFramework, error) {
	f.ID = ""
	if f.Status == "" {
		f.Status = types.FrameworkStatusDraft
	}
	if f.Domains == nil {
		f.Domains = []model.CustomDomain{}
	}
	assignFrameworkIDs(f)
	if err := f.Validate(); err != nil {
		return nil, validationError(err, types.KindFramework)
	}

	created, err := uc.d.repo.Framework().Create(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create framework")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindFramework, created.ID, created.Name)
	return created, nil
}

func (uc *FrameworkUseCase) Get(ctx context.Context, id string) (*model.CustomFramework, error) {
	return getEntity(ctx, uc.d.repo.Framework(), types.KindFramework, id)
}

// List returns matching frameworks ordered by name.
func (uc *FrameworkUseCase) List(ctx context.Context, filter model.FrameworkFilter) ([]*model.CustomFramework, error) {
	return filterEntities(ctx, uc.d.repo.Framework(), types.KindFramework, filter.Match, func(a, b *model.CustomFramework) bool {
		return a.Name < b.Name
	})
}

func (uc *FrameworkUseCase) save(ctx context.Context, f *model.CustomFramework, summary string) (*model.CustomFramework, error) {
	if err := f.Validate(); err != nil {
		return nil, validationError(err, types.KindFramework)
	}
	updated, err := uc.d.repo.Framework().Update(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update framework", goerr.V(IDKey, f.ID))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindFramework, updated.ID, summary)
	return updated, nil
}

func (uc *FrameworkUseCase) UpdateStatus(ctx context.Context, id string, status types.FrameworkStatus) (*model.CustomFramework, error) {
	f, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := f.Status
	f.Status = status
	return uc.save(ctx, f, fmt.Sprintf("%s (%s -> %s)", f.Name, previous, status))
}

// AddDomain appends a domain to the framework and returns the framework.
func (uc *FrameworkUseCase) AddDomain(ctx context.Context, frameworkID string, domain model.CustomDomain) (*model.CustomFramework, error) {
	f, err := uc.Get(ctx, frameworkID)
	if err != nil {
		return nil, err
	}
	domain.ID = model.NewID()
	if domain.Controls == nil {
		domain.Controls = []model.CustomControl{}
	}
	f.Domains = append(f.Domains, domain)
	assignFrameworkIDs(f)
	return uc.save(ctx, f, f.Name+": added domain "+domain.Name)
}

// AddControl appends a control to a domain. Control codes are unique
// within the framework.
func (uc *FrameworkUseCase) AddControl(ctx context.Context, frameworkID, domainID string, control model.CustomControl) (*model.CustomFramework, error) {
	f, err := uc.Get(ctx, frameworkID)
	if err != nil {
		return nil, err
	}
	domain := f.Domain(domainID)
	if domain == nil {
		return nil, goerr.Wrap(ErrNotFound, "domain not found", goerr.V(IDKey, frameworkID), goerr.V("domain_id", domainID))
	}
	control.ID = model.NewID()
	if control.Priority == "" {
		control.Priority = types.SeverityMedium
	}
	domain.Controls = append(domain.Controls, control)
	return uc.save(ctx, f, f.Name+": added control "+control.Code)
}

// CreateMapping links controls of two existing frameworks.
func (uc *FrameworkUseCase) CreateMapping(ctx context.Context, m *model.FrameworkMapping) (*model.FrameworkMapping, error) {
	m.ID = ""
	if m.Type == "" {
		m.Type = types.MappingTypeRelated
	}
	if err := m.Validate(); err != nil {
		return nil, validationError(err, types.KindMapping)
	}

	for _, side := range []struct{ framework, control string }{
		{m.SourceFrameworkID, m.SourceControlID},
		{m.TargetFrameworkID, m.TargetControlID},
	} {
		f, err := uc.Get(ctx, side.framework)
		if err != nil {
			return nil, err
		}
		if f.Control(side.control) == nil {
			return nil, goerr.Wrap(ErrNotFound, "control not found in framework",
				goerr.V(IDKey, side.framework), goerr.V("control_id", side.control))
		}
	}

	created, err := uc.d.repo.Mapping().Create(ctx, m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create framework mapping")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindMapping, created.ID,
		fmt.Sprintf("%s/%s -> %s/%s", m.SourceFrameworkID, m.SourceControlID, m.TargetFrameworkID, m.TargetControlID))
	return created, nil
}

func (uc *FrameworkUseCase) ListMappings(ctx context.Context, filter model.MappingFilter) ([]*model.FrameworkMapping, error) {
	return filterEntities(ctx, uc.d.repo.Mapping(), types.KindMapping, filter.Match, nil)
}

// Stats counts the framework's domains and controls and how many of its
// controls appear in at least one mapping.
func (uc *FrameworkUseCase) Stats(ctx context.Context, id string) (*model.FrameworkStats, error) {
	f, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mappings, err := uc.ListMappings(ctx, model.MappingFilter{FrameworkID: id})
	if err != nil {
		return nil, err
	}

	mapped := make(map[string]bool)
	for _, m := range mappings {
		if m.SourceFrameworkID == id {
			mapped[m.SourceControlID] = true
		}
		if m.TargetFrameworkID == id {
			mapped[m.TargetControlID] = true
		}
	}

	stats := &model.FrameworkStats{
		FrameworkID: id,
		Domains:     len(f.Domains),
		Controls:    f.ControlCount(),
	}
	for _, d := range f.Domains {
		for _, c := range d.Controls {
			if mapped[c.ID] {
				stats.MappedControls++
			}
		}
	}
	stats.Coverage = model.Percent(stats.MappedControls, stats.Controls)
	return stats, nil
}

// Templates returns the framework templates of the catalog.
func (uc *FrameworkUseCase) Templates() []catalog.FrameworkTemplate {
	if uc.d.catalog == nil {
		return []catalog.FrameworkTemplate{}
	}
	return uc.d.catalog.Frameworks
}

// Instantiate creates a draft framework from a catalog template. An empty
// name keeps the template name.
func (uc *FrameworkUseCase) Instantiate(ctx context.Context, templateID types.CatalogID, name string) (*model.CustomFramework, error) {
	tmpl := uc.d.catalog.Framework(templateID)
	if tmpl == nil {
		return nil, goerr.Wrap(ErrNotFound, "framework template not found", goerr.V(IDKey, templateID))
	}

	f := &model.CustomFramework{
		Name:        tmpl.Name,
		Version:     tmpl.Version,
		Description: tmpl.Description,
		Status:      types.FrameworkStatusDraft,
		TemplateID:  tmpl.ID.String(),
		Domains:     make([]model.CustomDomain, 0, len(tmpl.Domains)),
	}
	if name != "" {
		f.Name = name
	}
	for _, td := range tmpl.Domains {
		d := model.CustomDomain{
			Code:        td.Code,
			Name:        td.Name,
			Description: td.Description,
			Controls:    make([]model.CustomControl, 0, len(td.Controls)),
		}
		for _, tc := range td.Controls {
			d.Controls = append(d.Controls, model.CustomControl{
				Code:        tc.Code,
				Title:       tc.Title,
				Description: tc.Description,
				Priority:    tc.Priority,
			})
		}
		f.Domains = append(f.Domains, d)
	}
	return uc.Create(ctx, f)
}
