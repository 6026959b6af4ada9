package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/catalog"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

// CatalogFile is the TOML document holding framework templates and
// maturity models.
type CatalogFile struct {
	Frameworks     []FrameworkTemplate `toml:"framework"`
	MaturityModels []MaturityModel     `toml:"maturity_model"`
}

type FrameworkTemplate struct {
	ID          string           `toml:"id"`
	Name        string           `toml:"name"`
	Version     string           `toml:"version"`
	Description string           `toml:"description"`
	Domains     []TemplateDomain `toml:"domain"`
}

type TemplateDomain struct {
	Code        string            `toml:"code"`
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Controls    []TemplateControl `toml:"control"`
}

type TemplateControl struct {
	Code        string `toml:"code"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Priority    string `toml:"priority"`
}

type MaturityModel struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Domains     []ModelDomain `toml:"domain"`
}

type ModelDomain struct {
	ID           string            `toml:"id"`
	Name         string            `toml:"name"`
	Description  string            `toml:"description"`
	Capabilities []ModelCapability `toml:"capability"`
}

type ModelCapability struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	TargetScore float64 `toml:"target_score"`
}

func checkID(id string) error {
	if err := types.CatalogID(id).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(EntryIDKey, id))
	}
	return nil
}

// Validate checks if the FrameworkTemplate is valid
func (f *FrameworkTemplate) Validate() error {
	if err := checkID(f.ID); err != nil {
		return err
	}
	if f.Name == "" {
		return goerr.Wrap(ErrMissingName, "framework name is required", goerr.V(EntryIDKey, f.ID))
	}
	if len(f.Domains) == 0 {
		return goerr.Wrap(ErrEmptyTemplate, "framework has no domains", goerr.V(EntryIDKey, f.ID))
	}

	codes := make(map[string]bool)
	for _, d := range f.Domains {
		if d.Code == "" || d.Name == "" {
			return goerr.Wrap(ErrMissingName, "domain code and name are required", goerr.V(EntryIDKey, f.ID), goerr.V(DomainIDKey, d.Code))
		}
		if codes[d.Code] {
			return goerr.Wrap(ErrDuplicateID, "duplicate domain code", goerr.V(EntryIDKey, f.ID), goerr.V(DomainIDKey, d.Code))
		}
		codes[d.Code] = true

		for _, c := range d.Controls {
			if c.Code == "" || c.Title == "" {
				return goerr.Wrap(ErrMissingName, "control code and title are required", goerr.V(EntryIDKey, f.ID), goerr.V(ControlCodeKey, c.Code))
			}
			if codes[c.Code] {
				return goerr.Wrap(ErrDuplicateID, "duplicate control code", goerr.V(EntryIDKey, f.ID), goerr.V(ControlCodeKey, c.Code))
			}
			codes[c.Code] = true

			if c.Priority != "" && !types.Severity(c.Priority).IsValid() {
				return goerr.Wrap(ErrInvalidPriority, "invalid control priority", goerr.V(ControlCodeKey, c.Code), goerr.V("priority", c.Priority))
			}
		}
	}
	return nil
}

// Validate checks if the MaturityModel is valid
func (m *MaturityModel) Validate() error {
	if err := checkID(m.ID); err != nil {
		return err
	}
	if m.Name == "" {
		return goerr.Wrap(ErrMissingName, "maturity model name is required", goerr.V(EntryIDKey, m.ID))
	}
	if len(m.Domains) == 0 {
		return goerr.Wrap(ErrEmptyTemplate, "maturity model has no domains", goerr.V(EntryIDKey, m.ID))
	}

	ids := make(map[string]bool)
	for _, d := range m.Domains {
		if err := checkID(d.ID); err != nil {
			return err
		}
		if d.Name == "" {
			return goerr.Wrap(ErrMissingName, "domain name is required", goerr.V(DomainIDKey, d.ID))
		}
		if ids[d.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate domain ID", goerr.V(EntryIDKey, m.ID), goerr.V(DomainIDKey, d.ID))
		}
		ids[d.ID] = true

		for _, c := range d.Capabilities {
			if err := checkID(c.ID); err != nil {
				return err
			}
			if c.Name == "" {
				return goerr.Wrap(ErrMissingName, "capability name is required", goerr.V(EntryIDKey, c.ID))
			}
			if ids[c.ID] {
				return goerr.Wrap(ErrDuplicateID, "duplicate capability ID", goerr.V(EntryIDKey, m.ID), goerr.V(EntryIDKey, c.ID))
			}
			ids[c.ID] = true

			if c.TargetScore < 1 || c.TargetScore > 5 {
				return goerr.Wrap(ErrInvalidScore, "invalid target score", goerr.V(EntryIDKey, c.ID), goerr.V(ScoreKey, c.TargetScore))
			}
		}
	}
	return nil
}

// Validate checks entries and that IDs are unique across the file.
func (c *CatalogFile) Validate() error {
	seen := make(map[string]bool)
	for _, f := range c.Frameworks {
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid framework template")
		}
		if seen[f.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate framework ID", goerr.V(EntryIDKey, f.ID))
		}
		seen[f.ID] = true
	}
	for _, m := range c.MaturityModels {
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid maturity model")
		}
		if seen[m.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate maturity model ID", goerr.V(EntryIDKey, m.ID))
		}
		seen[m.ID] = true
	}
	return nil
}

func parseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML catalog", goerr.V("cause", err.Error()))
	}
	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed")
	}
	return &file, nil
}

// LoadCatalog loads the catalog from a TOML file
func LoadCatalog(path string) (*CatalogFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "catalog file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	file, err := parseCatalog(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V(ConfigPathKey, path))
	}
	return file, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*CatalogFile, error) {
	return parseCatalog(defaultCatalog)
}

// ToDomain converts the file to the domain catalog
func (c *CatalogFile) ToDomain() *catalog.Catalog {
	result := &catalog.Catalog{
		Frameworks:     make([]catalog.FrameworkTemplate, len(c.Frameworks)),
		MaturityModels: make([]catalog.MaturityModel, len(c.MaturityModels)),
	}

	for i, f := range c.Frameworks {
		tmpl := catalog.FrameworkTemplate{
			ID:          types.CatalogID(f.ID),
			Name:        f.Name,
			Version:     f.Version,
			Description: f.Description,
			Domains:     make([]catalog.TemplateDomain, len(f.Domains)),
		}
		for j, d := range f.Domains {
			domain := catalog.TemplateDomain{
				Code:        d.Code,
				Name:        d.Name,
				Description: d.Description,
				Controls:    make([]catalog.TemplateControl, len(d.Controls)),
			}
			for k, ctrl := range d.Controls {
				priority := types.Severity(ctrl.Priority)
				if priority == "" {
					priority = types.SeverityMedium
				}
				domain.Controls[k] = catalog.TemplateControl{
					Code:        ctrl.Code,
					Title:       ctrl.Title,
					Description: ctrl.Description,
					Priority:    priority,
				}
			}
			tmpl.Domains[j] = domain
		}
		result.Frameworks[i] = tmpl
	}

	for i, m := range c.MaturityModels {
		mm := catalog.MaturityModel{
			ID:          types.CatalogID(m.ID),
			Name:        m.Name,
			Description: m.Description,
			Domains:     make([]catalog.ModelDomain, len(m.Domains)),
		}
		for j, d := range m.Domains {
			domain := catalog.ModelDomain{
				ID:           types.CatalogID(d.ID),
				Name:         d.Name,
				Description:  d.Description,
				Capabilities: make([]catalog.ModelCapability, len(d.Capabilities)),
			}
			for k, cp := range d.Capabilities {
				domain.Capabilities[k] = catalog.ModelCapability{
					ID:          types.CatalogID(cp.ID),
					Name:        cp.Name,
					Description: cp.Description,
					TargetScore: cp.TargetScore,
				}
			}
			mm.Domains[j] = domain
		}
		result.MaturityModels[i] = mm
	}

	return result
}

// Catalog holds the CLI flag selecting the catalog file.
type Catalog struct {
	path string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the TOML catalog of framework templates and maturity models (built-in catalog when empty)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("GRC_CATALOG"),
			Destination: &x.path,
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Load reads the configured catalog file, or the built-in one when no path
// is set.
func (x *Catalog) Load() (*CatalogFile, error) {
	if x.path == "" {
		return DefaultCatalog()
	}
	return LoadCatalog(x.path)
}

// Configure loads the catalog and converts it for the use cases.
func (x *Catalog) Configure() (*catalog.Catalog, error) {
	file, err := x.Load()
	if err != nil {
		return nil, err
	}
	return file.ToDomain(), nil
}
