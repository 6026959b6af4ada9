// Package catalog holds the built-in reference data loaded from the TOML
// catalog: framework templates and maturity models.
package catalog

import (
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// TemplateControl is a control of a framework template.
type TemplateControl struct {
	Code        string
	Title       string
	Description string
	Priority    types.Severity
}

type TemplateDomain struct {
	Code        string
	Name        string
	Description string
	Controls    []TemplateControl
}

// FrameworkTemplate is a published framework (ISO 27001, SOC 2, ...) that a
// custom framework can be instantiated from.
type FrameworkTemplate struct {
	ID          types.CatalogID
	Name        string
	Version     string
	Description string
	Domains     []TemplateDomain
}

type ModelCapability struct {
	ID          types.CatalogID
	Name        string
	Description string
	TargetScore float64
}

type ModelDomain struct {
	ID           types.CatalogID
	Name         string
	Description  string
	Capabilities []ModelCapability
}

// MaturityModel is the structure an assessment is created from.
type MaturityModel struct {
	ID          types.CatalogID
	Name        string
	Description string
	Domains     []ModelDomain
}

type Catalog struct {
	Frameworks     []FrameworkTemplate
	MaturityModels []MaturityModel
}

// Framework returns the template with id, or nil.
func (c *Catalog) Framework(id types.CatalogID) *FrameworkTemplate {
	if c == nil {
		return nil
	}
	for i := range c.Frameworks {
		if c.Frameworks[i].ID == id {
			return &c.Frameworks[i]
		}
	}
	return nil
}

// MaturityModel returns the model with id, or nil.
func (c *Catalog) MaturityModel(id types.CatalogID) *MaturityModel {
	if c == nil {
		return nil
	}
	for i := range c.MaturityModels {
		if c.MaturityModels[i].ID == id {
			return &c.MaturityModels[i]
		}
	}
	return nil
}
