package model

import (
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// CustomControl is a requirement inside a domain of a custom framework.
type CustomControl struct {
	ID          string         `json:"id"`
	Code        string         `json:"code"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    types.Severity `json:"priority"`
}

// CustomDomain groups controls of a custom framework.
type CustomDomain struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Controls    []CustomControl `json:"controls"`
}

// CustomFramework is an organisation defined control framework
// (framework -> domain -> control).
type CustomFramework struct {
	Meta
	Name        string                `json:"name"`
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Status      types.FrameworkStatus `json:"status"`
	TemplateID  string                `json:"templateId,omitempty"`
	Domains     []CustomDomain        `json:"domains"`
}

func (f *CustomFramework) Validate() error {
	if f.Name == "" {
		return required("name")
	}
	if !f.Status.IsValid() {
		return invalid("status", "invalid framework status", f.Status)
	}
	codes := make(map[string]bool)
	for _, d := range f.Domains {
		if d.Name == "" {
			return required("domains.name")
		}
		for _, c := range d.Controls {
			if c.Code == "" {
				return required("controls.code")
			}
			if codes[c.Code] {
				return invalid("controls.code", "duplicate control code", c.Code)
			}
			codes[c.Code] = true
			if c.Priority != "" && !c.Priority.IsValid() {
				return invalid("controls.priority", "invalid priority", c.Priority)
			}
		}
	}
	return nil
}

// Domain returns the domain with id, or nil.
func (f *CustomFramework) Domain(id string) *CustomDomain {
	for i := range f.Domains {
		if f.Domains[i].ID == id {
			return &f.Domains[i]
		}
	}
	return nil
}

// Control returns the control with id, or nil.
func (f *CustomFramework) Control(id string) *CustomControl {
	for i := range f.Domains {
		for j := range f.Domains[i].Controls {
			if f.Domains[i].Controls[j].ID == id {
				return &f.Domains[i].Controls[j]
			}
		}
	}
	return nil
}

// ControlCount returns the number of controls across all domains.
func (f *CustomFramework) ControlCount() int {
	n := 0
	for _, d := range f.Domains {
		n += len(d.Controls)
	}
	return n
}

type FrameworkFilter struct {
	Status types.FrameworkStatus
}

func (x FrameworkFilter) Match(f *CustomFramework) bool {
	return x.Status == "" || f.Status == x.Status
}

// FrameworkMapping links a control of one framework to a control of another.
type FrameworkMapping struct {
	Meta
	SourceFrameworkID string            `json:"sourceFrameworkId"`
	SourceControlID   string            `json:"sourceControlId"`
	TargetFrameworkID string            `json:"targetFrameworkId"`
	TargetControlID   string            `json:"targetControlId"`
	Type              types.MappingType `json:"type"`
	Notes             string            `json:"notes"`
}

func (m *FrameworkMapping) Validate() error {
	if m.SourceFrameworkID == "" || m.SourceControlID == "" {
		return required("source")
	}
	if m.TargetFrameworkID == "" || m.TargetControlID == "" {
		return required("target")
	}
	if m.SourceFrameworkID == m.TargetFrameworkID {
		return invalid("targetFrameworkId", "mapping must link two different frameworks", m.TargetFrameworkID)
	}
	if !m.Type.IsValid() {
		return invalid("type", "invalid mapping type", m.Type)
	}
	return nil
}

// MappingFilter matches mappings touching FrameworkID or ControlID on either side.
type MappingFilter struct {
	FrameworkID string
	ControlID   string
	Type        types.MappingType
}

func (f MappingFilter) Match(m *FrameworkMapping) bool {
	return (f.FrameworkID == "" || m.SourceFrameworkID == f.FrameworkID || m.TargetFrameworkID == f.FrameworkID) &&
		(f.ControlID == "" || m.SourceControlID == f.ControlID || m.TargetControlID == f.ControlID) &&
		(f.Type == "" || m.Type == f.Type)
}

type FrameworkStats struct {
	FrameworkID    string  `json:"frameworkId"`
	Domains        int     `json:"domains"`
	Controls       int     `json:"controls"`
	MappedControls int     `json:"mappedControls"`
	Coverage       float64 `json:"coverage"`
}
