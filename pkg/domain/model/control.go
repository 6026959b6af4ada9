package model

import (
	"slices"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Control is an internal control. Effectiveness is a 0-100 percentage.
type Control struct {
	Meta
	Code          string              `json:"code"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Type          types.ControlType   `json:"type"`
	Status        types.ControlStatus `json:"status"`
	Effectiveness int                 `json:"effectiveness"`
	Owner         string              `json:"owner"`
	Frameworks    []string            `json:"frameworks"`
	LastTestedAt  *time.Time          `json:"lastTestedAt,omitempty"`
}

func (c *Control) Validate() error {
	if c.Code == "" {
		return required("code")
	}
	if c.Title == "" {
		return required("title")
	}
	if !c.Type.IsValid() {
		return invalid("type", "invalid control type", c.Type)
	}
	if !c.Status.IsValid() {
		return invalid("status", "invalid control status", c.Status)
	}
	return between("effectiveness", c.Effectiveness, 0, 100)
}

type ControlFilter struct {
	Type      types.ControlType
	Status    types.ControlStatus
	Owner     string
	Framework string
}

func (f ControlFilter) Match(c *Control) bool {
	return (f.Type == "" || c.Type == f.Type) &&
		(f.Status == "" || c.Status == f.Status) &&
		(f.Owner == "" || c.Owner == f.Owner) &&
		(f.Framework == "" || slices.Contains(c.Frameworks, f.Framework))
}

type ControlStats struct {
	Total                int                         `json:"total"`
	ByStatus             map[types.ControlStatus]int `json:"byStatus"`
	ByType               map[types.ControlType]int   `json:"byType"`
	ImplementationRate   float64                     `json:"implementationRate"`
	AverageEffectiveness float64                     `json:"averageEffectiveness"`
}
