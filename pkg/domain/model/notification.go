package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Notification is an event sent to external integrations.
type Notification struct {
	Title      string             `json:"title" validate:"required"`
	Message    string             `json:"message" validate:"required"`
	Severity   types.Severity     `json:"severity" validate:"required"`
	Kind       types.ResourceKind `json:"kind,omitempty"`
	ResourceID string             `json:"resourceId,omitempty"`
	Link       string             `json:"link,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}

// DeliveryResult reports the outcome of one integration.
type DeliveryResult struct {
	Integration string `json:"integration"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// IntegrationStatus describes whether an integration is configured.
type IntegrationStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}
