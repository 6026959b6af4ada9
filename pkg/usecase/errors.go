package usecase

import (
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer
var (
	// ErrNotFound is shared with the repositories so that a missing record
	// is recognised regardless of the backend.
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
	ErrValidation    = model.ErrValidation

	ErrConflict            = goerr.New("conflict")
	ErrUnauthorized        = goerr.New("unauthorized")
	ErrForbidden           = goerr.New("forbidden")
	ErrIntegrationDisabled = goerr.New("integration is not configured")
)

// Context keys for error values
const (
	IDKey          = "id"
	KindKey        = "kind"
	EmailKey       = "email"
	IntegrationKey = "integration"
)
