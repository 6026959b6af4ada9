package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrDuplicateID     = goerr.New("duplicate catalog ID")
	ErrInvalidID       = goerr.New("invalid catalog ID format")
	ErrMissingName     = goerr.New("name is required")
	ErrInvalidScore    = goerr.New("target score must be between 1 and 5")
	ErrInvalidPriority = goerr.New("invalid control priority")
	ErrEmptyTemplate   = goerr.New("catalog entry has no domains")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	EntryIDKey     = "entry_id"
	DomainIDKey    = "domain_id"
	ControlCodeKey = "control_code"
	ScoreKey       = "score"
)
