package model

import "github.com/m-mizutani/goerr/v2"

// ErrValidation is the root of every model validation failure.
var ErrValidation = goerr.New("validation failed")

// Context keys for error values
const (
	FieldKey = "field"
	ValueKey = "value"
)

func invalid(field, reason string, value any) error {
	return goerr.Wrap(ErrValidation, reason, goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}

func required(field string) error {
	return goerr.Wrap(ErrValidation, field+" is required", goerr.V(FieldKey, field))
}

func between(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return goerr.Wrap(ErrValidation, field+" out of range",
			goerr.V(FieldKey, field), goerr.V(ValueKey, v), goerr.V("min", lo), goerr.V("max", hi))
	}
	return nil
}
