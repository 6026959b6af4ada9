package types

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

type enum interface {
	~string
	IsValid() bool
}

func parseEnum[T enum](kind, s string) (T, error) {
	v := T(s)
	if !v.IsValid() {
		var zero T
		return zero, goerr.New("invalid "+kind, goerr.V("value", s))
	}
	return v, nil
}

func oneOf[T comparable](v T, all []T) bool {
	return slices.Contains(all, v)
}
