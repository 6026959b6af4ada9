package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// CatalogID identifies a framework template or maturity model entry in the
// TOML catalog.
type CatalogID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the CatalogID is valid
func (c CatalogID) Validate() error {
	if c == "" {
		return goerr.New("catalog ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("catalog ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

func (c CatalogID) String() string {
	return string(c)
}
