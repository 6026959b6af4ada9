package storage

import (
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrNotFound   = goerr.New("object not found")
	ErrInvalidKey = goerr.New("invalid object key")
)

// cleanKey rejects keys that are empty or escape the store root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", goerr.Wrap(ErrInvalidKey, "key must be a relative path", goerr.V("key", key))
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", goerr.Wrap(ErrInvalidKey, "key escapes store root", goerr.V("key", key))
	}
	return cleaned, nil
}
