package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every repository backend when a record does
// not exist.
var ErrNotFound = goerr.New("not found")

// ErrAlreadyExists is wrapped when Create is given an ID that is taken.
var ErrAlreadyExists = goerr.New("already exists")
