package postgres

import "github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)

// uniqueViolation is the SQLSTATE of a duplicate key.
const uniqueViolation = "23505"
