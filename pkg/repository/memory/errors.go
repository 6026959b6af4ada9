package memory

import "github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)
