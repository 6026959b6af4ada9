package model

import (
	"net/mail"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// User is a local account. PasswordHash is a bcrypt hash.
type User struct {
	Meta
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         types.Role `json:"role"`
	PasswordHash string     `json:"passwordHash,omitempty"`
}

func (u *User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return invalid("email", "invalid email address", u.Email)
	}
	if !u.Role.IsValid() {
		return invalid("role", "invalid role", u.Role)
	}
	return nil
}
