package model

import (
	"time"

	"github.com/google/uuid"
)

// Meta holds the fields every stored record carries.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetMeta exposes the embedded Meta to generic repositories.
func (m *Meta) GetMeta() *Meta {
	return m
}

// Entity is implemented by every record that embeds Meta.
type Entity interface {
	GetMeta() *Meta
}

// NewID returns a time ordered unique identifier (UUIDv7).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
