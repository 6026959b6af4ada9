package model

import (
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Activity is an append-only audit trail entry.
type Activity struct {
	ID         string               `json:"id" bson:"_id"`
	Actor      string               `json:"actor" bson:"actor"`
	Action     types.ActivityAction `json:"action" bson:"action"`
	Kind       types.ResourceKind   `json:"kind" bson:"kind"`
	ResourceID string               `json:"resourceId" bson:"resource_id"`
	Summary    string               `json:"summary" bson:"summary"`
	Timestamp  time.Time            `json:"timestamp" bson:"timestamp"`
}

// ActivityFilter selects entries; results are newest first and capped at Limit.
type ActivityFilter struct {
	Kind       types.ResourceKind
	ResourceID string
	Actor      string
	Limit      int
}

func (f ActivityFilter) Match(a *Activity) bool {
	return (f.Kind == "" || a.Kind == f.Kind) &&
		(f.ResourceID == "" || a.ResourceID == f.ResourceID) &&
		(f.Actor == "" || a.Actor == f.Actor)
}
