package interfaces

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
)

// ActivityLog is the append-only audit trail of mutations.
type ActivityLog interface {
	Record(ctx context.Context, activity *model.Activity) error

	// List returns matching entries, newest first
	List(ctx context.Context, filter model.ActivityFilter) ([]*model.Activity, error)
}
