package usecase

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

type ActivityUseCase struct {
	d *deps
}

// List returns trail entries, newest first. Without an activity log the
// trail is empty.
func (uc *ActivityUseCase) List(ctx context.Context, filter model.ActivityFilter) ([]*model.Activity, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultActivityLimit
	}
	if filter.Limit > MaxActivityLimit {
		filter.Limit = MaxActivityLimit
	}
	if uc.d.activity == nil {
		return []*model.Activity{}, nil
	}

	entries, err := uc.d.activity.List(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activity")
	}
	return entries, nil
}
