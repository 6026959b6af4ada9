package usecase

import (
	"context"
	"sync"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

// alertPoster is implemented by notifiers that render compliance alerts
// with their own interactive layout.
type alertPoster interface {
	PostAlert(ctx context.Context, alert *model.ComplianceAlert, change *model.RegulatoryChange) error
}

type NotifyUseCase struct {
	d *deps
}

var validate = validator.New()

// Status lists the integrations and whether each is configured.
func (uc *NotifyUseCase) Status() []model.IntegrationStatus {
	statuses := make([]model.IntegrationStatus, 0, len(uc.d.notifiers))
	for _, n := range uc.d.notifiers {
		statuses = append(statuses, model.IntegrationStatus{Name: n.Name(), Configured: n.Configured()})
	}
	return statuses
}

// Send delivers n to every integration concurrently. A failing integration
// does not affect the others; the result carries one entry per integration
// in configuration order.
func (uc *NotifyUseCase) Send(ctx context.Context, n *model.Notification) ([]model.DeliveryResult, error) {
	if err := validate.Struct(n); err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid notification", goerr.V("cause", err.Error()))
	}
	if !n.Severity.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid notification severity", goerr.V("severity", n.Severity))
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = uc.d.now()
	}

	results := uc.fanOut(ctx, uc.d.notifiers, func(ctx context.Context, notifier interfaces.Notifier) error {
		return notifier.Notify(ctx, n)
	})
	uc.d.record(ctx, types.ActivityNotify, n.Kind, n.ResourceID, n.Title)
	return results, nil
}

// SendAlert delivers a compliance alert. Notifiers with an alert layout use
// it; the others receive a plain notification.
func (uc *NotifyUseCase) SendAlert(ctx context.Context, alert *model.ComplianceAlert, change *model.RegulatoryChange) []model.DeliveryResult {
	n := &model.Notification{
		Title:      "Compliance alert: " + change.Title,
		Message:    alert.Message,
		Severity:   alert.Severity,
		Kind:       types.KindAlert,
		ResourceID: alert.ID,
		Timestamp:  uc.d.now(),
	}

	return uc.fanOut(ctx, uc.d.notifiers, func(ctx context.Context, notifier interfaces.Notifier) error {
		if poster, ok := notifier.(alertPoster); ok {
			return poster.PostAlert(ctx, alert, change)
		}
		return notifier.Notify(ctx, n)
	})
}

// Test sends a test notification to one integration.
func (uc *NotifyUseCase) Test(ctx context.Context, name string) (*model.DeliveryResult, error) {
	for _, notifier := range uc.d.notifiers {
		if notifier.Name() != name {
			continue
		}
		n := &model.Notification{
			Title:     "GRC integration test",
			Message:   "This is a test notification from the GRC service.",
			Severity:  types.SeverityLow,
			Timestamp: uc.d.now(),
		}
		results := uc.fanOut(ctx, []interfaces.Notifier{notifier}, func(ctx context.Context, notifier interfaces.Notifier) error {
			return notifier.Notify(ctx, n)
		})
		uc.d.record(ctx, types.ActivityNotify, "", "", "integration test: "+name)
		return &results[0], nil
	}
	return nil, goerr.Wrap(ErrNotFound, "integration not found", goerr.V(IntegrationKey, name))
}

func (uc *NotifyUseCase) fanOut(ctx context.Context, notifiers []interfaces.Notifier, deliver func(context.Context, interfaces.Notifier) error) []model.DeliveryResult {
	results := make([]model.DeliveryResult, len(notifiers))
	var wg sync.WaitGroup
	for i, notifier := range notifiers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := model.DeliveryResult{Integration: notifier.Name(), Success: true}
			if err := deliver(ctx, notifier); err != nil {
				result.Success = false
				result.Error = err.Error()
				logging.From(ctx).Error("notification delivery failed",
					"integration", notifier.Name(), "error", err)
			}
			metrics.IntegrationDeliveries.WithLabelValues(notifier.Name(), metrics.DeliveryResult(result.Success)).Inc()
			results[i] = result
		}()
	}
	wg.Wait()
	return results
}
