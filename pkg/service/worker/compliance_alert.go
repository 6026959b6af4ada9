package worker

import (
	"context"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultAlertInterval is how often open regulatory changes are re-evaluated.
const DefaultAlertInterval = time.Hour

// AlertEvaluator raises the compliance alerts that are due and reports how
// many were created.
type AlertEvaluator interface {
	EvaluateAlerts(ctx context.Context) (int, error)
}

// ComplianceAlertWorker periodically re-evaluates regulatory changes so that
// effective dates entering the alert window raise alerts without a write.
//
// Architecture assumptions:
//   - Single server instance (no distributed locking)
//   - Alert creation is deduplicated per change and reason, so an overlapping
//     run on a second instance only wastes work
type ComplianceAlertWorker struct {
	evaluator AlertEvaluator
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewComplianceAlertWorker(evaluator AlertEvaluator, interval time.Duration) *ComplianceAlertWorker {
	if interval <= 0 {
		interval = DefaultAlertInterval
	}
	return &ComplianceAlertWorker{
		evaluator: evaluator,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the evaluation loop in a background goroutine. The first
// evaluation runs immediately and does not block server startup.
func (w *ComplianceAlertWorker) Start(ctx context.Context) error {
	logging.Default().Info("compliance alert worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ComplianceAlertWorker) Stop() {
	logging.Default().Info("compliance alert worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("compliance alert worker stopped")
}

func (w *ComplianceAlertWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.evaluate(ctx); err != nil {
		logging.Default().Error("initial compliance alert evaluation failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.evaluate(ctx); err != nil {
				logging.Default().Error("compliance alert evaluation failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("compliance alert worker context cancelled")
			return
		}
	}
}

func (w *ComplianceAlertWorker) evaluate(ctx context.Context) error {
	startTime := time.Now()

	raised, err := w.evaluator.EvaluateAlerts(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to evaluate compliance alerts", goerr.V("raised", raised))
	}

	logging.Default().Debug("compliance alert evaluation completed",
		"raised", raised,
		"duration", time.Since(startTime).String())
	return nil
}
