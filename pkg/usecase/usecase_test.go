package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/memory"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/async"
	"github.com/m-mizutani/gt"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// clock is a settable time source for use cases under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: baseTime}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	uc       *usecase.UseCases
	repo     *memory.Memory
	activity *memory.ActivityLog
	clock    *clock
}

func setup(t *testing.T, opts ...usecase.Option) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:     memory.New(),
		activity: memory.NewActivityLog(),
		clock:    newClock(),
	}
	base := []usecase.Option{
		usecase.WithActivityLog(env.activity),
		usecase.WithClock(env.clock.Now),
	}
	env.uc = usecase.New(env.repo, append(base, opts...)...)
	return env
}

func withActor(email string) context.Context {
	token := auth.NewToken("user-1", email, "Test User", "analyst", time.Hour)
	return auth.ContextWithToken(context.Background(), token)
}

func waitAsync(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	gt.NoError(t, async.Wait(ctx)).Required()
}

// fakeNotifier records notifications and optionally fails.
type fakeNotifier struct {
	name       string
	configured bool
	fail       bool

	mu       sync.Mutex
	received []*model.Notification
}

func (n *fakeNotifier) Name() string     { return n.name }
func (n *fakeNotifier) Configured() bool { return n.configured }

func (n *fakeNotifier) Notify(ctx context.Context, msg *model.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, msg)
	if n.fail {
		return errors.New("delivery refused")
	}
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

// fakeAlertNotifier additionally renders compliance alerts itself.
type fakeAlertNotifier struct {
	fakeNotifier

	alerts []*model.ComplianceAlert
}

func (n *fakeAlertNotifier) PostAlert(ctx context.Context, alert *model.ComplianceAlert, change *model.RegulatoryChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *fakeAlertNotifier) alertCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}
