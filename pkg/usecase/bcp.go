package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultUpcomingWindow is the horizon for counting upcoming BCP tests.
const DefaultUpcomingWindow = 30 * 24 * time.Hour

type BCPUseCase struct {
	d *deps
}

func (uc *BCPUseCase) CreateProcess(ctx context.Context, p *model.BusinessProcess) (*model.BusinessProcess, error) {
	p.ID = ""
	if err := p.Validate(); err != nil {
		return nil, validationError(err, types.KindProcess)
	}

	created, err := uc.d.repo.Process().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create business process")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindProcess, created.ID, created.Name)
	return created, nil
}

func (uc *BCPUseCase) GetProcess(ctx context.Context, id string) (*model.BusinessProcess, error) {
	return getEntity(ctx, uc.d.repo.Process(), types.KindProcess, id)
}

// ListProcesses returns matching processes ordered by name.
func (uc *BCPUseCase) ListProcesses(ctx context.Context, filter model.BusinessProcessFilter) ([]*model.BusinessProcess, error) {
	return filterEntities(ctx, uc.d.repo.Process(), types.KindProcess, filter.Match, func(a, b *model.BusinessProcess) bool {
		return a.Name < b.Name
	})
}

func (uc *BCPUseCase) UpdateProcess(ctx context.Context, p *model.BusinessProcess) (*model.BusinessProcess, error) {
	if _, err := uc.GetProcess(ctx, p.ID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, validationError(err, types.KindProcess)
	}

	updated, err := uc.d.repo.Process().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update business process", goerr.V(IDKey, p.ID))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindProcess, updated.ID, updated.Name)
	return updated, nil
}

// CreatePlan stores a recovery plan for an existing process. Steps without
// an order are appended after the highest order given.
func (uc *BCPUseCase) CreatePlan(ctx context.Context, plan *model.RecoveryPlan) (*model.RecoveryPlan, error) {
	plan.ID = ""
	if plan.Status == "" {
		plan.Status = types.PlanStatusDraft
	}
	if plan.ProcessID != "" {
		if _, err := uc.GetProcess(ctx, plan.ProcessID); err != nil {
			return nil, err
		}
	}

	steps := plan.Steps
	plan.Steps = make([]model.RecoveryStep, 0, len(steps))
	for _, s := range steps {
		if s.Order > 0 {
			plan.Steps = append(plan.Steps, s)
		}
	}
	for _, s := range steps {
		if s.Order <= 0 {
			s.Order = plan.NextStepOrder()
			plan.Steps = append(plan.Steps, s)
		}
	}
	plan.SortSteps()
	if err := plan.Validate(); err != nil {
		return nil, validationError(err, types.KindRecoveryPlan)
	}

	created, err := uc.d.repo.RecoveryPlan().Create(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create recovery plan")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindRecoveryPlan, created.ID, created.Name)
	return created, nil
}

// GetPlan returns the plan with its steps in order.
func (uc *BCPUseCase) GetPlan(ctx context.Context, id string) (*model.RecoveryPlan, error) {
	plan, err := getEntity(ctx, uc.d.repo.RecoveryPlan(), types.KindRecoveryPlan, id)
	if err != nil {
		return nil, err
	}
	plan.SortSteps()
	return plan, nil
}

func (uc *BCPUseCase) ListPlans(ctx context.Context, filter model.RecoveryPlanFilter) ([]*model.RecoveryPlan, error) {
	plans, err := filterEntities(ctx, uc.d.repo.RecoveryPlan(), types.KindRecoveryPlan, filter.Match, func(a, b *model.RecoveryPlan) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		p.SortSteps()
	}
	return plans, nil
}

// UpdatePlanStatus changes the plan status. Approving or activating a plan
// stamps its review date.
func (uc *BCPUseCase) UpdatePlanStatus(ctx context.Context, id string, status types.PlanStatus) (*model.RecoveryPlan, error) {
	plan, err := uc.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := plan.Status
	plan.Status = status
	if status == types.PlanStatusApproved || status == types.PlanStatusActive {
		now := uc.d.now()
		plan.LastReviewedAt = &now
	}
	if err := plan.Validate(); err != nil {
		return nil, validationError(err, types.KindRecoveryPlan)
	}
	return uc.savePlan(ctx, plan, fmt.Sprintf("%s (%s -> %s)", plan.Name, previous, status))
}

// AddStep appends a step to a plan. A zero order places the step last.
func (uc *BCPUseCase) AddStep(ctx context.Context, planID string, step model.RecoveryStep) (*model.RecoveryPlan, error) {
	plan, err := uc.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if step.Order <= 0 {
		step.Order = plan.NextStepOrder()
	}
	plan.Steps = append(plan.Steps, step)
	plan.SortSteps()
	if err := plan.Validate(); err != nil {
		return nil, validationError(err, types.KindRecoveryPlan)
	}
	return uc.savePlan(ctx, plan, fmt.Sprintf("%s: added step %d", plan.Name, step.Order))
}

// ReorderSteps rearranges steps. sequence lists the current order values in
// the desired order and must name every step exactly once. Steps are then
// renumbered from 1.
func (uc *BCPUseCase) ReorderSteps(ctx context.Context, planID string, sequence []int) (*model.RecoveryPlan, error) {
	plan, err := uc.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	current := make([]int, len(plan.Steps))
	byOrder := make(map[int]model.RecoveryStep, len(plan.Steps))
	for i, s := range plan.Steps {
		current[i] = s.Order
		byOrder[s.Order] = s
	}
	requested := slices.Clone(sequence)
	slices.Sort(requested)
	if !slices.Equal(current, requested) {
		return nil, goerr.Wrap(ErrValidation, "sequence must list every step order exactly once",
			goerr.V(IDKey, planID), goerr.V("sequence", sequence), goerr.V("orders", current))
	}

	steps := make([]model.RecoveryStep, 0, len(sequence))
	for i, order := range sequence {
		s := byOrder[order]
		s.Order = i + 1
		steps = append(steps, s)
	}
	plan.Steps = steps
	return uc.savePlan(ctx, plan, plan.Name+": reordered steps")
}

func (uc *BCPUseCase) savePlan(ctx context.Context, plan *model.RecoveryPlan, summary string) (*model.RecoveryPlan, error) {
	updated, err := uc.d.repo.RecoveryPlan().Update(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update recovery plan", goerr.V(IDKey, plan.ID))
	}
	updated.SortSteps()
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindRecoveryPlan, updated.ID, summary)
	return updated, nil
}

// ScheduleTest stores a new test of an existing plan in scheduled state.
func (uc *BCPUseCase) ScheduleTest(ctx context.Context, test *model.BCPTest) (*model.BCPTest, error) {
	test.ID = ""
	test.Status = types.BCPTestStatusScheduled
	test.CompletedAt = nil
	test.ActualRecoveryHours = nil
	if test.PlanID != "" {
		if _, err := uc.GetPlan(ctx, test.PlanID); err != nil {
			return nil, err
		}
	}
	if err := test.Validate(); err != nil {
		return nil, validationError(err, types.KindBCPTest)
	}

	created, err := uc.d.repo.BCPTest().Create(ctx, test)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to schedule BCP test")
	}
	uc.d.mutated(ctx, types.ActivityCreate, types.KindBCPTest, created.ID, created.Name)
	return created, nil
}

func (uc *BCPUseCase) GetTest(ctx context.Context, id string) (*model.BCPTest, error) {
	return getEntity(ctx, uc.d.repo.BCPTest(), types.KindBCPTest, id)
}

// ListTests returns matching tests, earliest scheduled first.
func (uc *BCPUseCase) ListTests(ctx context.Context, filter model.BCPTestFilter) ([]*model.BCPTest, error) {
	return filterEntities(ctx, uc.d.repo.BCPTest(), types.KindBCPTest, filter.Match, func(a, b *model.BCPTest) bool {
		return a.ScheduledAt.Before(b.ScheduledAt)
	})
}

// TestResult is the outcome recorded for an exercised test.
type TestResult struct {
	Status              types.BCPTestStatus
	ActualRecoveryHours *float64
	Findings            []string
	Notes               string
}

// RecordTestResult closes a test. Status must be completed, failed or
// cancelled.
func (uc *BCPUseCase) RecordTestResult(ctx context.Context, id string, result TestResult) (*model.BCPTest, error) {
	if !result.Status.IsFinished() && result.Status != types.BCPTestStatusCancelled {
		return nil, goerr.Wrap(ErrValidation, "result status must be completed, failed or cancelled",
			goerr.V(IDKey, id), goerr.V("status", result.Status))
	}

	test, err := uc.GetTest(ctx, id)
	if err != nil {
		return nil, err
	}
	test.Status = result.Status
	test.ActualRecoveryHours = result.ActualRecoveryHours
	test.Findings = result.Findings
	test.Notes = result.Notes
	if result.Status.IsFinished() {
		now := uc.d.now()
		test.CompletedAt = &now
	}
	if err := test.Validate(); err != nil {
		return nil, validationError(err, types.KindBCPTest)
	}

	updated, err := uc.d.repo.BCPTest().Update(ctx, test)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record BCP test result", goerr.V(IDKey, id))
	}
	uc.d.mutated(ctx, types.ActivityUpdate, types.KindBCPTest, updated.ID, fmt.Sprintf("%s: %s", updated.Name, updated.Status))
	return updated, nil
}

// Metrics aggregates recovery objectives, plan coverage and test outcomes.
// Tests scheduled within upcoming from now count as upcoming.
func (uc *BCPUseCase) Metrics(ctx context.Context, upcoming time.Duration) (*model.BCPMetrics, error) {
	processes, err := uc.ListProcesses(ctx, model.BusinessProcessFilter{})
	if err != nil {
		return nil, err
	}
	plans, err := uc.ListPlans(ctx, model.RecoveryPlanFilter{})
	if err != nil {
		return nil, err
	}
	tests, err := uc.ListTests(ctx, model.BCPTestFilter{})
	if err != nil {
		return nil, err
	}
	return computeBCPMetrics(processes, plans, tests, uc.d.now(), upcoming), nil
}

func computeBCPMetrics(processes []*model.BusinessProcess, plans []*model.RecoveryPlan, tests []*model.BCPTest, now time.Time, upcoming time.Duration) *model.BCPMetrics {
	m := &model.BCPMetrics{
		TotalProcesses:  len(processes),
		Overall:         model.AverageObjectives(processes),
		ByCriticality:   make(map[types.Criticality]model.RecoveryObjectives),
		TotalPlans:      len(plans),
		ProcessesNoPlan: []string{},
		TestsByStatus:   make(map[types.BCPTestStatus]int),
		RTOBreaches:     []string{},
	}

	grouped := make(map[types.Criticality][]*model.BusinessProcess)
	for _, p := range processes {
		grouped[p.Criticality] = append(grouped[p.Criticality], p)
	}
	for _, c := range types.AllCriticalities() {
		m.ByCriticality[c] = model.AverageObjectives(grouped[c])
	}

	planProcess := make(map[string]string, len(plans))
	covered := make(map[string]bool)
	for _, p := range plans {
		planProcess[p.ID] = p.ProcessID
		if p.Status == types.PlanStatusActive {
			m.ActivePlans++
		}
		if p.Status != types.PlanStatusRetired {
			covered[p.ProcessID] = true
		}
	}
	for _, p := range processes {
		if !covered[p.ID] {
			m.ProcessesNoPlan = append(m.ProcessesNoPlan, p.ID)
		}
	}

	var passed, finished int
	latest := make(map[string]*model.BCPTest)
	for _, t := range tests {
		m.TestsByStatus[t.Status]++
		if t.Status.IsFinished() {
			finished++
		}
		if t.Status == types.BCPTestStatusCompleted {
			passed++
		}
		if t.Status == types.BCPTestStatusScheduled && !t.ScheduledAt.Before(now) && t.ScheduledAt.Before(now.Add(upcoming)) {
			m.UpcomingTests++
		}

		if t.Status != types.BCPTestStatusCompleted || t.ActualRecoveryHours == nil || t.CompletedAt == nil {
			continue
		}
		processID := planProcess[t.PlanID]
		if prev, ok := latest[processID]; !ok || t.CompletedAt.After(*prev.CompletedAt) {
			latest[processID] = t
		}
	}
	m.PassRate = model.Percent(passed, finished)

	for _, p := range processes {
		if t, ok := latest[p.ID]; ok && *t.ActualRecoveryHours > p.RTOHours {
			m.RTOBreaches = append(m.RTOBreaches, p.ID)
		}
	}
	sort.Strings(m.RTOBreaches)

	return m
}
