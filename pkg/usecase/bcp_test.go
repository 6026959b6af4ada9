package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func createProcess(t *testing.T, env *testEnv, name string, criticality types.Criticality, rto float64) *model.BusinessProcess {
	t.Helper()
	p, err := env.uc.BCP.CreateProcess(context.Background(), &model.BusinessProcess{
		Name:        name,
		Criticality: criticality,
		RTOHours:    rto,
		RPOHours:    rto / 2,
	})
	gt.NoError(t, err).Required()
	return p
}

func TestBCPUseCase_Plans(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	process := createProcess(t, env, "Payments", types.CriticalityCritical, 4)

	t.Run("unknown process", func(t *testing.T) {
		_, err := env.uc.BCP.CreatePlan(ctx, &model.RecoveryPlan{Name: "x", ProcessID: "missing"})
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	plan, err := env.uc.BCP.CreatePlan(ctx, &model.RecoveryPlan{
		Name:      "Payments DR",
		ProcessID: process.ID,
		Steps: []model.RecoveryStep{
			{Description: "declare incident"},
			{Order: 5, Description: "fail over database"},
			{Description: "notify customers"},
		},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, plan.Status).Equal(types.PlanStatusDraft)
	gt.Array(t, plan.Steps).Length(3).Required()
	gt.Number(t, plan.Steps[0].Order).Equal(5)
	gt.Number(t, plan.Steps[1].Order).Equal(6)
	gt.Value(t, plan.Steps[1].Description).Equal("declare incident")
	gt.Number(t, plan.Steps[2].Order).Equal(7)

	t.Run("reorder renumbers from one", func(t *testing.T) {
		reordered, err := env.uc.BCP.ReorderSteps(ctx, plan.ID, []int{6, 5, 7})
		gt.NoError(t, err).Required()
		gt.Array(t, reordered.Steps).Length(3).Required()
		gt.Value(t, reordered.Steps[0].Description).Equal("declare incident")
		gt.Number(t, reordered.Steps[0].Order).Equal(1)
		gt.Value(t, reordered.Steps[1].Description).Equal("fail over database")
		gt.Number(t, reordered.Steps[2].Order).Equal(3)
	})

	t.Run("reorder rejects partial sequences", func(t *testing.T) {
		for _, seq := range [][]int{{1, 2}, {1, 1, 2}, {1, 2, 9}} {
			_, err := env.uc.BCP.ReorderSteps(ctx, plan.ID, seq)
			gt.Error(t, err).Is(usecase.ErrValidation)
		}
	})

	t.Run("add step appends", func(t *testing.T) {
		updated, err := env.uc.BCP.AddStep(ctx, plan.ID, model.RecoveryStep{Description: "post mortem"})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Steps).Length(4).Required()
		gt.Number(t, updated.Steps[3].Order).Equal(4)
	})

	t.Run("activation stamps review", func(t *testing.T) {
		active, err := env.uc.BCP.UpdatePlanStatus(ctx, plan.ID, types.PlanStatusActive)
		gt.NoError(t, err).Required()
		gt.Value(t, active.LastReviewedAt).NotNil()
	})
}

func TestBCPUseCase_Metrics(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	payments := createProcess(t, env, "Payments", types.CriticalityCritical, 4)
	hr := createProcess(t, env, "HR", types.CriticalityLow, 72)
	createProcess(t, env, "Marketing", types.CriticalityLow, 120)

	paymentsPlan, err := env.uc.BCP.CreatePlan(ctx, &model.RecoveryPlan{Name: "Payments DR", ProcessID: payments.ID, Status: types.PlanStatusActive})
	gt.NoError(t, err).Required()
	hrPlan, err := env.uc.BCP.CreatePlan(ctx, &model.RecoveryPlan{Name: "HR DR", ProcessID: hr.ID})
	gt.NoError(t, err).Required()

	schedule := func(planID string, at time.Time) *model.BCPTest {
		test, err := env.uc.BCP.ScheduleTest(ctx, &model.BCPTest{PlanID: planID, Name: "exercise", Type: types.BCPTestTypeTabletop, ScheduledAt: at})
		gt.NoError(t, err).Required()
		gt.Value(t, test.Status).Equal(types.BCPTestStatusScheduled)
		return test
	}
	hours := func(v float64) *float64 { return &v }

	first := schedule(paymentsPlan.ID, baseTime.Add(-48*time.Hour))
	_, err = env.uc.BCP.RecordTestResult(ctx, first.ID, usecase.TestResult{Status: types.BCPTestStatusCompleted, ActualRecoveryHours: hours(6)})
	gt.NoError(t, err).Required()

	second := schedule(hrPlan.ID, baseTime.Add(-24*time.Hour))
	_, err = env.uc.BCP.RecordTestResult(ctx, second.ID, usecase.TestResult{Status: types.BCPTestStatusFailed})
	gt.NoError(t, err).Required()

	schedule(hrPlan.ID, baseTime.Add(10*24*time.Hour))
	schedule(hrPlan.ID, baseTime.Add(90*24*time.Hour))

	_, err = env.uc.BCP.RecordTestResult(ctx, first.ID, usecase.TestResult{Status: types.BCPTestStatusScheduled})
	gt.Error(t, err).Is(usecase.ErrValidation)

	m, err := env.uc.BCP.Metrics(ctx, usecase.DefaultUpcomingWindow)
	gt.NoError(t, err).Required()

	gt.Number(t, m.TotalProcesses).Equal(3)
	gt.Number(t, m.TotalPlans).Equal(2)
	gt.Number(t, m.ActivePlans).Equal(1)
	gt.Array(t, m.ProcessesNoPlan).Length(1)
	gt.Number(t, m.PassRate).Equal(50)
	gt.Number(t, m.UpcomingTests).Equal(1)
	gt.Array(t, m.RTOBreaches).Length(1).Required()
	gt.Value(t, m.RTOBreaches[0]).Equal(payments.ID)
	gt.Number(t, m.ByCriticality[types.CriticalityLow].Count).Equal(2)
	gt.Number(t, m.ByCriticality[types.CriticalityLow].AverageRTOHours).Equal(96)
	gt.Number(t, m.ByCriticality[types.CriticalityMedium].Count).Equal(0)
	gt.Number(t, m.Overall.AverageRTOHours).Equal(65.33)
}
