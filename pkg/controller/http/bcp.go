package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type reorderRequest struct {
	Sequence []int `json:"sequence" validate:"required,min=1"`
}

type testResultRequest struct {
	Status              string   `json:"status" validate:"required"`
	ActualRecoveryHours *float64 `json:"actualRecoveryHours" validate:"omitempty,gte=0"`
	Findings            []string `json:"findings"`
	Notes               string   `json:"notes"`
}

func (s *Server) bcpRoutes(r chi.Router) {
	uc := s.uc.BCP

	r.Route("/processes", func(r chi.Router) {
		resource[*model.BusinessProcess, model.BusinessProcessFilter]{
			newEntity: func() *model.BusinessProcess { return &model.BusinessProcess{} },
			filter: func(q url.Values) model.BusinessProcessFilter {
				return model.BusinessProcessFilter{
					Criticality: types.Criticality(q.Get("criticality")),
					Department:  q.Get("department"),
					Owner:       q.Get("owner"),
				}
			},
			create: uc.CreateProcess,
			get:    uc.GetProcess,
			list:   uc.ListProcesses,
			update: uc.UpdateProcess,
		}.mount(r)
	})

	r.Route("/plans", func(r chi.Router) {
		resource[*model.RecoveryPlan, model.RecoveryPlanFilter]{
			newEntity: func() *model.RecoveryPlan { return &model.RecoveryPlan{} },
			filter: func(q url.Values) model.RecoveryPlanFilter {
				return model.RecoveryPlanFilter{
					ProcessID: q.Get("processId"),
					Status:    types.PlanStatus(q.Get("status")),
				}
			},
			create: uc.CreatePlan,
			get:    uc.GetPlan,
			list:   uc.ListPlans,
		}.mount(r)

		r.Put("/{id}/status", statusRoute(uc.UpdatePlanStatus))

		r.Post("/{id}/steps", func(w http.ResponseWriter, r *http.Request) {
			var step model.RecoveryStep
			if err := decodeJSON(r, &step); err != nil {
				handleError(w, r, err)
				return
			}
			plan, err := uc.AddStep(r.Context(), chi.URLParam(r, "id"), step)
			if err != nil {
				handleError(w, r, err)
				return
			}
			respond(w, r, http.StatusCreated, plan)
		})

		r.Put("/{id}/steps", func(w http.ResponseWriter, r *http.Request) {
			var req reorderRequest
			if err := decodeJSON(r, &req); err != nil {
				handleError(w, r, err)
				return
			}
			plan, err := uc.ReorderSteps(r.Context(), chi.URLParam(r, "id"), req.Sequence)
			if err != nil {
				handleError(w, r, err)
				return
			}
			respond(w, r, http.StatusOK, plan)
		})
	})

	r.Route("/tests", func(r chi.Router) {
		resource[*model.BCPTest, model.BCPTestFilter]{
			newEntity: func() *model.BCPTest { return &model.BCPTest{} },
			filter: func(q url.Values) model.BCPTestFilter {
				return model.BCPTestFilter{
					PlanID: q.Get("planId"),
					Status: types.BCPTestStatus(q.Get("status")),
					Type:   types.BCPTestType(q.Get("type")),
				}
			},
			create: uc.ScheduleTest,
			get:    uc.GetTest,
			list:   uc.ListTests,
		}.mount(r)

		r.Post("/{id}/result", func(w http.ResponseWriter, r *http.Request) {
			var req testResultRequest
			if err := decodeJSON(r, &req); err != nil {
				handleError(w, r, err)
				return
			}
			test, err := uc.RecordTestResult(r.Context(), chi.URLParam(r, "id"), usecase.TestResult{
				Status:              types.BCPTestStatus(req.Status),
				ActualRecoveryHours: req.ActualRecoveryHours,
				Findings:            req.Findings,
				Notes:               req.Notes,
			})
			if err != nil {
				handleError(w, r, err)
				return
			}
			respond(w, r, http.StatusOK, test)
		})
	})

	// days sets the window for upcoming tests.
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		window := usecase.DefaultUpcomingWindow
		if v := r.URL.Query().Get("days"); v != "" {
			days, err := strconv.Atoi(v)
			if err != nil || days < 1 {
				handleError(w, r, goerr.Wrap(usecase.ErrValidation, "days must be a positive integer", goerr.V("value", v)))
				return
			}
			window = time.Duration(days) * 24 * time.Hour
		}

		m, err := uc.Metrics(r.Context(), window)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, m)
	})
}

func (s *Server) auditRoutes(r chi.Router) {
	uc := s.uc.Audit

	resource[*model.Audit, model.AuditFilter]{
		newEntity: func() *model.Audit { return &model.Audit{} },
		filter: func(q url.Values) model.AuditFilter {
			return model.AuditFilter{
				Type:        types.AuditType(q.Get("type")),
				Status:      types.AuditStatus(q.Get("status")),
				LeadAuditor: q.Get("leadAuditor"),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		stats:  statsOf(uc.Stats),
	}.mount(r)

	r.Put("/{id}/status", statusRoute(uc.UpdateStatus))

	r.Post("/{id}/findings", func(w http.ResponseWriter, r *http.Request) {
		var finding model.AuditFinding
		if err := decodeJSON(r, &finding); err != nil {
			handleError(w, r, err)
			return
		}
		a, err := uc.AddFinding(r.Context(), chi.URLParam(r, "id"), finding)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusCreated, a)
	})

	r.Put("/{id}/findings/{findingID}", func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		a, err := uc.UpdateFindingStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "findingID"), types.FindingStatus(req.Status))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, a)
	})
}
