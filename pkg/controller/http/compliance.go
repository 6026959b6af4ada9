package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type instantiateRequest struct {
	Name string `json:"name"`
}

type scoreRequest struct {
	DomainID     string  `json:"domainId" validate:"required"`
	CapabilityID string  `json:"capabilityId" validate:"required"`
	Score        float64 `json:"score" validate:"gte=1,lte=5"`
	TargetScore  float64 `json:"targetScore" validate:"omitempty,gte=1,lte=5"`
	Evidence     string  `json:"evidence"`
}

func (s *Server) complianceRoutes(r chi.Router) {
	r.Route("/frameworks", s.frameworkRoutes)
	r.Route("/mappings", s.mappingRoutes)
	r.Route("/maturity", s.maturityRoutes)
	r.Route("/regulatory-changes", s.regulatoryChangeRoutes)
	r.Route("/framework-updates", s.frameworkUpdateRoutes)
	r.Route("/alerts", s.alertRoutes)
	r.Get("/reports", placeholder("Compliance reports"))
}

func (s *Server) frameworkRoutes(r chi.Router) {
	uc := s.uc.Framework

	resource[*model.CustomFramework, model.FrameworkFilter]{
		newEntity: func() *model.CustomFramework { return &model.CustomFramework{} },
		filter: func(q url.Values) model.FrameworkFilter {
			return model.FrameworkFilter{Status: types.FrameworkStatus(q.Get("status"))}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
	}.mount(r)

	r.Get("/templates", func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, uc.Templates())
	})

	r.Post("/templates/{templateID}/instantiate", func(w http.ResponseWriter, r *http.Request) {
		var req instantiateRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		f, err := uc.Instantiate(r.Context(), types.CatalogID(chi.URLParam(r, "templateID")), req.Name)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusCreated, f)
	})

	r.Put("/{id}/status", statusRoute(uc.UpdateStatus))

	r.Post("/{id}/domains", func(w http.ResponseWriter, r *http.Request) {
		var domain model.CustomDomain
		if err := decodeJSON(r, &domain); err != nil {
			handleError(w, r, err)
			return
		}
		f, err := uc.AddDomain(r.Context(), chi.URLParam(r, "id"), domain)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusCreated, f)
	})

	r.Post("/{id}/domains/{domainID}/controls", func(w http.ResponseWriter, r *http.Request) {
		var control model.CustomControl
		if err := decodeJSON(r, &control); err != nil {
			handleError(w, r, err)
			return
		}
		f, err := uc.AddControl(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "domainID"), control)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusCreated, f)
	})

	r.Get("/{id}/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := uc.Stats(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, stats)
	})
}

func (s *Server) mappingRoutes(r chi.Router) {
	uc := s.uc.Framework
	resource[*model.FrameworkMapping, model.MappingFilter]{
		newEntity: func() *model.FrameworkMapping { return &model.FrameworkMapping{} },
		filter: func(q url.Values) model.MappingFilter {
			return model.MappingFilter{
				FrameworkID: q.Get("frameworkId"),
				ControlID:   q.Get("controlId"),
				Type:        types.MappingType(q.Get("type")),
			}
		},
		create: uc.CreateMapping,
		list:   uc.ListMappings,
	}.mount(r)
}

func (s *Server) maturityRoutes(r chi.Router) {
	uc := s.uc.Maturity

	resource[*model.MaturityAssessment, model.AssessmentFilter]{
		newEntity: func() *model.MaturityAssessment { return &model.MaturityAssessment{} },
		filter: func(q url.Values) model.AssessmentFilter {
			return model.AssessmentFilter{
				Status:   types.AssessmentStatus(q.Get("status")),
				Assessor: q.Get("assessor"),
			}
		},
		get:  uc.Get,
		list: uc.List,
	}.mount(r)

	// A modelId in the body seeds the assessment from the catalog model.
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var a model.MaturityAssessment
		if err := decodeJSON(r, &a); err != nil {
			handleError(w, r, err)
			return
		}
		var (
			created *model.MaturityAssessment
			err     error
		)
		if a.ModelID != "" {
			created, err = uc.CreateFromModel(r.Context(), types.CatalogID(a.ModelID), &a)
		} else {
			created, err = uc.Create(r.Context(), &a)
		}
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusCreated, created)
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, uc.Models())
	})

	r.Put("/{id}/capabilities", func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		a, err := uc.UpdateCapability(r.Context(), chi.URLParam(r, "id"), usecase.ScoreInput{
			DomainID:     req.DomainID,
			CapabilityID: req.CapabilityID,
			Score:        req.Score,
			TargetScore:  req.TargetScore,
			Evidence:     req.Evidence,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, a)
	})

	r.Post("/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		a, err := uc.Complete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, a)
	})

	r.Get("/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
		summary, err := uc.Summary(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, summary)
	})
}

func (s *Server) regulatoryChangeRoutes(r chi.Router) {
	uc := s.uc.Regulatory

	resource[*model.RegulatoryChange, model.RegulatoryChangeFilter]{
		newEntity: func() *model.RegulatoryChange { return &model.RegulatoryChange{} },
		filter: func(q url.Values) model.RegulatoryChangeFilter {
			return model.RegulatoryChangeFilter{
				Regulator:    q.Get("regulator"),
				Jurisdiction: q.Get("jurisdiction"),
				Impact:       types.Severity(q.Get("impact")),
				Status:       types.ChangeStatus(q.Get("status")),
			}
		},
		create: uc.CreateChange,
		get:    uc.GetChange,
		list:   uc.ListChanges,
		stats:  statsOf(uc.Stats),
	}.mount(r)

	r.Put("/{id}/status", statusRoute(uc.UpdateChangeStatus))
}

func (s *Server) frameworkUpdateRoutes(r chi.Router) {
	uc := s.uc.Regulatory

	resource[*model.FrameworkUpdate, model.FrameworkUpdateFilter]{
		newEntity: func() *model.FrameworkUpdate { return &model.FrameworkUpdate{} },
		filter: func(q url.Values) model.FrameworkUpdateFilter {
			return model.FrameworkUpdateFilter{
				Framework: q.Get("framework"),
				Status:    types.UpdateStatus(q.Get("status")),
			}
		},
		create: uc.CreateFrameworkUpdate,
		list:   uc.ListFrameworkUpdates,
	}.mount(r)

	r.Put("/{id}/status", statusRoute(uc.UpdateFrameworkUpdateStatus))
}

func (s *Server) alertRoutes(r chi.Router) {
	uc := s.uc.Regulatory

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := model.AlertFilter{
			Severity: types.Severity(q.Get("severity")),
			ChangeID: q.Get("changeId"),
		}
		if v := q.Get("acknowledged"); v != "" {
			ack, err := strconv.ParseBool(v)
			if err != nil {
				handleError(w, r, goerr.Wrap(usecase.ErrValidation, "acknowledged must be a boolean", goerr.V("value", v)))
				return
			}
			filter.Acknowledged = &ack
		}

		alerts, err := uc.ListAlerts(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondList(w, r, alerts)
	})

	r.Post("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		raised, err := uc.EvaluateAlerts(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, map[string]int{"raised": raised})
	})

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		alert, err := uc.GetAlert(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, alert)
	})

	r.Post("/{id}/acknowledge", func(w http.ResponseWriter, r *http.Request) {
		alert, err := uc.AcknowledgeAlert(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, alert)
	})
}
