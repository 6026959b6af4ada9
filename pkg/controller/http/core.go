package http

import (
	"net/http"
	"net/url"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) riskRoutes(r chi.Router) {
	uc := s.uc.Risk
	resource[*model.Risk, model.RiskFilter]{
		newEntity: func() *model.Risk { return &model.Risk{} },
		filter: func(q url.Values) model.RiskFilter {
			return model.RiskFilter{
				Category: types.RiskCategory(q.Get("category")),
				Status:   types.RiskStatus(q.Get("status")),
				Severity: types.Severity(q.Get("severity")),
				Owner:    q.Get("owner"),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		update: uc.Update,
		delete: uc.Delete,
		stats:  statsOf(uc.Stats),
	}.mount(r)
}

func (s *Server) incidentRoutes(r chi.Router) {
	uc := s.uc.Incident
	resource[*model.Incident, model.IncidentFilter]{
		newEntity: func() *model.Incident { return &model.Incident{} },
		filter: func(q url.Values) model.IncidentFilter {
			return model.IncidentFilter{
				Severity: types.Severity(q.Get("severity")),
				Status:   types.IncidentStatus(q.Get("status")),
				Category: types.IncidentCategory(q.Get("category")),
				Assignee: q.Get("assignee"),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		update: uc.Update,
		delete: uc.Delete,
		stats:  statsOf(uc.Stats),
	}.mount(r)
}

func (s *Server) controlRoutes(r chi.Router) {
	uc := s.uc.Control
	resource[*model.Control, model.ControlFilter]{
		newEntity: func() *model.Control { return &model.Control{} },
		filter: func(q url.Values) model.ControlFilter {
			return model.ControlFilter{
				Type:      types.ControlType(q.Get("type")),
				Status:    types.ControlStatus(q.Get("status")),
				Owner:     q.Get("owner"),
				Framework: q.Get("framework"),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		update: uc.Update,
		delete: uc.Delete,
		stats:  statsOf(uc.Stats),
	}.mount(r)

	r.Post("/{id}/test", placeholder("Control testing"))
}

func (s *Server) policyRoutes(r chi.Router) {
	uc := s.uc.Policy
	resource[*model.Policy, model.PolicyFilter]{
		newEntity: func() *model.Policy { return &model.Policy{} },
		filter: func(q url.Values) model.PolicyFilter {
			return model.PolicyFilter{
				Status:   types.PolicyStatus(q.Get("status")),
				Category: q.Get("category"),
				Owner:    q.Get("owner"),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		update: uc.Update,
		delete: uc.Delete,
		stats:  statsOf(uc.Stats),
	}.mount(r)

	r.Get("/review-due", func(w http.ResponseWriter, r *http.Request) {
		policies, err := uc.DueForReview(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondList(w, r, policies)
	})
	r.Get("/{id}/attestations", placeholder("Policy attestations"))
}

func (s *Server) vendorRoutes(r chi.Router) {
	uc := s.uc.Vendor
	resource[*model.Vendor, model.VendorFilter]{
		newEntity: func() *model.Vendor { return &model.Vendor{} },
		filter: func(q url.Values) model.VendorFilter {
			return model.VendorFilter{
				Criticality: types.Criticality(q.Get("criticality")),
				Status:      types.VendorStatus(q.Get("status")),
				Tier:        types.Severity(q.Get("tier")),
			}
		},
		create: uc.Create,
		get:    uc.Get,
		list:   uc.List,
		update: uc.Update,
		stats:  statsOf(uc.Stats),
	}.mount(r)
}
