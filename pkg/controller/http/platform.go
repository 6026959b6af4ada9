package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.uc.Dashboard.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, d)
}

// searchHandler serves /search?q=text&kind=risk,policy&limit=20.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.SearchQuery{Text: q.Get("q")}
	for kind := range strings.SplitSeq(q.Get("kind"), ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			query.Kinds = append(query.Kinds, types.ResourceKind(kind))
		}
	}
	query.Limit, _ = strconv.Atoi(q.Get("limit"))

	hits, err := s.uc.Search.Query(r.Context(), query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, hits)
}

func (s *Server) reindexHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.uc.Search.Reindex(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]int{"indexed": n})
}

func (s *Server) activityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ActivityFilter{
		Kind:       types.ResourceKind(q.Get("kind")),
		ResourceID: q.Get("resourceId"),
		Actor:      q.Get("actor"),
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	activities, err := s.uc.Activity.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, activities)
}

func (s *Server) integrationRoutes(r chi.Router) {
	uc := s.uc.Notify

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, uc.Status())
	})

	r.Post("/notify", func(w http.ResponseWriter, r *http.Request) {
		var n model.Notification
		if err := decodeJSON(r, &n); err != nil {
			handleError(w, r, err)
			return
		}
		results, err := uc.Send(r.Context(), &n)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, results)
	})

	r.Post("/{name}/test", func(w http.ResponseWriter, r *http.Request) {
		result, err := uc.Test(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, result)
	})
}
