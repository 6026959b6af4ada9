package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/go-chi/chi/v5"
)

// resource wires the create/get/list/update/delete routes of an entity to
// its use case. Nil operations are not routed.
type resource[T model.Entity, F any] struct {
	newEntity func() T
	filter    func(q url.Values) F

	create func(ctx context.Context, v T) (T, error)
	get    func(ctx context.Context, id string) (T, error)
	list   func(ctx context.Context, filter F) ([]T, error)
	update func(ctx context.Context, v T) (T, error)
	delete func(ctx context.Context, id string) error
	stats  func(ctx context.Context) (any, error)
}

// mount registers the routes on r. Extra routes are registered by the
// caller before or after mount; chi resolves static segments such as
// "/stats" before "/{id}".
func (res resource[T, F]) mount(r chi.Router) {
	if res.list != nil {
		r.Get("/", res.handleList)
	}
	if res.create != nil {
		r.Post("/", res.handleCreate)
	}
	if res.stats != nil {
		r.Get("/stats", res.handleStats)
	}
	if res.get != nil {
		r.Get("/{id}", res.handleGet)
	}
	if res.update != nil {
		r.Put("/{id}", res.handleUpdate)
	}
	if res.delete != nil {
		r.Delete("/{id}", res.handleDelete)
	}
}

func (res resource[T, F]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := res.list(r.Context(), res.filter(r.URL.Query()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, items)
}

func (res resource[T, F]) handleCreate(w http.ResponseWriter, r *http.Request) {
	v := res.newEntity()
	if err := decodeJSON(r, v); err != nil {
		handleError(w, r, err)
		return
	}
	created, err := res.create(r.Context(), v)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

func (res resource[T, F]) handleGet(w http.ResponseWriter, r *http.Request) {
	v, err := res.get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, v)
}

// handleUpdate applies the JSON body on top of the stored record, so fields
// absent from the body keep their values.
func (res resource[T, F]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, err := res.get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := decodeJSON(r, current); err != nil {
		handleError(w, r, err)
		return
	}
	current.GetMeta().ID = id

	updated, err := res.update(r.Context(), current)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

func (res resource[T, F]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := res.delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res resource[T, F]) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := res.stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}

// statsOf adapts a typed stats method to resource.stats.
func statsOf[S any](fn func(ctx context.Context) (S, error)) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// statusRoute handles PUT {"status": ...} for a record identified by the
// "id" URL parameter.
func statusRoute[T any, S ~string](fn func(ctx context.Context, id string, status S) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		v, err := fn(r.Context(), chi.URLParam(r, "id"), S(req.Status))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, v)
	}
}
