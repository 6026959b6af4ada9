package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// maxBodyBytes bounds JSON request bodies. Uploads have their own limit.
	maxBodyBytes = 1 << 20
)

var validate = validator.New()

type dataResponse struct {
	Data any `json:"data"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type listResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// placeholderResponse is returned by routes that exist but are not backed
// by a use case yet.
type placeholderResponse struct {
	Message string `json:"message"`
	Data    []any  `json:"data"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err)
	}
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(r.Context(), w, status, dataResponse{Data: data})
}

// respondList writes the requested page of items.
func respondList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	page, limit := parsePage(r.URL.Query())
	data, p := paginate(items, page, limit)
	writeJSON(r.Context(), w, http.StatusOK, listResponse{Data: data, Pagination: p})
}

func placeholder(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, placeholderResponse{
			Message: resource + " - Coming soon",
			Data:    []any{},
		})
	}
}

// parsePage reads page and limit. Out of range values fall back to the
// first page and the default limit; limits above the maximum are clamped.
func parsePage(q url.Values) (page, limit int) {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      len(items),
		TotalPages: (len(items) + limit - 1) / limit,
	}

	// compare pages before multiplying so a huge page cannot overflow
	if page > p.TotalPages {
		return []T{}, p
	}
	start := (page - 1) * limit
	end := min(start+limit, len(items))
	return items[start:end], p
}

// statusOf maps use case sentinel errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrIntegrationDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

// decodeJSON decodes the request body into v and runs struct validation.
// Both failures are reported as validation errors.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "invalid JSON body", goerr.V("cause", err.Error()))
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return goerr.Wrap(usecase.ErrValidation, err.Error())
	}
	return nil
}
