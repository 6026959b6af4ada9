package http

import (
	"mime"
	"net/http"
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// MaxUploadBytes is the largest accepted document upload.
const MaxUploadBytes = 25 << 20

func (s *Server) documentRoutes(r chi.Router) {
	uc := s.uc.Document

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		docs, err := uc.List(r.Context(), model.DocumentFilter{
			LinkedKind: types.ResourceKind(q.Get("linkedType")),
			LinkedID:   q.Get("linkedId"),
			Uploader:   q.Get("uploader"),
			Tag:        q.Get("tag"),
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondList(w, r, docs)
	})

	r.Post("/", s.uploadDocument)

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		doc, err := uc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, doc)
	})

	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/{id}/download", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		doc, content, err := uc.Open(ctx, chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		defer safe.Close(ctx, content)

		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
		w.Header().Set("X-Checksum-Sha256", doc.Checksum)
		safe.Copy(ctx, w, content)
	})

	r.Get("/{id}/versions", placeholder("Document versions"))
}

// uploadDocument accepts a multipart form with a "file" part and optional
// "tags" (comma separated), "linkedType" and "linkedId" fields.
func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		handleError(w, r, goerr.Wrap(usecase.ErrValidation, "invalid multipart upload", goerr.V("cause", err.Error())))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, goerr.Wrap(usecase.ErrValidation, "file is required"))
		return
	}
	defer safe.Close(r.Context(), file)

	input := usecase.UploadInput{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		LinkedKind:  types.ResourceKind(r.FormValue("linkedType")),
		LinkedID:    r.FormValue("linkedId"),
	}
	for tag := range strings.SplitSeq(r.FormValue("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			input.Tags = append(input.Tags, tag)
		}
	}

	doc, err := s.uc.Document.Upload(r.Context(), input, file)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, doc)
}
