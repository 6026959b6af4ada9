package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type DocumentUseCase struct {
	d *deps
}

// UploadInput is the metadata accompanying an uploaded file.
type UploadInput struct {
	Name        string
	ContentType string
	Tags        []string
	LinkedKind  types.ResourceKind
	LinkedID    string
}

// storageKey derives the blob key from the document ID and the base name of
// the uploaded file.
func storageKey(id, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}
	return "documents/" + id + "/" + base
}

// Upload streams content into the blob store and stores the metadata
// record. The blob is removed again when the record cannot be stored.
func (uc *DocumentUseCase) Upload(ctx context.Context, input UploadInput, content io.Reader) (*model.Document, error) {
	if uc.d.blob == nil {
		return nil, goerr.Wrap(ErrIntegrationDisabled, "blob storage is not configured")
	}

	doc := &model.Document{
		Meta:        model.Meta{ID: model.NewID()},
		Name:        input.Name,
		ContentType: input.ContentType,
		Uploader:    auth.ActorFromContext(ctx),
		Tags:        input.Tags,
		LinkedKind:  input.LinkedKind,
		LinkedID:    input.LinkedID,
	}
	if doc.ContentType == "" {
		doc.ContentType = "application/octet-stream"
	}
	doc.StorageKey = storageKey(doc.ID, doc.Name)
	if err := doc.Validate(); err != nil {
		return nil, validationError(err, types.KindDocument)
	}

	hash := sha256.New()
	size, err := uc.d.blob.Put(ctx, doc.StorageKey, io.TeeReader(content, hash), doc.ContentType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store document content", goerr.V("key", doc.StorageKey))
	}
	doc.Size = size
	doc.Checksum = hex.EncodeToString(hash.Sum(nil))

	created, err := uc.d.repo.Document().Create(ctx, doc)
	if err != nil {
		if delErr := uc.d.blob.Delete(ctx, doc.StorageKey); delErr != nil {
			logging.From(ctx).Warn("failed to remove orphaned blob", "error", delErr, "key", doc.StorageKey)
		}
		return nil, goerr.Wrap(err, "failed to create document")
	}

	uc.d.mutated(ctx, types.ActivityUpload, types.KindDocument, created.ID, created.Name)
	uc.d.index(ctx, created)
	return created, nil
}

func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*model.Document, error) {
	return getEntity(ctx, uc.d.repo.Document(), types.KindDocument, id)
}

// List returns matching documents, newest first.
func (uc *DocumentUseCase) List(ctx context.Context, filter model.DocumentFilter) ([]*model.Document, error) {
	return filterEntities(ctx, uc.d.repo.Document(), types.KindDocument, filter.Match, newerFirst[*model.Document])
}

// Open returns the document and a reader of its content. The caller closes
// the reader.
func (uc *DocumentUseCase) Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	if uc.d.blob == nil {
		return nil, nil, goerr.Wrap(ErrIntegrationDisabled, "blob storage is not configured")
	}
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	r, err := uc.d.blob.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open document content", goerr.V(IDKey, id))
	}
	return doc, r, nil
}

// Delete removes the record, then its content. A failure to delete the
// content is logged only.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.d.repo.Document().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V(IDKey, id))
	}

	if uc.d.blob != nil {
		if err := uc.d.blob.Delete(ctx, doc.StorageKey); err != nil {
			logging.From(ctx).Warn("failed to delete document content", "error", err, "key", doc.StorageKey)
		}
	}

	uc.d.mutated(ctx, types.ActivityDelete, types.KindDocument, id, doc.Name)
	uc.d.unindex(ctx, types.KindDocument, id)
	return nil
}
