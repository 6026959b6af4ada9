package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/storage"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestDocumentUseCase(t *testing.T) {
	store, err := storage.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()
	env := setup(t, usecase.WithBlobStore(store))
	ctx := withActor("auditor@example.com")

	content := "evidence of quarterly access review"
	sum := sha256.Sum256([]byte(content))

	doc, err := env.uc.Document.Upload(ctx, usecase.UploadInput{
		Name:        "../../access-review.pdf",
		ContentType: "application/pdf",
		Tags:        []string{"evidence"},
		LinkedKind:  types.KindControl,
		LinkedID:    "ctrl-1",
	}, strings.NewReader(content))
	gt.NoError(t, err).Required()

	gt.Number(t, doc.Size).Equal(int64(len(content)))
	gt.Value(t, doc.Checksum).Equal(hex.EncodeToString(sum[:]))
	gt.Value(t, doc.Uploader).Equal("auditor@example.com")
	gt.Value(t, doc.StorageKey).Equal("documents/" + doc.ID + "/access-review.pdf")

	t.Run("open returns content", func(t *testing.T) {
		got, r, err := env.uc.Document.Open(ctx, doc.ID)
		gt.NoError(t, err).Required()
		defer r.Close()
		raw, err := io.ReadAll(r)
		gt.NoError(t, err).Required()
		gt.Value(t, string(raw)).Equal(content)
		gt.Value(t, got.ID).Equal(doc.ID)
	})

	t.Run("list by link", func(t *testing.T) {
		docs, err := env.uc.Document.List(ctx, model.DocumentFilter{LinkedKind: types.KindControl, LinkedID: "ctrl-1"})
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(1)
	})

	t.Run("half linked upload is rejected", func(t *testing.T) {
		_, err := env.uc.Document.Upload(ctx, usecase.UploadInput{Name: "x.txt", LinkedKind: types.KindRisk}, strings.NewReader("x"))
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("delete removes content", func(t *testing.T) {
		gt.NoError(t, env.uc.Document.Delete(ctx, doc.ID)).Required()
		_, err := store.Open(context.Background(), doc.StorageKey)
		gt.Error(t, err).Is(storage.ErrNotFound)
		_, _, err = env.uc.Document.Open(ctx, doc.ID)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestDocumentUseCase_WithoutStorage(t *testing.T) {
	env := setup(t)

	_, err := env.uc.Document.Upload(context.Background(), usecase.UploadInput{Name: "a.txt"}, strings.NewReader("a"))
	gt.Error(t, err).Is(usecase.ErrIntegrationDisabled)
}
