package model

import (
	"slices"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Document is the metadata of an uploaded file. The content lives in the
// blob store under StorageKey.
type Document struct {
	Meta
	Name        string             `json:"name"`
	ContentType string             `json:"contentType"`
	Size        int64              `json:"size"`
	Checksum    string             `json:"checksum"`
	StorageKey  string             `json:"storageKey"`
	Uploader    string             `json:"uploader"`
	Tags        []string           `json:"tags"`
	LinkedKind  types.ResourceKind `json:"linkedKind,omitempty"`
	LinkedID    string             `json:"linkedId,omitempty"`
}

func (d *Document) Validate() error {
	if d.Name == "" {
		return required("name")
	}
	if d.StorageKey == "" {
		return required("storageKey")
	}
	if (d.LinkedKind == "") != (d.LinkedID == "") {
		return invalid("linkedId", "linked kind and id must be set together", d.LinkedID)
	}
	return nil
}

type DocumentFilter struct {
	LinkedKind types.ResourceKind
	LinkedID   string
	Uploader   string
	Tag        string
}

func (f DocumentFilter) Match(d *Document) bool {
	return (f.LinkedKind == "" || d.LinkedKind == f.LinkedKind) &&
		(f.LinkedID == "" || d.LinkedID == f.LinkedID) &&
		(f.Uploader == "" || d.Uploader == f.Uploader) &&
		(f.Tag == "" || slices.Contains(d.Tags, f.Tag))
}
