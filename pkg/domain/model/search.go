package model

import (
	"strings"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// SearchDocument is the flattened form of a record in the search index.
type SearchDocument struct {
	ID    string             `json:"id"`
	Kind  types.ResourceKind `json:"kind"`
	Title string             `json:"title"`
	Body  string             `json:"body"`
	Tags  []string           `json:"tags,omitempty"`
}

// Key identifies the document across kinds.
func (d *SearchDocument) Key() string {
	return string(d.Kind) + ":" + d.ID
}

// Matches reports whether every term of query occurs in the title, body or
// tags, ignoring case.
func (d *SearchDocument) Matches(query string) bool {
	text := strings.ToLower(d.Title + " " + d.Body + " " + strings.Join(d.Tags, " "))
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

type SearchQuery struct {
	Text  string
	Kinds []types.ResourceKind
	Limit int
}

type SearchHit struct {
	SearchDocument
	Score float64 `json:"score"`
}

// SearchDocumentOf converts a searchable record. The second result is false
// for records that are not indexed.
func SearchDocumentOf(v any) (*SearchDocument, bool) {
	switch x := v.(type) {
	case *Risk:
		return &SearchDocument{ID: x.ID, Kind: types.KindRisk, Title: x.Title,
			Body: x.Description, Tags: []string{string(x.Category), string(x.Severity), x.Owner}}, true
	case *Incident:
		return &SearchDocument{ID: x.ID, Kind: types.KindIncident, Title: x.Title,
			Body: x.Description, Tags: []string{string(x.Category), string(x.Severity)}}, true
	case *Control:
		return &SearchDocument{ID: x.ID, Kind: types.KindControl, Title: x.Code + " " + x.Title,
			Body: x.Description, Tags: x.Frameworks}, true
	case *Policy:
		return &SearchDocument{ID: x.ID, Kind: types.KindPolicy, Title: x.Title,
			Body: x.Content, Tags: []string{x.Category}}, true
	case *Document:
		return &SearchDocument{ID: x.ID, Kind: types.KindDocument, Title: x.Name,
			Tags: x.Tags}, true
	}
	return nil, false
}
