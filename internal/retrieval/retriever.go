// Package retrieval provides similarity search over the chunked course corpus.
package retrieval

import "context"

// Metadata is the provenance attached to a chunk at ingestion time.
// Page is zero-based.
type Metadata struct {
	SourceType string `yaml:"source_type" json:"source_type"`
	FileName   string `yaml:"file_name" json:"file_name"`
	Page       int    `yaml:"page" json:"page"`
}

// Chunk is a bounded slice of a source document.
type Chunk struct {
	Content  string   `yaml:"content" json:"page_content"`
	Metadata Metadata `yaml:"metadata" json:"metadata"`
}

// Filter restricts a search. The zero value matches everything.
type Filter struct {
	SourceType string
}

// IsZero reports whether the filter matches all chunks.
func (f Filter) IsZero() bool {
	return f.SourceType == ""
}

// Matches reports whether c passes the filter.
func (f Filter) Matches(c Chunk) bool {
	return f.SourceType == "" || c.Metadata.SourceType == f.SourceType
}

// Retriever returns up to k chunks ordered by relevance to query.
//
// An empty query means "fetch broadly" and must not fail. A filter that
// matches nothing yields an empty slice, not an error.
type Retriever interface {
	Search(ctx context.Context, query string, k int, filter Filter) ([]Chunk, error)
}

// ByType is a convenience filter on source type.
func ByType(sourceType string) Filter {
	return Filter{SourceType: sourceType}
}
