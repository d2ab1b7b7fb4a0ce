package retrieval

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// chunkFile is the on-disk layout of an exported corpus.
type chunkFile struct {
	Chunks []Chunk `yaml:"chunks"`
}

// MemoryRetriever keeps the whole corpus in memory and ranks chunks by
// query term overlap. It backs tests and offline use where no vector
// store is reachable.
type MemoryRetriever struct {
	chunks []Chunk
	terms  []map[string]struct{}
}

// NewMemoryRetriever indexes the given chunks.
func NewMemoryRetriever(chunks []Chunk) *MemoryRetriever {
	r := &MemoryRetriever{
		chunks: make([]Chunk, len(chunks)),
		terms:  make([]map[string]struct{}, len(chunks)),
	}
	copy(r.chunks, chunks)
	for i, c := range r.chunks {
		set := make(map[string]struct{})
		for _, t := range tokenize(c.Content) {
			set[t] = struct{}{}
		}
		r.terms[i] = set
	}
	return r
}

// LoadChunks reads a YAML chunk file.
func LoadChunks(path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunk file: %w", err)
	}
	var f chunkFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse chunk file %s: %w", path, err)
	}
	return f.Chunks, nil
}

// LoadMemoryRetriever reads path and indexes its chunks.
func LoadMemoryRetriever(path string) (*MemoryRetriever, error) {
	chunks, err := LoadChunks(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryRetriever(chunks), nil
}

// Len returns the number of indexed chunks.
func (r *MemoryRetriever) Len() int {
	return len(r.chunks)
}

func (r *MemoryRetriever) Search(ctx context.Context, query string, k int, filter Filter) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []Chunk{}, nil
	}

	type scored struct {
		idx   int
		score int
	}
	qterms := tokenize(query)
	hits := make([]scored, 0, len(r.chunks))
	for i, c := range r.chunks {
		if !filter.Matches(c) {
			continue
		}
		s := 0
		for _, t := range qterms {
			if _, ok := r.terms[i][t]; ok {
				s++
			}
		}
		hits = append(hits, scored{idx: i, score: s})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	out := make([]Chunk, 0, len(hits))
	for _, h := range hits {
		out = append(out, r.chunks[h.idx])
	}
	return out, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
