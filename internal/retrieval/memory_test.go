package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() []Chunk {
	return []Chunk{
		{Content: "ERP-Systeme integrieren Geschäftsprozesse.", Metadata: Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 0}},
		{Content: "SAP S/4HANA nutzt eine In-Memory-Datenbank.", Metadata: Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 4}},
		{Content: "Customizing passt ERP-Systeme an.", Metadata: Metadata{SourceType: "Literatur", FileName: "buch.pdf", Page: 10}},
	}
}

func TestMemoryRetriever_RanksByOverlap(t *testing.T) {
	r := NewMemoryRetriever(corpus())

	got, err := r.Search(context.Background(), "Was ist eine In-Memory-Datenbank?", 2, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].Metadata.Page)
}

func TestMemoryRetriever_Filter(t *testing.T) {
	r := NewMemoryRetriever(corpus())
	ctx := context.Background()

	got, err := r.Search(ctx, "ERP", 5, ByType("Literatur"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "buch.pdf", got[0].Metadata.FileName)

	got, err = r.Search(ctx, "ERP", 5, ByType("Folien"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryRetriever_EmptyQueryFetchesBroadly(t *testing.T) {
	r := NewMemoryRetriever(corpus())

	got, err := r.Search(context.Background(), "", 10, ByType("Hauptskript"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Metadata.Page)
	assert.Equal(t, 4, got[1].Metadata.Page)
}

func TestMemoryRetriever_NonPositiveK(t *testing.T) {
	r := NewMemoryRetriever(corpus())
	got, err := r.Search(context.Background(), "ERP", 0, Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMemoryRetriever(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.yaml")
	data := `chunks:
  - content: "Workflow-Management steuert Abläufe."
    metadata:
      source_type: Hauptskript
      file_name: bs2.pdf
      page: 7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r, err := LoadMemoryRetriever(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Search(context.Background(), "Workflow", 1, ByType("Hauptskript"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 7}, got[0].Metadata)
}

func TestLoadChunks_Missing(t *testing.T) {
	_, err := LoadChunks(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
