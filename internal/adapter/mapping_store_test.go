package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/metaneutrons/logtidy/internal/model"
)

func TestLocalMappingStore_SaveMapping(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &LocalMappingStore{now: func() time.Time { return fixed }}

	path := filepath.Join(t.TempDir(), "mappings.txt")

	entries := []m.MappingEntry{
		{File: "Audio/A.cs", Category: m.CategoryAudio, Old: 5, New: 2000},
		{File: "Knx/B.cs", Category: m.CategoryKNX, Old: 7, New: 3000},
	}

	require.NoError(t, store.SaveMapping(m.Path(path), entries))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "# EventId Mapping Report")
	assert.Contains(t, text, "# Generated on 2025-06-01T12:00:00Z")
	assert.Contains(t, text, "# Format: File|Category|OldEventId|NewEventId")
	assert.Contains(t, text, "Audio/A.cs|Audio|5|2000\n")
	assert.Contains(t, text, "Knx/B.cs|KNX|7|3000\n")
}

func TestLocalMappingStore_UnwritablePathFails(t *testing.T) {
	store := NewMappingStore()

	err := store.SaveMapping(m.Path(filepath.Join(t.TempDir(), "missing", "mappings.txt")), nil)
	require.Error(t, err)
}
