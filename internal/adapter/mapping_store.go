package adapter

import (
	"bytes"
	"fmt"
	"os"
	"time"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// MappingStore persists the old-to-new identifier mapping of a run.
type MappingStore interface {
	SaveMapping(path m.Path, entries []m.MappingEntry) error
}

// LocalMappingStore writes mapping reports as plain text files.
type LocalMappingStore struct {
	now func() time.Time
}

// NewMappingStore constructs a LocalMappingStore.
func NewMappingStore() *LocalMappingStore {
	return &LocalMappingStore{now: time.Now}
}

// SaveMapping writes the report in the `file|category|old|new` line format.
func (s *LocalMappingStore) SaveMapping(path m.Path, entries []m.MappingEntry) error {
	var buf bytes.Buffer

	buf.WriteString("# EventId Mapping Report\n")
	fmt.Fprintf(&buf, "# Generated on %s\n", s.now().Format(time.RFC3339))
	buf.WriteString("# Format: File|Category|OldEventId|NewEventId\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&buf, "%s|%s|%d|%d\n", entry.File, entry.Category, entry.Old, entry.New)
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write mapping report: %w", err)
	}

	return nil
}
