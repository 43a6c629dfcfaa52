package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/metaneutrons/logtidy/internal/adapter"
	m "github.com/metaneutrons/logtidy/internal/model"
)

// CollisionError is returned when the post-rewrite scan finds identifier
// values occurring more than once across the tree.
type CollisionError struct {
	Verification m.Verification
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("verify: %d identifier value(s) occur more than once", len(e.Verification.Collisions))
}

// Verifier re-scans a project tree and checks global identifier uniqueness.
// It always reads from disk rather than from in-memory state, so partial
// writes and out-of-band modifications are caught.
type Verifier struct {
	FS         adapter.SourceFSAdapter
	Extensions []string
}

// Verify walks root, re-extracts every identifier occurrence and reports
// the duplicated values together with the total distinct count.
func (v *Verifier) Verify(root m.Path) (m.Verification, error) {
	seen := make(map[int][]m.Path)

	err := v.FS.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !hasExtension(path, v.Extensions) {
			return nil
		}

		content, readErr := v.FS.ReadFile(m.Path(path))
		if readErr != nil {
			slog.Warn("verify: skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		if !HasAnnotations(content) {
			return nil
		}

		rel, relErr := v.FS.RelPath(root, m.Path(path))
		if relErr != nil {
			rel = m.Path(path)
		}

		for _, occ := range ExtractOccurrences(content) {
			seen[occ.Value] = append(seen[occ.Value], rel)
		}

		return nil
	})
	if err != nil {
		return m.Verification{}, fmt.Errorf("verify walk: %w", err)
	}

	verification := m.Verification{
		Distinct:   len(seen),
		Collisions: make(map[int][]m.Path),
	}

	for value, paths := range seen {
		if len(paths) > 1 {
			verification.Collisions[value] = paths
		}
	}

	return verification, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)

	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}

	return false
}
