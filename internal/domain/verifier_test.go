package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaneutrons/logtidy/internal/adapter"
	m "github.com/metaneutrons/logtidy/internal/model"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func newTestVerifier() *Verifier {
	return &Verifier{
		FS:         adapter.NewLocalSourceFSAdapter(),
		Extensions: []string{".cs"},
	}
}

func TestVerifier_UniqueTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Audio/A.cs": `[LoggerMessage(EventId = 2000, Level = LogLevel.Debug, Message = "a")]`,
		"Audio/B.cs": `[LoggerMessage(EventId = 2100, Level = LogLevel.Debug, Message = "b")]`,
	})

	verification, err := newTestVerifier().Verify(m.Path(root))
	require.NoError(t, err)

	assert.True(t, verification.OK())
	assert.Equal(t, 2, verification.Distinct)
	assert.Empty(t, verification.Collisions)
}

func TestVerifier_CollisionAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Audio/A.cs": `[LoggerMessage(EventId = 2000, Level = LogLevel.Debug, Message = "a")]`,
		"Knx/B.cs":   `[LoggerMessage(EventId = 2000, Level = LogLevel.Debug, Message = "b")]`,
	})

	verification, err := newTestVerifier().Verify(m.Path(root))
	require.NoError(t, err)

	assert.False(t, verification.OK())
	require.Contains(t, verification.Collisions, 2000)
	assert.Len(t, verification.Collisions[2000], 2)
	assert.Equal(t, []int{2000}, verification.CollidingValues())
}

func TestVerifier_CollisionWithinOneFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Audio/A.cs": `[LoggerMessage(EventId = 7, Level = LogLevel.Debug, Message = "a")]
[LoggerMessage(EventId = 7, Level = LogLevel.Debug, Message = "b")]`,
	})

	verification, err := newTestVerifier().Verify(m.Path(root))
	require.NoError(t, err)

	assert.False(t, verification.OK())
	require.Contains(t, verification.Collisions, 7)
	assert.Len(t, verification.Collisions[7], 2)
}

func TestVerifier_SkipsExcludedDirsAndOtherExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Audio/A.cs":    `[LoggerMessage(EventId = 1, Level = LogLevel.Debug, Message = "a")]`,
		"bin/Gen.cs":    `[LoggerMessage(EventId = 1, Level = LogLevel.Debug, Message = "dup")]`,
		"obj/Gen.cs":    `[LoggerMessage(EventId = 1, Level = LogLevel.Debug, Message = "dup")]`,
		"Audio/note.md": `[LoggerMessage(EventId = 1, Level = LogLevel.Debug, Message = "dup")]`,
	})

	verification, err := newTestVerifier().Verify(m.Path(root))
	require.NoError(t, err)

	assert.True(t, verification.OK())
	assert.Equal(t, 1, verification.Distinct)
}

func TestVerifier_MissingRootFails(t *testing.T) {
	_, err := newTestVerifier().Verify(m.Path(filepath.Join(t.TempDir(), "absent")))
	require.Error(t, err)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, hasExtension("a/b/File.cs", []string{".cs"}))
	assert.True(t, hasExtension("a/b/File.CS", []string{".cs"}))
	assert.False(t, hasExtension("a/b/File.csproj", []string{".cs"}))
	assert.False(t, hasExtension("a/b/File", []string{".cs"}))
}
