package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/metaneutrons/logtidy/internal/model"
)

func writeScheme(t *testing.T, content string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return m.Path(path)
}

func TestLocalSchemeStore_EmptyPathYieldsDefault(t *testing.T) {
	scheme, err := NewSchemeStore().LoadScheme("")
	require.NoError(t, err)

	assert.Equal(t, m.DefaultScheme(), scheme)
	assert.Equal(t, 100, scheme.BlockSize)
	assert.Equal(t, m.CategoryCore, scheme.Default)
}

func TestLocalSchemeStore_LoadsCustomScheme(t *testing.T) {
	path := writeScheme(t, `rules:
  - category: Sound
    keywords: ["Audio", "Media"]
ranges:
  - category: Core
    base: 1000
    span: 500
  - category: Sound
    base: 2000
    span: 500
default: Core
block_size: 50
`)

	scheme, err := NewSchemeStore().LoadScheme(path)
	require.NoError(t, err)

	assert.Equal(t, 50, scheme.BlockSize)

	base, ok := scheme.Base(m.Category("Sound"))
	require.True(t, ok)
	assert.Equal(t, 2000, base)
}

func TestLocalSchemeStore_MissingDefaultFallsBackToCore(t *testing.T) {
	path := writeScheme(t, `ranges:
  - category: Core
    base: 1000
    span: 500
block_size: 50
`)

	scheme, err := NewSchemeStore().LoadScheme(path)
	require.NoError(t, err)
	assert.Equal(t, m.CategoryCore, scheme.Default)
}

func TestLocalSchemeStore_OverlappingRangesRejected(t *testing.T) {
	path := writeScheme(t, `ranges:
  - category: Core
    base: 1000
    span: 1500
  - category: Sound
    base: 2000
    span: 500
default: Core
block_size: 50
`)

	_, err := NewSchemeStore().LoadScheme(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestLocalSchemeStore_RuleWithoutRangeRejected(t *testing.T) {
	path := writeScheme(t, `rules:
  - category: Ghost
    keywords: ["x"]
ranges:
  - category: Core
    base: 1000
    span: 500
default: Core
block_size: 50
`)

	_, err := NewSchemeStore().LoadScheme(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reserved range")
}

func TestLocalSchemeStore_MissingFileFails(t *testing.T) {
	_, err := NewSchemeStore().LoadScheme(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
}

func TestLocalSchemeStore_MalformedYAMLFails(t *testing.T) {
	path := writeScheme(t, "ranges:\n\t- bad indentation")

	_, err := NewSchemeStore().LoadScheme(path)
	require.Error(t, err)
}
