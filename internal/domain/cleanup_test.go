package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaneutrons/logtidy/internal/adapter"
	m "github.com/metaneutrons/logtidy/internal/model"
)

func newTestAnalyzer() *CleanupAnalyzer {
	return &CleanupAnalyzer{
		FS:         adapter.NewLocalSourceFSAdapter(),
		Extensions: []string{".cs"},
	}
}

func TestCleanupAnalyzer_TemporaryFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"scratch.tmp":     "x",
		"fix_eventids.py": "print('x')",
		"Program.cs":      "public class Program { }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	require.Len(t, report.Temporary, 2)

	files := []string{string(report.Temporary[0].File), string(report.Temporary[1].File)}
	assert.Contains(t, files, "scratch.tmp")
	assert.Contains(t, files, "fix_eventids.py")
}

func TestCleanupAnalyzer_DeprecatedByName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Commands/ZoneCommands.cs": "public class ZoneCommands { }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	require.Len(t, report.Deprecated, 1)
	assert.Equal(t, "Superseded by new implementation", report.Deprecated[0].Reason)
	assert.NotEmpty(t, report.Deprecated[0].Replacement)
}

func TestCleanupAnalyzer_DeprecatedByMarker(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Legacy.cs": "// TODO: remove after migration\npublic class Legacy { }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	require.Len(t, report.Deprecated, 1)
	assert.Equal(t, "Marked as deprecated in code", report.Deprecated[0].Reason)
}

func TestCleanupAnalyzer_UnusedDefinitions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Orphan.cs": "public class OrphanHelper { }",
		"Used.cs":   "public class UsedHelper { }",
		"Main.cs":   "public class Runner { void Go() { var h = new UsedHelper(); Runner r = null; } }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	require.Len(t, report.Unused, 1)
	assert.Equal(t, "OrphanHelper", report.Unused[0].Detail)
	assert.Equal(t, m.Path("Orphan.cs"), report.Unused[0].File)
}

func TestCleanupAnalyzer_EntryPointsNeverFlagged(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ZoneController.cs":   "public class ZoneController { }",
		"StatusHandler.cs":    "public class StatusHandler { }",
		"MediaService.cs":     "public class MediaService { }",
		"AppConfiguration.cs": "public class AppConfiguration { }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	assert.Empty(t, report.Unused)
}

func TestCleanupAnalyzer_CommentedReferencesDoNotCount(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Orphan.cs": "public class OrphanHelper { }",
		"Main.cs":   "public class Runner { /* new OrphanHelper() */ void Go() { Runner r = null; } } // OrphanHelper.Run()",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	require.Len(t, report.Unused, 1)
	assert.Equal(t, "OrphanHelper", report.Unused[0].Detail)
}

func TestCleanupAnalyzer_ExcludedFilesSkipped(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"GlobalUsings.cs": "public class OrphanFromUsings { }",
		"Main.cs":         "public class Runner { void Go() { Runner r = null; } }",
	})

	report, err := newTestAnalyzer().Analyze(m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Analyzed)
	assert.Empty(t, report.Unused)
}

func TestCleanupReport_Empty(t *testing.T) {
	assert.True(t, m.CleanupReport{Analyzed: 3}.Empty())
	assert.False(t, m.CleanupReport{Temporary: []m.Finding{{File: "a.tmp"}}}.Empty())
}

func TestRenderCleanupReport(t *testing.T) {
	report := m.CleanupReport{
		Deprecated: []m.Finding{{File: "Old.cs", Reason: "Superseded by new implementation", Replacement: "New.cs"}},
		Unused:     []m.Finding{{File: "Orphan.cs", Detail: "OrphanHelper", Reason: "Class appears to be unreferenced"}},
		Temporary:  []m.Finding{{File: "x.tmp", Reason: "Temporary file matching pattern: *.tmp"}},
		Analyzed:   10,
	}

	rendered := RenderCleanupReport(report)

	assert.Contains(t, rendered, "# Code Cleanup Analysis Report")
	assert.Contains(t, rendered, "`Old.cs`")
	assert.Contains(t, rendered, "OrphanHelper")
	assert.Contains(t, rendered, "- **Total files analyzed**: 10")
}

func TestRenderCleanupScript(t *testing.T) {
	report := m.CleanupReport{
		Deprecated: []m.Finding{{File: "Old.cs"}},
		Unused:     []m.Finding{{File: "Orphan.cs", Detail: "OrphanHelper"}},
		Temporary:  []m.Finding{{File: "x.tmp"}},
	}

	script := RenderCleanupScript(report, "dotnet build")

	assert.Contains(t, script, "#!/bin/bash")
	assert.Contains(t, script, "set -e")
	assert.Contains(t, script, "rm -f 'Old.cs'")
	assert.Contains(t, script, "rm -f 'x.tmp'")
	assert.Contains(t, script, "dotnet build")
	// Review-required findings are reported but never deleted automatically.
	assert.NotContains(t, script, "Orphan.cs")
}
