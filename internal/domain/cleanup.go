package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/metaneutrons/logtidy/internal/adapter"
	m "github.com/metaneutrons/logtidy/internal/model"
)

// Definition and reference extraction is regex-based on purpose: the tool
// never parses the target language's grammar.
var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)public\s+(?:partial\s+)?class\s+(\w+)`),
	regexp.MustCompile(`(?m)public\s+(?:partial\s+)?interface\s+(\w+)`),
	regexp.MustCompile(`(?m)public\s+(?:partial\s+)?record\s+(\w+)`),
	regexp.MustCompile(`(?m)public\s+(?:partial\s+)?enum\s+(\w+)`),
	regexp.MustCompile(`(?m)internal\s+(?:partial\s+)?class\s+(\w+)`),
	regexp.MustCompile(`(?m)internal\s+(?:partial\s+)?interface\s+(\w+)`),
}

var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`:\s*(\w+)`),          // inheritance
	regexp.MustCompile(`<(\w+)>`),            // generic arguments
	regexp.MustCompile(`(\w+)\s+\w+\s*[=;]`), // variable declarations
	regexp.MustCompile(`new\s+(\w+)\s*\(`),   // constructor calls
	regexp.MustCompile(`typeof\s*\(\s*(\w+)`),
	regexp.MustCompile(`(\w+)\.`), // static member access
}

var (
	lineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringPattern       = regexp.MustCompile(`"[^"]*"`)
)

// Classes with these suffixes are wired up via reflection or DI and carry no
// explicit references.
var entryPointPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Controller$`),
	regexp.MustCompile(`Handler$`),
	regexp.MustCompile(`Service$`),
	regexp.MustCompile(`Configuration$`),
	regexp.MustCompile(`Program$`),
	regexp.MustCompile(`Startup$`),
}

// deprecatedCandidates lists files known to be superseded, with pointers to
// their replacements.
var deprecatedCandidates = map[string]string{
	"ZoneCommands.cs":           "Individual files in Commands/Playback/, Commands/Volume/, etc.",
	"ClientVolumeCommands.cs":   "Individual files in Commands/Volume/",
	"ClientConfigCommands.cs":   "Individual files in Commands/Config/",
	"LoggingCommandBehavior.cs": "SharedLoggingCommandBehavior.cs",
	"LoggingQueryBehavior.cs":   "SharedLoggingQueryBehavior.cs",
}

var deprecationMarkers = []string{"deprecated", "obsolete", "todo: remove"}

var tempFilePatterns = []string{
	"*.tmp", "*.temp", "*.bak", "*.old",
	"generate_*.py", "fix_*.py", "cleanup_*.py",
	"test_*.py", "debug_*.py",
}

var analysisExcludedFiles = map[string]struct{}{
	"AssemblyInfo.cs": {},
	"GlobalUsings.cs": {},
}

// CleanupAnalyzer scans a codebase for deletion candidates: explicitly
// superseded files, unreferenced definitions and leftover scratch files.
type CleanupAnalyzer struct {
	FS         adapter.SourceFSAdapter
	Extensions []string
}

type fileScan struct {
	path        m.Path
	definitions []string
	references  map[string]struct{}
	content     string
}

// Analyze walks root and produces the cleanup report.
func (a *CleanupAnalyzer) Analyze(root m.Path) (m.CleanupReport, error) {
	var (
		scans     []fileScan
		temporary []m.Finding
	)

	err := a.FS.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		base := filepath.Base(path)

		for _, pattern := range tempFilePatterns {
			if ok, _ := filepath.Match(pattern, base); ok {
				rel := a.relTo(root, m.Path(path))
				temporary = append(temporary, m.Finding{
					File:   rel,
					Detail: pattern,
					Reason: fmt.Sprintf("Temporary file matching pattern: %s", pattern),
				})

				break
			}
		}

		if !hasExtension(path, a.Extensions) {
			return nil
		}

		if _, skip := analysisExcludedFiles[base]; skip {
			return nil
		}

		content, readErr := a.FS.ReadFile(m.Path(path))
		if readErr != nil {
			slog.Warn("analyze: skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		scans = append(scans, fileScan{
			path:        a.relTo(root, m.Path(path)),
			definitions: extractDefinitions(string(content)),
			references:  extractReferences(string(content)),
			content:     string(content),
		})

		return nil
	})
	if err != nil {
		return m.CleanupReport{}, fmt.Errorf("analyze walk: %w", err)
	}

	report := m.CleanupReport{
		Temporary: temporary,
		Analyzed:  len(scans),
	}

	report.Deprecated = findDeprecated(scans)
	report.Unused = findUnused(scans)

	return report, nil
}

func (a *CleanupAnalyzer) relTo(root, path m.Path) m.Path {
	rel, err := a.FS.RelPath(root, path)
	if err != nil {
		return path
	}

	return rel
}

func extractDefinitions(content string) []string {
	var definitions []string

	for _, pattern := range definitionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			definitions = append(definitions, match[1])
		}
	}

	return definitions
}

// extractReferences strips comments and string literals first so commented
// or quoted type names do not count as usages.
func extractReferences(content string) map[string]struct{} {
	clean := lineCommentPattern.ReplaceAllString(content, "")
	clean = blockCommentPattern.ReplaceAllString(clean, "")
	clean = stringPattern.ReplaceAllString(clean, "")

	references := make(map[string]struct{})

	for _, pattern := range referencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(clean, -1) {
			references[match[1]] = struct{}{}
		}
	}

	return references
}

func findDeprecated(scans []fileScan) []m.Finding {
	var findings []m.Finding

	for _, scan := range scans {
		base := filepath.Base(string(scan.path))

		if replacement, known := deprecatedCandidates[base]; known {
			findings = append(findings, m.Finding{
				File:        scan.path,
				Reason:      "Superseded by new implementation",
				Replacement: replacement,
			})

			continue
		}

		lower := strings.ToLower(scan.content)
		for _, marker := range deprecationMarkers {
			if strings.Contains(lower, marker) {
				findings = append(findings, m.Finding{
					File:        scan.path,
					Reason:      "Marked as deprecated in code",
					Replacement: "See code comments",
				})

				break
			}
		}
	}

	return findings
}

func findUnused(scans []fileScan) []m.Finding {
	definedIn := make(map[string]m.Path)
	referenced := make(map[string]struct{})

	for _, scan := range scans {
		for _, definition := range scan.definitions {
			definedIn[definition] = scan.path
		}

		for reference := range scan.references {
			referenced[reference] = struct{}{}
		}
	}

	names := make([]string, 0, len(definedIn))
	for name := range definedIn {
		names = append(names, name)
	}

	sort.Strings(names)

	var findings []m.Finding

	for _, name := range names {
		if _, used := referenced[name]; used {
			continue
		}

		if isEntryPoint(name) {
			continue
		}

		findings = append(findings, m.Finding{
			File:   definedIn[name],
			Detail: name,
			Reason: "Class appears to be unreferenced",
		})
	}

	return findings
}

func isEntryPoint(name string) bool {
	for _, pattern := range entryPointPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}

	return false
}

// RenderCleanupReport produces the markdown analysis report.
func RenderCleanupReport(report m.CleanupReport) string {
	var b strings.Builder

	b.WriteString("# Code Cleanup Analysis Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(report.Deprecated) > 0 {
		b.WriteString("## Deprecated Files (Safe to Remove)\n\n")

		for _, finding := range report.Deprecated {
			fmt.Fprintf(&b, "**File**: `%s`\n", finding.File)
			fmt.Fprintf(&b, "**Reason**: %s\n", finding.Reason)
			fmt.Fprintf(&b, "**Replacement**: %s\n\n", finding.Replacement)
		}
	}

	if len(report.Unused) > 0 {
		b.WriteString("## Potentially Unused Files (Review Required)\n\n")

		for _, finding := range report.Unused {
			fmt.Fprintf(&b, "**File**: `%s`\n", finding.File)
			fmt.Fprintf(&b, "**Class**: %s\n", finding.Detail)
			fmt.Fprintf(&b, "**Reason**: %s\n\n", finding.Reason)
		}
	}

	if len(report.Temporary) > 0 {
		b.WriteString("## Temporary Files (Safe to Remove)\n\n")

		for _, finding := range report.Temporary {
			fmt.Fprintf(&b, "**File**: `%s`\n", finding.File)
			fmt.Fprintf(&b, "**Reason**: %s\n\n", finding.Reason)
		}
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Deprecated files**: %d\n", len(report.Deprecated))
	fmt.Fprintf(&b, "- **Potentially unused files**: %d\n", len(report.Unused))
	fmt.Fprintf(&b, "- **Temporary files**: %d\n", len(report.Temporary))
	fmt.Fprintf(&b, "- **Total files analyzed**: %d\n", report.Analyzed)

	return b.String()
}

// RenderCleanupScript produces a shell script that removes the safe findings
// and runs the target build to confirm the tree still compiles.
func RenderCleanupScript(report m.CleanupReport, buildCommand string) string {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Automated cleanup script generated by logtidy analyze\n\n")
	b.WriteString("set -e\n\n")
	b.WriteString("echo 'Starting cleanup...'\n\n")

	if len(report.Deprecated) > 0 {
		b.WriteString("echo 'Removing deprecated files...'\n")

		for _, finding := range report.Deprecated {
			fmt.Fprintf(&b, "echo 'Removing %s (superseded)'\n", finding.File)
			fmt.Fprintf(&b, "rm -f '%s'\n", finding.File)
		}

		b.WriteString("\n")
	}

	if len(report.Temporary) > 0 {
		b.WriteString("echo 'Removing temporary files...'\n")

		for _, finding := range report.Temporary {
			fmt.Fprintf(&b, "echo 'Removing %s (temporary)'\n", finding.File)
			fmt.Fprintf(&b, "rm -f '%s'\n", finding.File)
		}

		b.WriteString("\n")
	}

	b.WriteString("echo 'Cleanup completed!'\n")
	b.WriteString("echo 'Running build to verify...'\n")
	b.WriteString(buildCommand + "\n")
	b.WriteString("echo 'Build successful - cleanup verified!'\n")

	return b.String()
}
