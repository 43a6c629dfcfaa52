package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/metaneutrons/logtidy/internal/adapter"
	"github.com/metaneutrons/logtidy/internal/controller"
	m "github.com/metaneutrons/logtidy/internal/model"
)

// EstimateArgs configures a read-only inventory pass.
type EstimateArgs struct {
	Root       m.Path
	Scheme     m.Path // scheme YAML file; empty selects the built-in table
	Extensions []string
}

// RenumberArgs configures a full renumbering run.
type RenumberArgs struct {
	EstimateArgs
	DryRun       bool
	Yes          bool // skip the confirmation prompt
	Mapping      m.Path
	Build        bool
	BuildCommand string
}

// VerifyArgs configures a standalone uniqueness check.
type VerifyArgs struct {
	Root       m.Path
	Extensions []string
}

// AnalyzeArgs configures the cleanup analysis.
type AnalyzeArgs struct {
	Root         m.Path
	Extensions   []string
	DryRun       bool // report only, no cleanup script
	Interactive  bool // offer to run the generated script
	ReportFile   m.Path
	ScriptFile   m.Path
	BuildCommand string
}

// SplitArgs configures the document splitter.
type SplitArgs struct {
	Source    m.Path
	OutputDir m.Path
	Title     string
}

// PatchArgs configures rule-based text patching.
type PatchArgs struct {
	Rules m.Path
	Files []m.Path
}

// Workflow drives the maintenance commands end to end.
type Workflow interface {
	// Renumber runs the full pipeline:
	// scan -> classify -> extract -> allocate -> confirm -> rewrite -> verify.
	Renumber(ctx context.Context, args RenumberArgs) error
	// Estimate lists files with their annotation counts; read-only.
	Estimate(ctx context.Context, args EstimateArgs) error
	// Verify re-checks global identifier uniqueness; read-only.
	Verify(ctx context.Context, args VerifyArgs) error
	// Analyze produces the cleanup report and optional cleanup script.
	Analyze(ctx context.Context, args AnalyzeArgs) error
	// Split breaks a document into per-chapter files plus an index.
	Split(ctx context.Context, args SplitArgs) error
	// Patch applies ordered regex replacement rules to files.
	Patch(ctx context.Context, args PatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.SchemeStore
	adapter.MappingStore
	adapter.BuildRunnerAdapter
	controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	schemes adapter.SchemeStore,
	mappings adapter.MappingStore,
	builds adapter.BuildRunnerAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:    fs,
		SchemeStore:        schemes,
		MappingStore:       mappings,
		BuildRunnerAdapter: builds,
		UI:                 ui,
	}
}

// scan walks the project tree and builds a FileRecord per file that carries
// identifier annotations. Unreadable files are logged and skipped rather
// than failing the run.
func (w *workflow) scan(root m.Path, scheme m.Scheme, extensions []string) ([]m.FileRecord, error) {
	var records []m.FileRecord

	err := w.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !hasExtension(path, extensions) {
			return nil
		}

		content, readErr := w.ReadFile(m.Path(path))
		if readErr != nil {
			slog.Warn("scan: skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		if !HasAnnotations(content) {
			return nil
		}

		occurrences := ExtractOccurrences(content)
		if len(occurrences) == 0 {
			return nil
		}

		rel, relErr := w.RelPath(root, m.Path(path))
		if relErr != nil {
			rel = m.Path(path)
		}

		hash, hashErr := w.HashFile(m.Path(path))
		if hashErr != nil {
			slog.Warn("scan: could not hash file", "path", path, "error", hashErr)
		}

		records = append(records, m.FileRecord{
			Path:        rel,
			Absolute:    m.Path(path),
			Hash:        hash,
			Category:    Classify(rel, scheme),
			Values:      DistinctValues(occurrences),
			Occurrences: occurrences,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan walk: %w", err)
	}

	slog.Info("scan complete", "root", root, "files", len(records))

	return records, nil
}

// plan loads the scheme, scans the tree and allocates new identifiers. All
// phases up to here are read-only.
func (w *workflow) plan(args EstimateArgs) (m.Plan, error) {
	scheme, err := w.LoadScheme(args.Scheme)
	if err != nil {
		return m.Plan{}, err
	}

	records, err := w.scan(args.Root, scheme, args.Extensions)
	if err != nil {
		return m.Plan{}, err
	}

	plan, err := Allocate(records, scheme)
	if err != nil {
		return m.Plan{}, err
	}

	return plan, nil
}

// Estimate lists files with their annotation counts.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	plan, err := w.plan(args)
	if err != nil {
		slog.Error("estimate failed", "error", err)
		return err
	}

	return w.DisplayEstimation(ctx, plan)
}

// Renumber runs the full pipeline. Allocation failures abort before any
// write; a declined confirmation is a clean no-op; verification failures
// surface as a CollisionError after the writes they describe.
func (w *workflow) Renumber(ctx context.Context, args RenumberArgs) error {
	plan, err := w.plan(args.EstimateArgs)
	if err != nil {
		slog.Error("renumber aborted before any write", "error", err)
		return err
	}

	if err := w.DisplayPlan(ctx, plan); err != nil {
		return err
	}

	if args.DryRun {
		return w.showDiffs(ctx, plan)
	}

	if plan.ChangeCount() > 0 {
		if !args.Yes {
			ok, confirmErr := w.Confirm(ctx, fmt.Sprintf("Apply %d EventId change(s) across %d file(s)?",
				plan.ChangeCount(), len(plan.ChangedFiles())))
			if confirmErr != nil {
				return confirmErr
			}

			if !ok {
				slog.Info("renumber cancelled by user")
				w.Printf("EventId reorganization cancelled by user\n")

				return nil
			}
		}

		if err := w.rewrite(plan, args.Mapping); err != nil {
			return err
		}
	}

	if args.Build {
		output, buildErr := w.RunBuild(ctx, string(args.Root), args.BuildCommand)
		if buildErr != nil {
			slog.Error("build check failed", "error", buildErr)
			return fmt.Errorf("build check failed: %w\n%s", buildErr, output)
		}

		w.Printf("Build check passed\n")
	}

	return w.verify(ctx, VerifyArgs{Root: args.Root, Extensions: args.Extensions})
}

// showDiffs renders a unified diff per changed file without writing.
func (w *workflow) showDiffs(ctx context.Context, plan m.Plan) error {
	for _, file := range plan.ChangedFiles() {
		content, err := w.ReadFile(file.Record.Absolute)
		if err != nil {
			slog.Warn("dry-run: skipping unreadable file", "path", file.Record.Path, "error", err)
			continue
		}

		rewritten, changed := RewriteFile(content, file.Assignment)
		if !changed {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(content)),
			B:        difflib.SplitLines(string(rewritten)),
			FromFile: string(file.Record.Path),
			ToFile:   string(file.Record.Path) + " (renumbered)",
			Context:  2,
		})
		if err != nil {
			return fmt.Errorf("diff %s: %w", file.Record.Path, err)
		}

		if err := w.DisplayDiff(ctx, file.Record.Path, diff); err != nil {
			return err
		}
	}

	w.Printf("\nDry run: no files were written\n")

	return nil
}

// rewrite applies the plan file by file and saves the mapping report. Files
// whose content would not change are left untouched so re-runs leave
// modification state alone.
func (w *workflow) rewrite(plan m.Plan, mappingPath m.Path) error {
	var entries []m.MappingEntry

	written := 0

	for _, file := range plan.Files {
		content, err := w.ReadFile(file.Record.Absolute)
		if err != nil {
			slog.Warn("rewrite: skipping unreadable file", "path", file.Record.Path, "error", err)
			continue
		}

		rewritten, changed := RewriteFile(content, file.Assignment)
		if !changed {
			continue
		}

		info, err := w.FileInfo(file.Record.Absolute)

		perm := os.FileMode(0o644)
		if err == nil {
			perm = info.Mode().Perm()
		}

		if err := w.WriteFile(file.Record.Absolute, rewritten, perm); err != nil {
			return fmt.Errorf("rewrite %s: %w", file.Record.Path, err)
		}

		written++

		for _, old := range file.Record.Values {
			if nw := file.Assignment[old]; nw != old {
				entries = append(entries, m.MappingEntry{
					File:     file.Record.Path,
					Category: file.Record.Category,
					Old:      old,
					New:      nw,
				})
			}
		}
	}

	slog.Info("rewrite complete", "files", written, "changes", len(entries))
	w.Printf("Updated %d file(s)\n", written)

	if mappingPath != "" && len(entries) > 0 {
		if err := w.SaveMapping(mappingPath, entries); err != nil {
			return err
		}

		w.Printf("Mapping saved to: %s\n", mappingPath)
	}

	return nil
}

// Verify re-checks global identifier uniqueness.
func (w *workflow) Verify(ctx context.Context, args VerifyArgs) error {
	return w.verify(ctx, args)
}

func (w *workflow) verify(ctx context.Context, args VerifyArgs) error {
	verifier := &Verifier{FS: w.SourceFSAdapter, Extensions: args.Extensions}

	verification, err := verifier.Verify(args.Root)
	if err != nil {
		return err
	}

	if err := w.DisplayVerification(ctx, verification); err != nil {
		return err
	}

	if !verification.OK() {
		slog.Error("verification failed", "collisions", len(verification.Collisions))
		return &CollisionError{Verification: verification}
	}

	return nil
}

// Analyze produces the cleanup report and, unless dry-run, the cleanup
// script. Interactive mode offers to execute the script immediately.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) error {
	analyzer := &CleanupAnalyzer{FS: w.SourceFSAdapter, Extensions: args.Extensions}

	report, err := analyzer.Analyze(args.Root)
	if err != nil {
		slog.Error("analyze failed", "error", err)
		return err
	}

	reportPath := w.JoinPath(string(args.Root), string(args.ReportFile))
	if err := w.WriteFile(reportPath, []byte(RenderCleanupReport(report)), 0o600); err != nil {
		return fmt.Errorf("write analysis report: %w", err)
	}

	if err := w.DisplayCleanupReport(ctx, report); err != nil {
		return err
	}

	w.Printf("Analysis report saved to: %s\n", reportPath)

	if args.DryRun || report.Empty() {
		return nil
	}

	scriptPath := w.JoinPath(string(args.Root), string(args.ScriptFile))

	script := RenderCleanupScript(report, args.BuildCommand)
	if err := w.WriteScript(scriptPath, []byte(script)); err != nil {
		return fmt.Errorf("write cleanup script: %w", err)
	}

	w.Printf("Cleanup script generated: %s\n", scriptPath)

	if !args.Interactive {
		return nil
	}

	ok, err := w.Confirm(ctx, "Would you like to run the cleanup now?")
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	output, err := w.RunBuild(ctx, string(args.Root), "./"+string(args.ScriptFile))
	if err != nil {
		return fmt.Errorf("cleanup script failed: %w\n%s", err, output)
	}

	w.Printf("%s", output)

	return nil
}

// Split breaks a document into per-chapter files plus an index.
func (w *workflow) Split(ctx context.Context, args SplitArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := w.ReadFile(args.Source)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	chapters := SplitChapters(string(content))
	if len(chapters) == 0 {
		return fmt.Errorf("split: no numbered chapters found in %s", args.Source)
	}

	if err := w.MkdirAll(args.OutputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, chapter := range chapters {
		target := w.JoinPath(string(args.OutputDir), ChapterFilename(chapter))
		if err := w.WriteFile(target, []byte(chapter.Body), 0o600); err != nil {
			return fmt.Errorf("write chapter %d: %w", chapter.Number, err)
		}

		w.Printf("  %2d. %s -> %s\n", chapter.Number, chapter.Title, ChapterFilename(chapter))
	}

	title := args.Title
	if title == "" {
		title = filepath.Base(string(args.Source))
	}

	index := w.JoinPath(string(args.OutputDir), "_index.md")
	if err := w.WriteFile(index, []byte(RenderChapterIndex(title, chapters)), 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	w.Printf("Split %d chapter(s) into %s\n", len(chapters), args.OutputDir)

	return nil
}

// Patch applies ordered regex replacement rules to the given files.
func (w *workflow) Patch(ctx context.Context, args PatchArgs) error {
	data, err := w.ReadFile(args.Rules)
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}

	rules, err := ParseRuleSet(data)
	if err != nil {
		return err
	}

	results := make([]m.PatchResult, 0, len(args.Files))

	for _, file := range args.Files {
		content, readErr := w.ReadFile(file)
		if readErr != nil {
			slog.Warn("patch: skipping unreadable file", "path", file, "error", readErr)
			continue
		}

		patched, count := rules.Apply(content)
		if count == 0 {
			results = append(results, m.PatchResult{File: file})
			continue
		}

		info, infoErr := w.FileInfo(file)

		perm := os.FileMode(0o644)
		if infoErr == nil {
			perm = info.Mode().Perm()
		}

		if err := w.WriteFile(file, patched, perm); err != nil {
			return fmt.Errorf("patch %s: %w", file, err)
		}

		results = append(results, m.PatchResult{File: file, Modified: true, Replacements: count})
	}

	return w.DisplayPatchResults(ctx, results)
}
