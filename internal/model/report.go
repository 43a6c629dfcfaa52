package model

import "sort"

// MappingEntry is one line of the mapping report produced after a rewrite.
type MappingEntry struct {
	File     Path
	Category Category
	Old      int
	New      int
}

// Verification is the result of the post-rewrite uniqueness pass.
type Verification struct {
	// Distinct is the total count of distinct identifier values on disk.
	Distinct int
	// Collisions maps each value seen more than once to every file it was
	// seen in, repeated per occurrence.
	Collisions map[int][]Path
}

// OK reports whether the tree holds no duplicate identifier values.
func (v Verification) OK() bool {
	return len(v.Collisions) == 0
}

// CollidingValues returns the duplicated values in ascending order.
func (v Verification) CollidingValues() []int {
	values := make([]int, 0, len(v.Collisions))
	for value := range v.Collisions {
		values = append(values, value)
	}

	sort.Ints(values)

	return values
}

// Finding is one flagged file from the cleanup analysis.
type Finding struct {
	File        Path
	Detail      string // class name or glob pattern that triggered the flag
	Reason      string
	Replacement string
}

// CleanupReport groups cleanup-analysis findings by confidence bucket.
type CleanupReport struct {
	Deprecated []Finding // superseded files, safe to remove
	Unused     []Finding // unreferenced definitions, review required
	Temporary  []Finding // leftover scratch files, safe to remove
	Analyzed   int       // total files inspected
}

// Empty reports whether the analysis flagged nothing.
func (r CleanupReport) Empty() bool {
	return len(r.Deprecated) == 0 && len(r.Unused) == 0 && len(r.Temporary) == 0
}

// PatchRule is a single ordered regex replacement.
type PatchRule struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// PatchResult is the per-file outcome of applying a rule set.
type PatchResult struct {
	File         Path
	Modified     bool
	Replacements int
}

// Chapter is one top-level numbered section of a split document.
type Chapter struct {
	Number int
	Title  string
	Body   string
}
