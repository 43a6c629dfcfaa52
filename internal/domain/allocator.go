package domain

import (
	"fmt"
	"sort"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// BlockOverflowError reports a file holding more distinct identifiers than
// the per-file block size allows. Producing an assignment anyway would bleed
// into the next file's sub-range, so the run must abort before any write.
type BlockOverflowError struct {
	File      m.Path
	Category  m.Category
	Count     int
	BlockSize int
}

func (e *BlockOverflowError) Error() string {
	return fmt.Sprintf("allocate: %s (%s) holds %d distinct identifiers, block size is %d; re-bucket the category with a larger block size",
		e.File, e.Category, e.Count, e.BlockSize)
}

// SpanOverflowError reports a category whose file count needs more room than
// its reserved range provides.
type SpanOverflowError struct {
	Category  m.Category
	Files     int
	Span      int
	BlockSize int
}

func (e *SpanOverflowError) Error() string {
	return fmt.Sprintf("allocate: category %s needs %d file blocks of %d ids but its range spans only %d",
		e.Category, e.Files, e.BlockSize, e.Span)
}

// Allocate computes the full assignment plan for a run. Files are ordered
// lexicographically by relative path, numbered per category from 0, and each
// file's distinct identifiers map ascending onto
// base + file_index*block_size + rank. The mapping is a pure function of
// (category, file index, sorted identifier list), so re-running on
// already-correct input yields a no-change plan.
func Allocate(records []m.FileRecord, scheme m.Scheme) (m.Plan, error) {
	if err := scheme.Validate(); err != nil {
		return m.Plan{}, err
	}

	ordered := make([]m.FileRecord, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	counters := make(map[m.Category]int)
	indexSeen := make(map[m.Category]map[int]struct{})

	plan := m.Plan{Files: make([]m.FilePlan, 0, len(ordered))}

	for _, record := range ordered {
		category := record.Category

		base, ok := scheme.Base(category)
		if !ok {
			return m.Plan{}, fmt.Errorf("allocate: no reserved range for category %q", category)
		}

		span, _ := scheme.Span(category)

		index := counters[category]
		counters[category]++

		if indexSeen[category] == nil {
			indexSeen[category] = make(map[int]struct{})
		}

		if _, dup := indexSeen[category][index]; dup {
			return m.Plan{}, fmt.Errorf("allocate: internal invariant violation: duplicate file index %d in category %q", index, category)
		}

		indexSeen[category][index] = struct{}{}

		if len(record.Values) > scheme.BlockSize {
			return m.Plan{}, &BlockOverflowError{
				File:      record.Path,
				Category:  category,
				Count:     len(record.Values),
				BlockSize: scheme.BlockSize,
			}
		}

		if (index+1)*scheme.BlockSize > span {
			return m.Plan{}, &SpanOverflowError{
				Category:  category,
				Files:     index + 1,
				Span:      span,
				BlockSize: scheme.BlockSize,
			}
		}

		record.FileIndex = index
		newBase := base + index*scheme.BlockSize

		assignment := make(m.Assignment, len(record.Values))
		for rank, old := range record.Values {
			assignment[old] = newBase + rank
		}

		plan.Files = append(plan.Files, m.FilePlan{
			Record:     record,
			NewBase:    newBase,
			Assignment: assignment,
		})
	}

	return plan, nil
}
