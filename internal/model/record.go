package model

// Path represents a file system path.
type Path string

// Form identifies which textual shape an annotation occurrence was written in.
type Form string

const (
	// FormNamed is the `EventId = n` named-field form.
	FormNamed Form = "named"
	// FormPositional is the single-line positional form.
	FormPositional Form = "positional"
	// FormMultiline is the multi-line positional form.
	FormMultiline Form = "multiline"
)

// Occurrence is the canonical representation of one numeric identifier found
// in a file: the value plus the exact byte span of its digits. All three
// recognized textual forms normalize into this shape.
type Occurrence struct {
	Value int
	Start int // byte offset of the first digit
	End   int // byte offset past the last digit
	Line  int // 1-based
	Form  Form
}

// FileRecord describes one scanned file: its relative path, classification,
// position within its category and the identifiers found in it.
type FileRecord struct {
	Path        Path // relative to the project root
	Absolute    Path
	Hash        string
	Category    Category
	FileIndex   int
	Values      []int // sorted distinct identifier values
	Occurrences []Occurrence
}

// Assignment maps old identifier values of one file to their new values.
type Assignment map[int]int

// FilePlan is the planned renumbering for a single file.
type FilePlan struct {
	Record     FileRecord
	NewBase    int
	Assignment Assignment
}

// Changed reports whether the plan maps any value to a different one.
func (p FilePlan) Changed() bool {
	for old, nw := range p.Assignment {
		if old != nw {
			return true
		}
	}

	return false
}

// Plan is the complete renumbering plan for a run, ordered by relative path.
type Plan struct {
	Files []FilePlan
}

// ChangeCount returns the number of identifier values that would change.
func (p Plan) ChangeCount() int {
	count := 0

	for _, file := range p.Files {
		for old, nw := range file.Assignment {
			if old != nw {
				count++
			}
		}
	}

	return count
}

// ChangedFiles returns the plans that would actually modify their file.
func (p Plan) ChangedFiles() []FilePlan {
	var changed []FilePlan

	for _, file := range p.Files {
		if file.Changed() {
			changed = append(changed, file)
		}
	}

	return changed
}
