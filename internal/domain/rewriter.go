package domain

import (
	"bytes"
	"regexp"
	"strconv"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// Patterns for converting positional annotations to the named form. The
// message capture stays on one line for the single-line form and on its own
// line for the multi-line form, mirroring the shapes found in the target
// codebase.
var (
	standardizeSingle = regexp.MustCompile(`\[LoggerMessage\(\s*(\d+)\s*,\s*(LogLevel\.\w+)\s*,\s*("(?:[^"\\]|\\.)*")\s*\)\]`)
	standardizeMulti  = regexp.MustCompile(`\[LoggerMessage\(\s*\n\s*(\d+)\s*,\s*\n\s*(LogLevel\.\w+)\s*,\s*\n\s*("(?:[^"\\]|\\.)*")\s*\n\s*\)\]`)
)

// namedTemplate is the canonical annotation layout written by
// standardization.
const namedTemplate = "[LoggerMessage(\n        EventId = $1,\n        Level = Microsoft.Extensions.Logging.$2,\n        Message = $3\n    )]"

// StandardizeAnnotations rewrites positional annotation forms into the named
// multi-line form. Returns the resulting content and whether anything
// changed. Already-named annotations pass through untouched, so the
// operation is idempotent.
func StandardizeAnnotations(content []byte) ([]byte, bool) {
	out := standardizeSingle.ReplaceAll(content, []byte(namedTemplate))
	out = standardizeMulti.ReplaceAll(out, []byte(namedTemplate))

	return out, !bytes.Equal(out, content)
}

// ApplyAssignment splices mapped identifier values over the canonical digit
// spans of content. Because replacement happens span-by-span rather than by
// textual search, a remapped value can never alter a longer number that
// merely contains it as a substring. Returns the resulting content and
// whether anything changed.
func ApplyAssignment(content []byte, assignment m.Assignment) ([]byte, bool) {
	occurrences := ExtractOccurrences(content)
	if len(occurrences) == 0 {
		return content, false
	}

	var out bytes.Buffer

	out.Grow(len(content))

	changed := false
	prev := 0

	for _, occ := range occurrences {
		out.Write(content[prev:occ.Start])

		value := occ.Value
		if mapped, ok := assignment[occ.Value]; ok {
			value = mapped
		}

		if value != occ.Value {
			changed = true
		}

		out.WriteString(strconv.Itoa(value))

		prev = occ.End
	}

	out.Write(content[prev:])

	if !changed {
		return content, false
	}

	return out.Bytes(), true
}

// RewriteFile produces the final content for one file: identifier values are
// remapped on their original spans first, then any remaining positional
// annotations are standardized. A (content, false) result means the file
// must not be written at all.
func RewriteFile(content []byte, assignment m.Assignment) ([]byte, bool) {
	renumbered, renumberChanged := ApplyAssignment(content, assignment)
	standardized, formChanged := StandardizeAnnotations(renumbered)

	return standardized, renumberChanged || formChanged
}
