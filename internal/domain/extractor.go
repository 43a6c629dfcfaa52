package domain

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// annotationMarker gates which files participate in a run. Files that never
// mention it are ignored entirely.
const annotationMarker = "LoggerMessage"

// The three recognized textual forms of an identifier annotation. Each
// recognizer captures exactly the digit run, so occurrences normalize into
// one canonical value+span shape regardless of form.
var (
	// EventId = 123
	namedPattern = regexp.MustCompile(`EventId\s*=\s*(\d+)`)
	// [LoggerMessage(123, LogLevel.X, "...")] with the id on the same line
	positionalPattern = regexp.MustCompile(`\[LoggerMessage\([ \t]*(\d+)[ \t]*,`)
	// [LoggerMessage(
	//     123,
	multilinePattern = regexp.MustCompile(`\[LoggerMessage\([ \t]*\r?\n\s*(\d+)\s*,`)
)

// HasAnnotations reports whether content mentions the annotation marker.
func HasAnnotations(content []byte) bool {
	return bytes.Contains(content, []byte(annotationMarker))
}

// ExtractOccurrences scans content for identifier annotations in all three
// recognized forms and returns the canonical occurrences ordered by
// position. The same file may mix forms freely.
func ExtractOccurrences(content []byte) []m.Occurrence {
	var occurrences []m.Occurrence

	collect := func(pattern *regexp.Regexp, form m.Form) {
		for _, loc := range pattern.FindAllSubmatchIndex(content, -1) {
			start, end := loc[2], loc[3]

			value, err := strconv.Atoi(string(content[start:end]))
			if err != nil {
				continue
			}

			occurrences = append(occurrences, m.Occurrence{
				Value: value,
				Start: start,
				End:   end,
				Line:  1 + bytes.Count(content[:start], []byte("\n")),
				Form:  form,
			})
		}
	}

	collect(namedPattern, m.FormNamed)
	collect(positionalPattern, m.FormPositional)
	collect(multilinePattern, m.FormMultiline)

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Start < occurrences[j].Start
	})

	// The splice pass requires each digit span to appear once; drop exact
	// repeats in case two recognizers matched the same run.
	deduped := occurrences[:0]

	for i, occ := range occurrences {
		if i > 0 && occ.Start == occurrences[i-1].Start {
			continue
		}

		deduped = append(deduped, occ)
	}

	return deduped
}

// DistinctValues collapses occurrences to the sorted set of distinct
// identifier values. Duplicates within one file count once.
func DistinctValues(occurrences []m.Occurrence) []int {
	seen := make(map[int]struct{}, len(occurrences))

	for _, occ := range occurrences {
		seen[occ.Value] = struct{}{}
	}

	values := make([]int, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}

	sort.Ints(values)

	return values
}
