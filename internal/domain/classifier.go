// Package domain holds the renumbering and maintenance logic for logtidy.
package domain

import (
	"strings"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// Classify maps a project-root-relative path to a category using the
// scheme's ordered keyword rules. Rules are checked in order and the first
// keyword contained in the path wins, so a path matching several rules
// always resolves to the earliest one. Paths matching nothing fall back to
// the scheme's default category.
func Classify(relPath m.Path, scheme m.Scheme) m.Category {
	path := string(relPath)

	for _, rule := range scheme.Rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(path, keyword) {
				return rule.Category
			}
		}
	}

	return scheme.Default
}
