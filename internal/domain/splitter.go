package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// chapterHeading matches top-level numbered chapter headings: `# 3 Title`.
var chapterHeading = regexp.MustCompile(`^# (\d+) (.+)$`)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
)

// SplitChapters breaks a document into its numbered top-level chapters.
// Lines before the first chapter heading are discarded, matching the layout
// of the documents this was written for.
func SplitChapters(content string) []m.Chapter {
	var (
		chapters []m.Chapter
		current  *m.Chapter
		body     []string
	)

	flush := func() {
		if current != nil {
			current.Body = strings.Join(body, "\n")
			chapters = append(chapters, *current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		match := chapterHeading.FindStringSubmatch(line)
		if match == nil {
			if current != nil {
				body = append(body, line)
			}

			continue
		}

		flush()

		number, _ := strconv.Atoi(match[1])
		current = &m.Chapter{Number: number, Title: match[2]}
		// Keep the heading, but drop the chapter number from it.
		body = []string{"# " + match[2]}
	}

	flush()

	return chapters
}

// ChapterFilename derives the output filename for a chapter:
// `NN-slugged-title.md`.
func ChapterFilename(chapter m.Chapter) string {
	slug := slugStrip.ReplaceAllString(chapter.Title, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.ToLower(slug)

	return fmt.Sprintf("%02d-%s.md", chapter.Number, slug)
}

// RenderChapterIndex builds the `_index.md` table of contents.
func RenderChapterIndex(title string, chapters []m.Chapter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - Table of Contents\n\n", title)
	b.WriteString("## Chapters\n\n")

	for _, chapter := range chapters {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", chapter.Number, chapter.Title, ChapterFilename(chapter))
	}

	return b.String()
}
