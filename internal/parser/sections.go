package parser

import (
	"strings"

	"bizdoc/internal/domain"
)

// sectionBuilder folds lines into sections. It is either idle (no heading
// seen yet, so lines are dropped) or inside a section accumulating its body.
type sectionBuilder struct {
	current *domain.ContentSection
	buf     []string
	out     []domain.ContentSection
}

func (b *sectionBuilder) line(line string) {
	if level, title, ok := parseHeading(line); ok {
		b.flush()
		b.current = &domain.ContentSection{Title: title, Level: level, Subsections: []domain.ContentSection{}}
		return
	}
	if isDelimiterLine(line) || b.current == nil {
		return
	}
	b.buf = append(b.buf, line)
}

func (b *sectionBuilder) flush() {
	if b.current == nil {
		return
	}
	b.current.Content = strings.TrimSpace(strings.Join(b.buf, "\n"))
	b.out = append(b.out, *b.current)
	b.current = nil
	b.buf = b.buf[:0]
}

// ExtractSections splits lines at ATX headings into a flat, source-ordered
// list of sections. Text before the first heading is dropped.
func ExtractSections(lines []string) []domain.ContentSection {
	b := &sectionBuilder{}
	for _, line := range lines {
		b.line(line)
	}
	b.flush()
	if b.out == nil {
		return []domain.ContentSection{}
	}
	return b.out
}

// Nest returns the hierarchical view of a flat section list: each section
// becomes a subsection of the closest preceding section with a lower level.
func Nest(flat []domain.ContentSection) []domain.ContentSection {
	root := &domain.ContentSection{Subsections: []domain.ContentSection{}}
	var build func(i int, parentLevel int, parent *domain.ContentSection) int
	build = func(i int, parentLevel int, parent *domain.ContentSection) int {
		for i < len(flat) && flat[i].Level > parentLevel {
			s := flat[i]
			s.Subsections = []domain.ContentSection{}
			i = build(i+1, s.Level, &s)
			parent.Subsections = append(parent.Subsections, s)
		}
		return i
	}
	build(0, 0, root)
	return root.Subsections
}
