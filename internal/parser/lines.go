package parser

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// splitLines normalizes line endings and splits text into lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// parseHeading reports the level and title of an ATX heading line.
func parseHeading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	title = strings.TrimSpace(m[2])
	if title == "" {
		return 0, "", false
	}
	return len(m[1]), title, true
}

// isDelimiterLine reports whether line is a run of three or more dashes, the
// shape of a front-matter delimiter.
func isDelimiterLine(line string) bool {
	s := strings.TrimSpace(line)
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

// isTableRow reports whether line holds at least two pipes with a non-pipe
// character between some adjacent pair.
func isTableRow(line string) bool {
	first := strings.IndexByte(line, '|')
	if first < 0 {
		return false
	}
	prev := first
	for i := first + 1; i < len(line); i++ {
		if line[i] != '|' {
			continue
		}
		if i-prev > 1 {
			return true
		}
		prev = i
	}
	return false
}

// isSeparatorRow reports whether only dashes and colons remain once pipes and
// whitespace are removed.
func isSeparatorRow(line string) bool {
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitRow splits a table line into trimmed cells, dropping the empty cells
// produced by a leading or trailing pipe.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
