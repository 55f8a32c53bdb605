package parser

import (
	"strings"

	"bizdoc/internal/domain"
)

// teamSpanEndLevel is the deepest heading level that ends a team span, so
// level 4+ subsections stay inside it.
const teamSpanEndLevel = 3

// ExtractTeam finds the team span of the document and returns the people
// listed in it. The span starts at the first heading mentioning a team
// keyword, or failing that at the first mention anywhere, and runs to the
// next heading of level 1-3.
func ExtractTeam(lines []string, keywords []string) []domain.TeamMember {
	members := []domain.TeamMember{}
	start, col := findTeamStart(lines, keywords)
	if start < 0 {
		return members
	}

	var current *domain.TeamMember
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if i == start && col <= len(line) {
			line = line[col:]
		} else if level, _, ok := parseHeading(line); ok && level <= teamSpanEndLevel {
			break
		}

		if body, ok := bulletBody(line); ok {
			current = nil
			if m, ok := parseMemberLine(body); ok {
				members = append(members, m)
				current = &members[len(members)-1]
			}
			continue
		}
		if current != nil && isIndented(line) {
			applyMemberDetail(current, line)
		}
	}
	return members
}

func findTeamStart(lines []string, keywords []string) (line, col int) {
	for i, l := range lines {
		if _, _, ok := parseHeading(l); !ok {
			continue
		}
		if c := indexAnyKeyword(strings.ToLower(l), keywords); c >= 0 {
			return i, c
		}
	}
	for i, l := range lines {
		if c := indexAnyKeyword(strings.ToLower(l), keywords); c >= 0 {
			return i, c
		}
	}
	return -1, 0
}

// indexAnyKeyword returns the smallest offset at which any keyword occurs in s.
func indexAnyKeyword(s string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if i := strings.Index(s, kw); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// parseMemberLine matches the "name[, title]" shape of a bullet body. Names
// need at least two words; single-word bullets are list items, not people.
func parseMemberLine(body string) (domain.TeamMember, bool) {
	parts := strings.Split(body, ",")
	name := strings.Trim(strings.TrimSpace(parts[0]), "*_ ")
	if len(strings.Fields(name)) < 2 {
		return domain.TeamMember{}, false
	}
	m := domain.TeamMember{Name: name}
	if len(parts) > 1 {
		m.Title = strings.TrimSpace(parts[1])
	}
	return m, true
}

// bulletBody returns the text after a "* " or "- " marker at column zero.
func bulletBody(line string) (string, bool) {
	if len(line) < 2 || (line[0] != '*' && line[0] != '-') {
		return "", false
	}
	if line[1] != ' ' && line[1] != '\t' {
		return "", false
	}
	return line[2:], true
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// applyMemberDetail fills bio, experience or education from an indented
// "key: value" line under a member bullet.
func applyMemberDetail(m *domain.TeamMember, line string) {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimLeft(s, "*-"))
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.Trim(strings.TrimSpace(key), "*_")) {
	case "bio":
		m.Bio = value
	case "experience":
		m.Experience = value
	case "education":
		m.Education = value
	}
}
