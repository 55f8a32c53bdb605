package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"bizdoc/internal/domain"
)

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// frontMatter is the decoded key/value preamble of a document.
type frontMatter struct {
	fields map[string]any
	// bodyLine is the index of the first line after the closing delimiter.
	bodyLine int
}

// parseFrontMatter decodes a three-dash block at the very start of text. A
// missing or unterminated block yields an empty result. A block that does not
// decode yields an empty result, so its lines stay part of the body, and an
// error wrapping domain.ErrMalformedBlock; callers recover by keeping
// metadata defaults. A block that decodes to no fields is treated the same
// way but without an error.
func parseFrontMatter(text string) (frontMatter, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	closing := closingDelimiter(splitLines(text))
	if closing < 0 {
		return frontMatter{}, nil
	}

	fields := map[string]any{}
	if _, err := frontmatter.Parse(strings.NewReader(text), &fields, yamlFrontMatter); err != nil {
		return frontMatter{}, fmt.Errorf("%w: front matter: %v", domain.ErrMalformedBlock, err)
	}
	if len(fields) == 0 {
		// Comment-only or empty block: a pair of rules, not metadata.
		return frontMatter{}, nil
	}
	return frontMatter{fields: fields, bodyLine: closing + 1}, nil
}

// closingDelimiter returns the index of the line closing a block opened on
// line 0, or -1 when the text does not start with a block.
func closingDelimiter(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i
		}
	}
	return -1
}

// apply copies allow-listed fields onto meta and reports which fields were
// set. Unknown keys and values of the wrong shape are dropped.
func (fm frontMatter) apply(meta *domain.DocumentMetadata) map[string]bool {
	set := map[string]bool{}
	keys := make([]string, 0, len(fm.fields))
	for key := range fm.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, name := range keys {
		raw := fm.fields[name]
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "tags" {
			for _, tag := range tagValues(raw) {
				meta.AddTag(tag)
			}
			set[key] = len(meta.Tags) > 0
			continue
		}

		value, ok := scalarValue(raw)
		if !ok || value == "" {
			continue
		}
		switch key {
		case "title":
			meta.Title = value
		case "company":
			meta.Company = value
		case "project":
			meta.Project = value
		case "document_type":
			meta.DocumentType = value
		case "industry":
			meta.Industry = value
		case "created_date":
			meta.CreatedDate = value
		case "last_modified":
			meta.LastModified = value
		case "author":
			meta.Author = value
		case "status":
			meta.Status = value
		case "priority":
			meta.Priority = value
		default:
			continue
		}
		set[key] = true
	}
	return set
}

func scalarValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(v), true
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format(time.DateOnly), true
		}
		return v.Format(time.RFC3339), true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// tagValues accepts a YAML list or a comma-separated string.
func tagValues(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		for _, t := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(t))
		}
	case []any:
		for _, item := range v {
			if s, ok := scalarValue(item); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
