package parser

import (
	"regexp"
	"strings"
	"time"

	"bizdoc/internal/domain"
)

var (
	authorRe = regexp.MustCompile(`(?im)(?:author|by):[ \t]*(\S.*)$`)
	statusRe = regexp.MustCompile(`(?im)status:[ \t]*(\S.*)$`)
)

// metadataInput carries everything metadata resolution reads. text and lines
// exclude the front-matter block.
type metadataInput struct {
	text      string
	lines     []string
	fm        frontMatter
	path      string
	modTime   time.Time
	hasTables bool
}

// resolveMetadata merges metadata sources in priority order: front matter,
// then path anchors, then the first level-1 heading, then body key/value
// lines, then the classifiers, then the source modification time.
func (p *Parser) resolveMetadata(in metadataInput) domain.DocumentMetadata {
	meta := domain.NewDocumentMetadata()
	set := in.fm.apply(&meta)

	if in.path != "" {
		if !set["company"] {
			meta.Company = segmentAfter(in.path, p.cfg.CompanyAnchor)
		}
		if !set["project"] {
			meta.Project = segmentAfter(in.path, p.cfg.ProjectAnchor)
		}
	}

	if meta.Title == "" {
		meta.Title = firstTitle(in.lines)
	}

	if !set["author"] {
		if m := authorRe.FindStringSubmatch(in.text); m != nil {
			meta.Author = strings.TrimSpace(m[1])
		}
	}
	if !set["status"] {
		if m := statusRe.FindStringSubmatch(in.text); m != nil {
			meta.Status = strings.ToLower(strings.TrimSpace(m[1]))
		}
	}

	empty := strings.TrimSpace(in.text) == ""
	if meta.DocumentType == "" {
		meta.DocumentType = p.cfg.Rubric.DefaultDocumentType
		if !empty {
			meta.DocumentType = p.cfg.Rubric.DocumentType(in.text, in.hasTables)
		}
	}
	if meta.Industry == "" {
		meta.Industry = p.cfg.Rubric.DefaultIndustry
		if !empty {
			meta.Industry = p.cfg.Rubric.Industry(in.text)
		}
	}

	if meta.LastModified == "" {
		meta.LastModified = lastModified(in.modTime)
	}
	return meta
}

// segmentAfter returns the path segment following the first segment equal to
// anchor. Both slash styles separate segments.
func segmentAfter(path, anchor string) string {
	if anchor == "" {
		return ""
	}
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	for i, part := range parts {
		if part == anchor && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func firstTitle(lines []string) string {
	for _, line := range lines {
		if level, title, ok := parseHeading(line); ok && level == 1 {
			return title
		}
	}
	return ""
}

// lastModified formats the modification time reported by the document's
// source. The path is never consulted.
func lastModified(modTime time.Time) string {
	if modTime.IsZero() {
		return ""
	}
	return modTime.Format(time.RFC3339)
}
