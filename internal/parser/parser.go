// Package parser recovers a typed document model from informal business
// markdown: metadata, sections, tables, references and team members.
package parser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bizdoc/internal/classifier"
	"bizdoc/internal/domain"
	"bizdoc/internal/port"
)

// Default path anchors for company and project inference.
const (
	DefaultCompanyAnchor = "companies"
	DefaultProjectAnchor = "projects"
)

// Config holds the parser's immutable settings.
type Config struct {
	Rubric        *classifier.Rubric
	CompanyAnchor string
	ProjectAnchor string
	Logger        *slog.Logger
}

func (c *Config) defaults() {
	if c.Rubric == nil {
		c.Rubric = classifier.DefaultRubric()
	}
	if c.CompanyAnchor == "" {
		c.CompanyAnchor = DefaultCompanyAnchor
	}
	if c.ProjectAnchor == "" {
		c.ProjectAnchor = DefaultProjectAnchor
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Parser is safe for concurrent use; it holds no per-document state.
type Parser struct {
	cfg Config
	log *slog.Logger
}

var _ port.DocumentParser = (*Parser)(nil)

// New creates a Parser, filling unset Config fields with defaults.
func New(cfg Config) *Parser {
	cfg.defaults()
	return &Parser{cfg: cfg, log: cfg.Logger.With("component", "parser")}
}

// Parse implements port.DocumentParser. The only error it returns is the
// context's.
func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*domain.ParsedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(string(input.Content), "\ufffd")
	return p.parse(text, input.SourcePath, input.ModTime), nil
}

// ParseContent parses in-memory text. sourcePath may be empty and is used only
// for company/project inference.
func (p *Parser) ParseContent(content, sourcePath string) *domain.ParsedDocument {
	return p.parse(content, sourcePath, time.Time{})
}

func (p *Parser) parse(text, sourcePath string, modTime time.Time) *domain.ParsedDocument {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := splitLines(text)

	fm, err := parseFrontMatter(text)
	if err != nil {
		p.log.Debug("front matter skipped", "path", sourcePath, "error", err)
	}
	body := maskLines(lines, fm.bodyLine)
	bodyText := strings.Join(body, "\n")

	blocks := extractTableBlocks(body)
	tables := blockTables(blocks)

	meta := p.resolveMetadata(metadataInput{
		text:      bodyText,
		lines:     body,
		fm:        fm,
		path:      sourcePath,
		modTime:   modTime,
		hasTables: len(tables) > 0,
	})
	financial, charts := extractFinancial(p.cfg.Rubric, body, blocks)

	return &domain.ParsedDocument{
		Metadata:      meta,
		Sections:      ExtractSections(body),
		FinancialData: financial,
		Charts:        charts,
		TeamMembers:   ExtractTeam(body, p.cfg.Rubric.TeamKeywords),
		Tables:        tables,
		Images:        ExtractImages(bodyText),
		Links:         ExtractLinks(bodyText),
	}
}

// maskLines returns a copy of lines with the first n blanked, keeping line
// indices stable.
func maskLines(lines []string, n int) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for i := 0; i < n && i < len(out); i++ {
		out[i] = ""
	}
	return out
}
