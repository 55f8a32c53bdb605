package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdoc/internal/domain"
	"bizdoc/internal/parser"
	"bizdoc/internal/port"
)

const financialDoc = `# Acme Financials

## Revenue Projections
Our revenue and profit outlook:

| Year | Revenue | Profit |
|------|---------|--------|
| FY2024 | $1,000 | $200 |
| FY2025 | $2,000 | $500 |

## Inventory

| Item | Count |
|---|---|
| Widgets | 3 |
`

func newParser() *parser.Parser {
	return parser.New(parser.Config{})
}

func TestParse_TeaserWithTeam(t *testing.T) {
	doc := newParser().ParseContent("# Teaser\n\nWe solve X.\n\n## Team\n- Jane Doe, CEO\n- X", "")

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Teaser", doc.Sections[0].Title)
	assert.Equal(t, 1, doc.Sections[0].Level)
	assert.Equal(t, "We solve X.", doc.Sections[0].Content)
	assert.Equal(t, "Team", doc.Sections[1].Title)
	assert.Equal(t, 2, doc.Sections[1].Level)

	require.Len(t, doc.TeamMembers, 1)
	assert.Equal(t, domain.TeamMember{Name: "Jane Doe", Title: "CEO"}, doc.TeamMembers[0])
	assert.Equal(t, "Teaser", doc.Metadata.Title)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, content := range []string{"", "   \n\n"} {
		doc := newParser().ParseContent(content, "")

		assert.Empty(t, doc.Sections)
		assert.NotNil(t, doc.Sections)
		assert.Empty(t, doc.Tables)
		assert.NotNil(t, doc.Tables)
		assert.Empty(t, doc.FinancialData)
		assert.Empty(t, doc.TeamMembers)
		assert.Equal(t, domain.DefaultDocumentType, doc.Metadata.DocumentType)
		assert.Equal(t, domain.DefaultIndustry, doc.Metadata.Industry)
		assert.Equal(t, domain.DefaultStatus, doc.Metadata.Status)
		assert.Equal(t, domain.DefaultPriority, doc.Metadata.Priority)
	}
}

func TestParse_FrontMatter(t *testing.T) {
	doc := newParser().ParseContent("---\nstatus: final\n---\n# Title\n\nBody text.", "")

	assert.Equal(t, "final", doc.Metadata.Status)
	assert.Equal(t, "Title", doc.Metadata.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Body text.", doc.Sections[0].Content)
}

func TestParse_FrontMatterFields(t *testing.T) {
	content := `---
title: Override Title
company: Front Co
document_type: pitch_deck
industry: fintech
author: Jane Roe
priority: high
created_date: 2024-03-01
tags: [seed, Seed, series-a]
unknown_key: dropped
---
# Heading Title

Author: Someone Else
Status: Review
`
	doc := newParser().ParseContent(content, "/data/companies/acme/projects/alpha/plan.md")
	meta := doc.Metadata

	assert.Equal(t, "Override Title", meta.Title)
	assert.Equal(t, "Front Co", meta.Company)
	assert.Equal(t, "alpha", meta.Project)
	assert.Equal(t, "pitch_deck", meta.DocumentType)
	assert.Equal(t, "fintech", meta.Industry)
	assert.Equal(t, "Jane Roe", meta.Author)
	assert.Equal(t, "review", meta.Status)
	assert.Equal(t, "high", meta.Priority)
	assert.Equal(t, "2024-03-01", meta.CreatedDate)
	assert.Equal(t, []string{"seed", "Seed", "series-a"}, meta.Tags)
}

func TestParse_FrontMatterCommaTags(t *testing.T) {
	doc := newParser().ParseContent("---\ntags: growth, saas ,growth\n---\n# T", "")
	assert.Equal(t, []string{"growth", "saas"}, doc.Metadata.Tags)
}

func TestParse_CommentOnlyFrontMatterKeepsHeadings(t *testing.T) {
	doc := newParser().ParseContent("---\n# Title\n---\n## Next\ntext\n", "")

	assert.Equal(t, "Title", doc.Metadata.Title)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Title", doc.Sections[0].Title)
	assert.Equal(t, 1, doc.Sections[0].Level)
	assert.Empty(t, doc.Sections[0].Content)
	assert.Equal(t, "Next", doc.Sections[1].Title)
	assert.Equal(t, "text", doc.Sections[1].Content)
}

func TestParse_MalformedFrontMatterKeepsDefaults(t *testing.T) {
	content := "---\n# Real Title\nplain words\n---\n## Next\n\ntext"
	doc := newParser().ParseContent(content, "")

	assert.Equal(t, domain.DefaultStatus, doc.Metadata.Status)
	assert.Equal(t, "Real Title", doc.Metadata.Title)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Real Title", doc.Sections[0].Title)
	assert.Equal(t, "plain words", doc.Sections[0].Content)
	assert.Equal(t, "Next", doc.Sections[1].Title)
}

func TestParse_BodyAuthorAndStatus(t *testing.T) {
	doc := newParser().ParseContent("# Plan\n\nPrepared by: Alex Smith\nSTATUS: In Review\nstatus: final", "")

	assert.Equal(t, "Alex Smith", doc.Metadata.Author)
	assert.Equal(t, "in review", doc.Metadata.Status)
}

func TestParse_PathAnchors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantCompany string
		wantProject string
	}{
		{"both anchors", "/srv/companies/acme/projects/launch/doc.md", "acme", "launch"},
		{"windows separators", `C:\docs\companies\globex\notes.md`, "globex", ""},
		{"anchor as last segment", "/srv/companies", "", ""},
		{"no anchors", "/tmp/doc.md", "", ""},
		{"anchor must match whole segment", "/srv/mycompanies/acme/doc.md", "", ""},
	}

	p := newParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := p.ParseContent("# Doc", tt.path)
			assert.Equal(t, tt.wantCompany, doc.Metadata.Company)
			assert.Equal(t, tt.wantProject, doc.Metadata.Project)
		})
	}
}

func TestParse_CustomAnchors(t *testing.T) {
	p := parser.New(parser.Config{CompanyAnchor: "clients", ProjectAnchor: "engagements"})
	doc := p.ParseContent("# Doc", "/clients/initech/engagements/q3/doc.md")

	assert.Equal(t, "initech", doc.Metadata.Company)
	assert.Equal(t, "q3", doc.Metadata.Project)
}

func TestParse_FinancialTables(t *testing.T) {
	doc := newParser().ParseContent(financialDoc, "")

	require.Len(t, doc.Tables, 2)
	assert.Equal(t, domain.Table{
		{"Year", "Revenue", "Profit"},
		{"FY2024", "$1,000", "$200"},
		{"FY2025", "$2,000", "$500"},
	}, doc.Tables[0])
	assert.Equal(t, domain.Table{{"Item", "Count"}, {"Widgets", "3"}}, doc.Tables[1])

	require.Len(t, doc.FinancialData, 1)
	fd := doc.FinancialData[0]
	assert.Equal(t, "Our revenue and profit outlook:", fd.Title)
	assert.Equal(t, []string{"Year", "Revenue", "Profit"}, fd.Headers)
	assert.Equal(t, doc.Tables[0], fd.TableData)
	assert.Equal(t, domain.DefaultCurrency, fd.Currency)
	assert.Equal(t, domain.DefaultPeriod, fd.Period)

	require.Len(t, doc.Charts, 1)
	chart := doc.Charts[0]
	assert.Equal(t, 0, chart.LabelColumn)
	assert.Equal(t, []int{1, 2}, chart.DataColumns)
	assert.Equal(t, domain.ChartRevenue, chart.Category)
	assert.InDelta(t, 3000, chart.Stats["total"], 1e-9)
	assert.InDelta(t, 100, chart.Stats["growth"], 1e-9)

	assert.Equal(t, "financial_projections", doc.Metadata.DocumentType)
}

func TestParse_FinancialTableDefaultTitle(t *testing.T) {
	content := "# Numbers\n\n| Metric | Value |\n|---|---|\n| Revenue | 10 |\n| Cost | 4 |\n\nSome text\n\n| Budget | Forecast |\n| 1 | 2 |"
	doc := newParser().ParseContent(content, "")

	require.Len(t, doc.FinancialData, 2)
	assert.Equal(t, "Financial Data 1", doc.FinancialData[0].Title)
	assert.Equal(t, "Financial Data 2", doc.FinancialData[1].Title)
}

func TestParse_FinancialTitleSkipsPrecedingTableRows(t *testing.T) {
	content := "| Year | Revenue | Profit |\n|---|---|---|\n| Total Revenue | 3 | 4 |\n\n| Quarter | Revenue | Expenses |\n|---|---|---|\n| Q1 | 1 | 2 |"
	doc := newParser().ParseContent(content, "")

	require.Len(t, doc.FinancialData, 2)
	assert.Equal(t, "Financial Data 1", doc.FinancialData[0].Title)
	assert.Equal(t, "Financial Data 2", doc.FinancialData[1].Title)
}

func TestParse_FinancialTablesHaveTwoKeywords(t *testing.T) {
	content := "# T\n\n| Quarter | Revenue |\n|---|---|\n| Q1 | $1,000 |\n\n| Revenue | Profit |\n| 1 | 2 |"
	doc := newParser().ParseContent(content, "")

	require.Len(t, doc.Tables, 2)
	require.Len(t, doc.FinancialData, 1)
	assert.Equal(t, []string{"Revenue", "Profit"}, doc.FinancialData[0].Headers)
}

func TestParse_References(t *testing.T) {
	content := `# Links

![Logo](assets/logo.png) and ![Chart](https://cdn.example.com/chart.svg "Chart")
See [our site](https://example.com) and [docs](http://docs.example.com/guide "Guide").
Local [file](./notes.md) and [image link](https://example.com/photo.JPG).`
	doc := newParser().ParseContent(content, "")

	assert.Equal(t, []string{"assets/logo.png", "https://cdn.example.com/chart.svg"}, doc.Images)
	assert.Equal(t, []string{"https://example.com", "http://docs.example.com/guide"}, doc.Links)
}

func TestParse_Deterministic(t *testing.T) {
	p := newParser()
	for _, content := range []string{financialDoc, "# Teaser\n\nWe solve X.\n\n## Team\n- Jane Doe, CEO\n- X", ""} {
		assert.Equal(t, p.ParseContent(content, "/companies/acme/doc.md"), p.ParseContent(content, "/companies/acme/doc.md"))
	}
}

func TestParse_SectionRoundTrip(t *testing.T) {
	p := newParser()
	first := p.ParseContent(financialDoc+"\n### Deep\n\nnested text\n\n# Last\n", "")

	var sb strings.Builder
	for _, s := range first.Sections {
		sb.WriteString(strings.Repeat("#", s.Level) + " " + s.Title + "\n\n")
		sb.WriteString(s.Content + "\n\n")
	}
	second := p.ParseContent(sb.String(), "")

	assert.Equal(t, first.Sections, second.Sections)
}

func TestParse_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := newParser().Parse(ctx, port.ParseInput{Content: []byte("# T")})
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_ModTime(t *testing.T) {
	mod := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	doc, err := newParser().Parse(context.Background(), port.ParseInput{Content: []byte("# T"), ModTime: mod})

	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T07:08:09Z", doc.Metadata.LastModified)
}

func TestParse_PathIsNeverStatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies", "acme", "plan.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# On disk"), 0o644))

	doc, err := newParser().Parse(context.Background(), port.ParseInput{Content: []byte("# T"), SourcePath: path})
	require.NoError(t, err)

	assert.Equal(t, "acme", doc.Metadata.Company)
	assert.Empty(t, doc.Metadata.LastModified)
}

func TestSummarize(t *testing.T) {
	doc := newParser().ParseContent("---\nstatus: final\n---\n# Teaser\n\nWe solve X.\n\n![a](b.png)\n\n## Team\n- Jane Doe, CEO", "")
	summary := parser.Summarize(doc)

	assert.Equal(t, domain.DocumentSummary{
		Title:         "Teaser",
		Type:          doc.Metadata.DocumentType,
		Industry:      doc.Metadata.Industry,
		SectionsCount: 2,
		HasTeamInfo:   true,
		ImagesCount:   1,
		WordCount:     8,
		Status:        "final",
	}, summary)
}
