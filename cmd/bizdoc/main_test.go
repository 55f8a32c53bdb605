package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdoc/internal/domain"
)

const planMarkdown = `---
title: Acme Plan
author: Jane Doe
---
# Overview

Acme sells software.

## Revenue Forecast

| Year | Revenue | Expenses |
|------|---------|----------|
| 2024 | 100 | 80 |
| 2025 | 150 | 90 |
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BIZDOC_CONFIG", "")
	t.Setenv("BIZDOC_S3_BUCKET", "")
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.md", planMarkdown)

	out, err := runCLI(t, "parse", path)
	require.NoError(t, err)

	var doc domain.ParsedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Acme Plan", doc.Metadata.Title)
	assert.Equal(t, "Jane Doe", doc.Metadata.Author)
	require.Len(t, doc.FinancialData, 1)
	assert.Equal(t, "Revenue Forecast", doc.FinancialData[0].Title)
}

func TestParseCommand_Nested(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.md", planMarkdown)

	out, err := runCLI(t, "parse", "--nested", path)
	require.NoError(t, err)

	var doc domain.ParsedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Overview", doc.Sections[0].Title)
	require.Len(t, doc.Sections[0].Subsections, 1)
	assert.Equal(t, "Revenue Forecast", doc.Sections[0].Subsections[0].Title)
}

func TestParseCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "parse", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.md", planMarkdown)

	out, err := runCLI(t, "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DOCUMENT ANALYSIS")
	assert.Contains(t, out, "Title: Acme Plan")
	assert.Contains(t, out, "Financial tables: 1")
	assert.Contains(t, out, "1. Overview (Level 1)")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "plan.md", planMarkdown)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	out, err := runCLI(t, "export", path, "--format", "xlsx", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 financial table(s)")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".xlsx"))
}

func TestExportCommand_Stdout(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.md", planMarkdown)

	out, err := runCLI(t, "export", path, "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Year,Revenue,Expenses")
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.md", planMarkdown)

	_, err := runCLI(t, "export", path, "--format", "pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", planMarkdown)
	writeDoc(t, dir, "nested/b.md", "# B\n\nText.")
	writeDoc(t, dir, "notes.txt", "ignored")
	outDir := filepath.Join(dir, "json")
	reportPath := filepath.Join(dir, "report.json")

	out, err := runCLI(t, "batch", dir, "--out-dir", outDir, "--report", reportPath, "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Total jobs: 2")
	assert.Contains(t, out, "Completed: 2")
	assert.Contains(t, out, "Success rate: 100.0%")

	f, err := os.Open(reportPath)
	require.NoError(t, err)
	defer f.Close()
	var report domain.BatchReport
	require.NoError(t, json.NewDecoder(f).Decode(&report))
	assert.Len(t, report.Jobs, 2)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBatchCommand_RequiresDirectory(t *testing.T) {
	_, err := runCLI(t, "batch")
	require.Error(t, err)
}

func TestBatchCommand_RetryFromReport(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "late.md")
	reportPath := filepath.Join(dir, "report.json")

	report := &domain.BatchReport{Jobs: []domain.BatchJob{
		{Ref: missing, Status: domain.JobStatusFailed, Attempts: 1, Error: "not found"},
	}}
	report.Summarize()
	require.NoError(t, writeReportFile(reportPath, report))

	// The file appears before the retry.
	writeDoc(t, dir, "late.md", "# Late\n")

	out, err := runCLI(t, "batch", "--retry-failed", "--report", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 1")

	retried, err := readReportFile(reportPath)
	require.NoError(t, err)
	require.Len(t, retried.Jobs, 1)
	assert.Equal(t, domain.JobStatusCompleted, retried.Jobs[0].Status)
	assert.Equal(t, 2, retried.Jobs[0].Attempts)
}

func TestWriteAnalysis_Truncation(t *testing.T) {
	a := &domain.DocumentAnalysis{
		Sections:        []domain.SectionOutline{{Title: "One", Level: 1}},
		MoreSections:    3,
		TeamMembers:     []domain.TeamMember{{Name: "Ann", Title: "CEO"}, {Name: "Bob"}},
		MoreTeamMembers: 2,
	}

	var buf bytes.Buffer
	writeAnalysis(&buf, a)
	out := buf.String()

	assert.Contains(t, out, "Title: Untitled")
	assert.Contains(t, out, "... and 3 more sections")
	assert.Contains(t, out, "Team (4 members):")
	assert.Contains(t, out, "  - Ann - CEO\n")
	assert.Contains(t, out, "  - Bob\n")
	assert.Contains(t, out, "... and 2 more members")
}

func TestWriteBatchSummary_FailedJobs(t *testing.T) {
	r := &domain.BatchReport{}
	for i := 0; i < 7; i++ {
		r.Jobs = append(r.Jobs, domain.BatchJob{
			Ref:    filepath.Join("docs", "f"+string(rune('a'+i))+".md"),
			Status: domain.JobStatusFailed,
			Error:  "boom",
		})
	}
	r.Jobs = append(r.Jobs, domain.BatchJob{Ref: "s3://bucket/dir/ok.md", Status: domain.JobStatusCompleted})
	r.Summarize()

	var buf bytes.Buffer
	writeBatchSummary(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Total jobs: 8")
	assert.Contains(t, out, "Failed: 7")
	assert.Contains(t, out, "  fa.md: boom")
	assert.NotContains(t, out, "ff.md")
	assert.Contains(t, out, "... and 2 more")
	assert.Equal(t, "ok.md", displayName("s3://bucket/dir/ok.md"))
}
