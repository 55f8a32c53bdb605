package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bizdoc/internal/domain"
)

const (
	rule           = "=================================================="
	maxFailedShown = 5
)

func orUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

func writeAnalysis(w io.Writer, a *domain.DocumentAnalysis) {
	m := a.Metadata
	fmt.Fprintf(w, "%s\nDOCUMENT ANALYSIS\n%s\n", rule, rule)
	fmt.Fprintf(w, "Title: %s\n", orUntitled(m.Title))
	fmt.Fprintf(w, "Company: %s\n", m.Company)
	fmt.Fprintf(w, "Project: %s\n", m.Project)
	fmt.Fprintf(w, "Type: %s\n", m.DocumentType)
	fmt.Fprintf(w, "Industry: %s\n", m.Industry)
	fmt.Fprintf(w, "Author: %s\n", m.Author)
	fmt.Fprintf(w, "Status: %s\n", m.Status)

	s := a.Summary
	fmt.Fprintf(w, "\nContent:\n")
	fmt.Fprintf(w, "  Sections: %d\n", s.SectionsCount)
	fmt.Fprintf(w, "  Financial tables: %d\n", len(a.Financial))
	fmt.Fprintf(w, "  Team members: %d\n", len(a.TeamMembers)+a.MoreTeamMembers)
	fmt.Fprintf(w, "  Total tables: %d\n", s.TablesCount)
	fmt.Fprintf(w, "  Images: %d\n", s.ImagesCount)
	fmt.Fprintf(w, "  Words: %d\n", s.WordCount)

	if len(a.Sections) > 0 {
		fmt.Fprintf(w, "\nSections:\n")
		for i, sec := range a.Sections {
			fmt.Fprintf(w, "  %d. %s (Level %d)\n", i+1, sec.Title, sec.Level)
		}
		if a.MoreSections > 0 {
			fmt.Fprintf(w, "  ... and %d more sections\n", a.MoreSections)
		}
	}

	if len(a.Financial) > 0 {
		fmt.Fprintf(w, "\nFinancial tables:\n")
		for _, fo := range a.Financial {
			fmt.Fprintf(w, "  - %s (%d rows, %s chart)\n", fo.Title, fo.Rows, fo.Chart.Category)
		}
	}

	if len(a.TeamMembers) > 0 {
		fmt.Fprintf(w, "\nTeam (%d members):\n", len(a.TeamMembers)+a.MoreTeamMembers)
		for _, tm := range a.TeamMembers {
			if tm.Title != "" {
				fmt.Fprintf(w, "  - %s - %s\n", tm.Name, tm.Title)
			} else {
				fmt.Fprintf(w, "  - %s\n", tm.Name)
			}
		}
		if a.MoreTeamMembers > 0 {
			fmt.Fprintf(w, "  ... and %d more members\n", a.MoreTeamMembers)
		}
	}
}

func writeBatchSummary(w io.Writer, r *domain.BatchReport) {
	s := r.Summary
	fmt.Fprintf(w, "%s\nPROCESSING SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total jobs: %d\n", s.Total)
	fmt.Fprintf(w, "Completed: %d\n", s.Completed)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Success rate: %.1f%%\n", s.SuccessRate)
	fmt.Fprintf(w, "Total time: %.2f seconds\n", float64(s.TotalDurationMS)/1000)

	var failed []domain.BatchJob
	for _, j := range r.Jobs {
		if j.Status == domain.JobStatusFailed {
			failed = append(failed, j)
		}
	}
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(w, "\nFailed jobs:\n")
	for i, j := range failed {
		if i == maxFailedShown {
			fmt.Fprintf(w, "  ... and %d more\n", len(failed)-maxFailedShown)
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", displayName(j.Ref), j.Error)
	}
}

func displayName(ref string) string {
	if i := strings.LastIndex(ref, "/"); strings.HasPrefix(ref, "s3://") && i >= 0 {
		return ref[i+1:]
	}
	return filepath.Base(ref)
}
