package parser

import (
	"strings"

	"bizdoc/internal/domain"
)

// Summarize returns a compact overview of doc. Words are counted over all
// section contents.
func Summarize(doc *domain.ParsedDocument) domain.DocumentSummary {
	words := 0
	for _, s := range doc.Sections {
		words += len(strings.Fields(s.Content))
	}
	return domain.DocumentSummary{
		Title:            doc.Metadata.Title,
		Type:             doc.Metadata.DocumentType,
		Industry:         doc.Metadata.Industry,
		SectionsCount:    len(doc.Sections),
		HasFinancialData: len(doc.FinancialData) > 0,
		HasTeamInfo:      len(doc.TeamMembers) > 0,
		TablesCount:      len(doc.Tables),
		ImagesCount:      len(doc.Images),
		WordCount:        words,
		Status:           doc.Metadata.Status,
	}
}
