// Package export writes the financial tables of a parsed document as CSV or
// XLSX.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"bizdoc/internal/domain"
)

// ParseFormat maps a format name to an ExportFormat.
func ParseFormat(name string) (domain.ExportFormat, error) {
	format := domain.ExportFormat(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := domain.ExportContentTypes[format]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}
	return format, nil
}

// Write exports the financial data of doc to w in the given format.
func Write(w io.Writer, doc *domain.ParsedDocument, format domain.ExportFormat) error {
	if len(doc.FinancialData) == 0 {
		return domain.ErrNoFinancialData
	}
	switch format {
	case domain.ExportCSV:
		return WriteCSV(w, doc)
	case domain.ExportXLSX:
		return WriteXLSX(w, doc)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// chartFor returns the chart analysis paired with FinancialData[i].
func chartFor(doc *domain.ParsedDocument, i int) domain.ChartAnalysis {
	if i < len(doc.Charts) {
		return doc.Charts[i]
	}
	return domain.ChartAnalysis{LabelColumn: -1, Category: domain.ChartGeneric}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_title}_{YYYY-MM-DD}.{format}, using
// "document" when the title sanitizes to nothing.
func BuildFilename(title string, format domain.ExportFormat, now time.Time) string {
	sanitized := SanitizeFilename(title)
	if sanitized == "" {
		sanitized = "document"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}
