package classifier

import (
	"strings"

	"bizdoc/internal/domain"
)

const (
	columnSampleRows = 5
	numericRatio     = 0.5
	textRatio        = 0.3
)

// AnalyzeTable infers column roles and the chart category of t. Row 0 is the
// header. LabelColumn is -1 when no column is text-like.
func (r *Rubric) AnalyzeTable(t domain.Table) domain.ChartAnalysis {
	a := domain.ChartAnalysis{LabelColumn: -1, DataColumns: []int{}}
	headers := t.Header()
	if len(t) >= 2 {
		rows := t[1:]
		for i := range headers {
			if columnParseRatio(rows, i) < textRatio && hasColumn(rows, i) {
				a.LabelColumn = i
				break
			}
		}
		for i := range headers {
			if i != a.LabelColumn && hasColumn(rows, i) && columnParseRatio(rows, i) >= numericRatio {
				a.DataColumns = append(a.DataColumns, i)
			}
		}
	}
	a.Category = r.chartCategory(headers, len(a.DataColumns))
	return a
}

func (r *Rubric) chartCategory(headers []string, dataColumns int) domain.ChartCategory {
	joined := strings.ToLower(strings.Join(headers, " "))
	switch {
	case countPresent(joined, r.RevenueKeywords) > 0:
		return domain.ChartRevenue
	case countPresent(joined, r.GrowthKeywords) > 0:
		return domain.ChartGrowth
	case dataColumns >= 2:
		return domain.ChartComparison
	default:
		return domain.ChartGeneric
	}
}

// columnParseRatio is the fraction of the first columnSampleRows rows whose
// cell in column col parses as a number. Rows too short to have the column
// count as non-numeric.
func columnParseRatio(rows [][]string, col int) float64 {
	sampled := sample(rows)
	if len(sampled) == 0 {
		return 0
	}
	parsed := 0
	for _, row := range sampled {
		if col >= len(row) {
			continue
		}
		if _, ok := ParseNumber(row[col]); ok {
			parsed++
		}
	}
	return float64(parsed) / float64(len(sampled))
}

func hasColumn(rows [][]string, col int) bool {
	for _, row := range sample(rows) {
		if col < len(row) {
			return true
		}
	}
	return false
}

func sample(rows [][]string) [][]string {
	if len(rows) > columnSampleRows {
		return rows[:columnSampleRows]
	}
	return rows
}
