package parser

import (
	"bizdoc/internal/classifier"
	"bizdoc/internal/domain"
)

// extractFinancial wraps every financial table block and analyzes it for
// charting. The two returned slices are parallel.
func extractFinancial(r *classifier.Rubric, lines []string, blocks []tableBlock) ([]domain.FinancialData, []domain.ChartAnalysis) {
	data := []domain.FinancialData{}
	charts := []domain.ChartAnalysis{}
	for _, b := range blocks {
		if !r.IsFinancial(b.rows) {
			continue
		}
		from := b.startLine - 3
		if from < 0 {
			from = 0
		}
		title := r.InferTitle(bodyText(lines[from:b.startLine]), len(data)+1)
		fd := classifier.NewFinancialData(title, b.rows)

		chart := r.AnalyzeTable(fd.TableData)
		chart.Stats = classifier.SummaryStats(fd.TableData)

		data = append(data, fd)
		charts = append(charts, chart)
	}
	return data, charts
}

// bodyText returns a copy of lines with table rows blanked, so a preceding
// table never supplies a title.
func bodyText(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !isTableRow(line) {
			out[i] = line
		}
	}
	return out
}
