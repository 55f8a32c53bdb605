package classifier

import (
	"fmt"
	"strings"

	"bizdoc/internal/domain"
)

// titleLookback is how many lines above a table are searched for its title.
const titleLookback = 3

// FinancialKeywordHits returns the distinct financial keywords found across
// all cells of t, in rubric order.
func (r *Rubric) FinancialKeywordHits(t domain.Table) []string {
	text := tableText(t)
	var hits []string
	for _, kw := range r.FinancialKeywords {
		if strings.Contains(text, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// IsFinancial reports whether at least MinFinancialKeywords distinct
// financial keywords occur in t.
func (r *Rubric) IsFinancial(t domain.Table) bool {
	if len(t) == 0 {
		return false
	}
	return len(r.FinancialKeywordHits(t)) >= r.MinFinancialKeywords
}

// ContainsFinancialKeyword reports whether line mentions any financial keyword.
func (r *Rubric) ContainsFinancialKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range r.FinancialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// InferTitle picks a title for the n-th (1-based) financial table from the
// lines that precede it. Only the last titleLookback lines are considered and
// the closest non-empty line mentioning a financial keyword wins.
func (r *Rubric) InferTitle(preceding []string, n int) string {
	if len(preceding) > titleLookback {
		preceding = preceding[len(preceding)-titleLookback:]
	}
	for i := len(preceding) - 1; i >= 0; i-- {
		line := strings.TrimSpace(preceding[i])
		if line == "" || !r.ContainsFinancialKeyword(line) {
			continue
		}
		if title := strings.TrimSpace(strings.TrimLeft(line, "# ")); title != "" {
			return title
		}
	}
	return fmt.Sprintf("Financial Data %d", n)
}

// NewFinancialData wraps an accepted table.
func NewFinancialData(title string, t domain.Table) domain.FinancialData {
	data := t.Clone()
	return domain.FinancialData{
		Title:     title,
		Headers:   append([]string{}, data.Header()...),
		TableData: data,
		Currency:  domain.DefaultCurrency,
		Period:    domain.DefaultPeriod,
	}
}

func tableText(t domain.Table) string {
	var sb strings.Builder
	for _, row := range t {
		for _, cell := range row {
			sb.WriteString(strings.ToLower(cell))
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
