package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizdoc/internal/classifier"
	"bizdoc/internal/domain"
)

func TestSummaryStats_RevenueTable(t *testing.T) {
	tbl := domain.Table{{"Quarter", "Revenue"}, {"Q1", "$1,000"}, {"Q2", "$2,000"}}

	stats := classifier.SummaryStats(tbl)

	assert.Equal(t, map[string]float64{
		classifier.StatMin:    1000,
		classifier.StatMax:    2000,
		classifier.StatAvg:    1500,
		classifier.StatTotal:  3000,
		classifier.StatGrowth: 100,
	}, stats)
}

func TestSummaryStats_SkipsUnparseableRows(t *testing.T) {
	tbl := domain.Table{
		{"Year", "Profit"},
		{"2022", "N/A"},
		{"2023", "50%"},
		{"2024"},
		{"2025", "25"},
	}

	stats := classifier.SummaryStats(tbl)

	assert.Equal(t, 25.0, stats[classifier.StatMin])
	assert.Equal(t, 50.0, stats[classifier.StatMax])
	assert.Equal(t, 75.0, stats[classifier.StatTotal])
	assert.Equal(t, 37.5, stats[classifier.StatAvg])
	assert.Equal(t, -50.0, stats[classifier.StatGrowth])
}

func TestSummaryStats_Edges(t *testing.T) {
	t.Run("nothing parses", func(t *testing.T) {
		assert.Empty(t, classifier.SummaryStats(domain.Table{{"a", "b"}, {"x", "N/A"}}))
	})

	t.Run("header only", func(t *testing.T) {
		assert.Empty(t, classifier.SummaryStats(domain.Table{{"a", "b"}}))
	})

	t.Run("single value has no growth", func(t *testing.T) {
		stats := classifier.SummaryStats(domain.Table{{"a", "b"}, {"x", "5"}})
		assert.Len(t, stats, 4)
		assert.NotContains(t, stats, classifier.StatGrowth)
	})

	t.Run("zero first value yields zero growth", func(t *testing.T) {
		stats := classifier.SummaryStats(domain.Table{{"a", "b"}, {"x", "0"}, {"y", "10"}})
		assert.Equal(t, 0.0, stats[classifier.StatGrowth])
	})
}
