package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdoc/internal/domain"
	"bizdoc/internal/parser"
)

func TestExtractTables(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.Table
	}{
		{
			name:  "standard table with separator",
			input: "| A | B |\n|:---|---:|\n| 1 | 2 |",
			want:  []domain.Table{{{"A", "B"}, {"1", "2"}}},
		},
		{
			name:  "no outer pipes",
			input: "A | B | C\n1 | 2 | 3",
			want:  []domain.Table{{{"A", "B", "C"}, {"1", "2", "3"}}},
		},
		{
			name:  "blank line splits blocks",
			input: "| A | B |\n\n| C | D |",
			want:  []domain.Table{{{"A", "B"}}, {{"C", "D"}}},
		},
		{
			name:  "single pipe is not a row",
			input: "a | b\n| x | y |",
			want:  []domain.Table{{{"x", "y"}}},
		},
		{
			name:  "adjacent pipes only",
			input: "||||",
			want:  []domain.Table{},
		},
		{
			name:  "separator-only block is skipped",
			input: "| --- | --- |\n| :-: | --- |",
			want:  []domain.Table{},
		},
		{
			name:  "inner empty cells are kept",
			input: "| A |  | C |",
			want:  []domain.Table{{{"A", "", "C"}}},
		},
		{
			name:  "no tables",
			input: "# Heading\n\nplain text",
			want:  []domain.Table{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.ExtractTables(lines(tt.input)))
		})
	}
}

func TestExtractTables_SourceOrder(t *testing.T) {
	got := parser.ExtractTables(lines("# T\n| first | x |\ntext\n| second | y |\n| more | z |"))

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0][0][0])
	assert.Equal(t, domain.Table{{"second", "y"}, {"more", "z"}}, got[1])
}
