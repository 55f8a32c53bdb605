package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizdoc/internal/classifier"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1,234.50%", 1234.50, true},
		{"$1,000", 1000, true},
		{" 42 ", 42, true},
		{"-3.5", -3.5, true},
		{"€2,500", 2500, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"$", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"12abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := classifier.ParseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
