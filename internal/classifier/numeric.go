package classifier

import (
	"math"
	"strconv"
	"strings"
)

var numericStripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	",", "",
	"%", "",
)

// ParseNumber parses a table cell as a number after removing currency
// symbols, thousands separators and percent signs. "1,234.50%" parses as
// 1234.5; "N/A", NaN and infinities do not parse. Chart consumers
// recomputing values from FinancialData.TableData must use this function to
// stay consistent with the statistics computed here.
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(numericStripper.Replace(cell))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
