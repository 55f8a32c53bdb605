package classifier

import "bizdoc/internal/domain"

// Summary statistic keys.
const (
	StatMin    = "min"
	StatMax    = "max"
	StatAvg    = "avg"
	StatTotal  = "total"
	StatGrowth = "growth"
)

// SummaryStats computes min, max, avg and total over the second column of
// every data row of t, plus the percentage growth from the first to the last
// value when there are at least two. Cells that do not parse are skipped. The
// map is empty when no cell parses.
func SummaryStats(t domain.Table) map[string]float64 {
	stats := map[string]float64{}
	if len(t) < 2 {
		return stats
	}

	var values []float64
	for _, row := range t[1:] {
		if len(row) < 2 {
			continue
		}
		if v, ok := ParseNumber(row[1]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return stats
	}

	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	stats[StatMin] = lo
	stats[StatMax] = hi
	stats[StatTotal] = sum
	stats[StatAvg] = sum / float64(len(values))

	if len(values) > 1 {
		first, last := values[0], values[len(values)-1]
		if first != 0 {
			stats[StatGrowth] = (last - first) / first * 100
		} else {
			stats[StatGrowth] = 0
		}
	}
	return stats
}
