package scoring

import "math"

// Normalize clamps value into [min, max] and rescales it to [0, 1].
// Bounds may be given in either order. Non-finite inputs or an empty range yield 0.
func Normalize(value, min, max float64) float64 {
	if !isFinite(value) || !isFinite(min) || !isFinite(max) {
		return 0
	}
	if min == max {
		return 0
	}
	lower := math.Min(min, max)
	upper := math.Max(min, max)
	return (clamp(value, lower, upper) - lower) / (upper - lower)
}

// ScoreNormalizedPE scores a P/E against its industry median on a 0-25 scale.
// Ratios at or below 0.5x the median earn full credit, 1.5x and above earn none.
func ScoreNormalizedPE(pe, industryMedianPE *float64) int {
	if !positive(pe) || !positive(industryMedianPE) {
		return 0
	}
	ratio := *pe / *industryMedianPE
	return roundHalfUp((1 - Normalize(ratio, 0.5, 1.5)) * 25)
}

// PercentChange returns the move from previous to current in percent, or 0
// when previous is zero or not finite.
func PercentChange(current, previous float64) float64 {
	if previous == 0 || !isFinite(previous) {
		return 0
	}
	return (current - previous) / previous * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// value returns the dereferenced field and whether it is usable.
func value(p *float64) (float64, bool) {
	if p == nil || !isFinite(*p) {
		return 0, false
	}
	return *p, true
}

func positive(p *float64) bool {
	v, ok := value(p)
	return ok && v > 0
}
