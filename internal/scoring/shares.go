package scoring

import (
	"math"
	"sort"

	"ats-checker/internal/keywords"
)

// shares converts weights into percentages with one decimal that sum to
// exactly 100, using the largest remainder method on tenths of a percent.
func shares(weights []float64) []float64 {
	out := make([]float64, len(weights))
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return out
	}

	type part struct {
		idx       int
		tenths    int
		remainder float64
	}
	parts := make([]part, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / total * 1000
		floor := math.Floor(exact)
		parts[i] = part{idx: i, tenths: int(floor), remainder: exact - floor}
		assigned += int(floor)
	}

	sort.SliceStable(parts, func(a, b int) bool {
		return parts[a].remainder > parts[b].remainder
	})
	for i := 0; assigned < 1000; i = (i + 1) % len(parts) {
		parts[i].tenths++
		assigned++
	}

	for _, p := range parts {
		out[p.idx] = float64(p.tenths) / 10
	}
	return out
}

func sortCategories(in []keywords.Category) {
	sort.Slice(in, func(i, j int) bool { return in[i] < in[j] })
}
