package series

import (
	"hashtrend/internal/aggregate"
)

// Table is the exported artifact: one count per axis position per hashtag.
type Table struct {
	Axis     Axis
	Hashtags []string
	Counts   map[string][]int64
}

// Export aligns every requested hashtag to axis, zero-filling absent cells.
func Export(agg *aggregate.Table, axis Axis, hashtags []string) *Table {
	hashtags = aggregate.Dedupe(hashtags)
	out := &Table{
		Axis:     axis,
		Hashtags: hashtags,
		Counts:   make(map[string][]int64, len(hashtags)),
	}
	for _, tag := range hashtags {
		counts := make([]int64, len(axis))
		for i, d := range axis {
			counts[i] = agg.CountOrZero(d, tag)
		}
		out.Counts[tag] = counts
	}
	return out
}

// Empty reports whether there is no date to plot.
func (t *Table) Empty() bool {
	return len(t.Axis) == 0
}

// Series returns the aligned counts for hashtag.
func (t *Table) Series(hashtag string) []int64 {
	return t.Counts[hashtag]
}
