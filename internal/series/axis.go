// Package series turns a finished aggregate table into aligned per-hashtag series.
package series

import (
	"errors"
	"slices"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/datekey"
)

// ErrUnsealed is returned when the axis is requested before ingestion finished.
var ErrUnsealed = errors.New("date axis requested before ingestion finished")

// Axis is the ascending, duplicate-free list of dates on the x-axis.
type Axis []datekey.Key

// Labels returns the display text of every axis date.
func (a Axis) Labels() []string {
	out := make([]string, len(a))
	for i, k := range a {
		out[i] = k.Text
	}
	return out
}

// BuildAxis returns the sorted union of every date in table.
func BuildAxis(table *aggregate.Table) (Axis, error) {
	if !table.Sealed() {
		return nil, ErrUnsealed
	}
	dates := table.Dates()
	slices.SortFunc(dates, datekey.Key.Compare)
	return Axis(slices.CompactFunc(dates, func(a, b datekey.Key) bool {
		return a.Compare(b) == 0
	})), nil
}
