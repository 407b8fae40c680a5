// Package aggregate folds per-file snapshot records into one date x hashtag table.
package aggregate

import (
	"hashtrend/internal/datekey"
)

// Row holds the per-hashtag totals recorded for one date.
type Row map[string]int64

// Table maps a date to the totals recorded for it. Only hashtags that were
// present in some snapshot for that date appear in its row; absent cells are
// read as zero through CountOrZero and never materialized.
type Table struct {
	rows   map[datekey.Key]Row
	sealed bool
}

func newTable() *Table {
	return &Table{rows: make(map[datekey.Key]Row)}
}

// Get returns the recorded total for (date, hashtag).
func (t *Table) Get(date datekey.Key, hashtag string) (int64, bool) {
	row, ok := t.rows[date]
	if !ok {
		return 0, false
	}
	n, ok := row[hashtag]
	return n, ok
}

// CountOrZero is the zero-fill read policy: absent cells read as 0.
func (t *Table) CountOrZero(date datekey.Key, hashtag string) int64 {
	n, _ := t.Get(date, hashtag)
	return n
}

// Dates returns every date with a row, in no particular order.
func (t *Table) Dates() []datekey.Key {
	dates := make([]datekey.Key, 0, len(t.rows))
	for d := range t.rows {
		dates = append(dates, d)
	}
	return dates
}

// Row returns a copy of the row for date.
func (t *Table) Row(date datekey.Key) (Row, bool) {
	row, ok := t.rows[date]
	if !ok {
		return nil, false
	}
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out, true
}

// Len returns the number of dates in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Sealed reports whether ingestion has finished.
func (t *Table) Sealed() bool {
	return t.sealed
}

// Observed reports whether hashtag was recorded on any date.
func (t *Table) Observed(hashtag string) bool {
	for _, row := range t.rows {
		if _, ok := row[hashtag]; ok {
			return true
		}
	}
	return false
}

// Snapshot returns a plain nested-map copy of the table, keyed by date text.
func (t *Table) Snapshot() map[string]map[string]int64 {
	out := make(map[string]map[string]int64, len(t.rows))
	for d, row := range t.rows {
		cp := make(map[string]int64, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[d.Text] = cp
	}
	return out
}
