package aggregate

import (
	"errors"

	"hashtrend/internal/datekey"
	"hashtrend/internal/snapshot"
)

// ErrSealed is returned by Ingest once the table has been handed out.
var ErrSealed = errors.New("aggregate table is sealed")

// Aggregator owns the Table while snapshots are ingested.
// It is not safe for concurrent use.
type Aggregator struct {
	hashtags []string
	table    *Table
}

// New returns an Aggregator restricted to hashtags. Duplicates are collapsed.
func New(hashtags []string) *Aggregator {
	return &Aggregator{
		hashtags: Dedupe(hashtags),
		table:    newTable(),
	}
}

// Hashtags returns the requested hashtags in request order.
func (a *Aggregator) Hashtags() []string {
	return append([]string(nil), a.hashtags...)
}

// Ingest records the totals of rec under date.
//
// For every requested hashtag present in rec the cell is overwritten with the
// sum of its sub-term counts, so when two files share a date the one ingested
// last wins. Hashtags missing from rec leave the existing cell untouched. A
// date gets a row only once some requested hashtag is present for it.
func (a *Aggregator) Ingest(date datekey.Key, rec snapshot.Record) error {
	if a.table.sealed {
		return ErrSealed
	}
	for _, tag := range a.hashtags {
		total, ok := rec.Total(tag)
		if !ok {
			continue
		}
		row, exists := a.table.rows[date]
		if !exists {
			row = make(Row)
			a.table.rows[date] = row
		}
		row[tag] = total
	}
	return nil
}

// Table seals the aggregator and returns the finished, read-only table.
func (a *Aggregator) Table() *Table {
	a.table.sealed = true
	return a.table
}

// Dedupe drops repeated hashtags, keeping the first occurrence's position.
func Dedupe(hashtags []string) []string {
	seen := make(map[string]struct{}, len(hashtags))
	out := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
