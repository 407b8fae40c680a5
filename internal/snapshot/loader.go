// Package snapshot reads one day's hashtag count file.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record maps hashtag -> sub-term -> count for a single snapshot file.
type Record map[string]map[string]int64

// Total sums every sub-term count under hashtag. A missing hashtag totals 0.
func (r Record) Total(hashtag string) (int64, bool) {
	terms, ok := r[hashtag]
	if !ok {
		return 0, false
	}
	var sum int64
	for _, n := range terms {
		sum += n
	}
	return sum, true
}

// Load reads path and decodes it into a Record.
// YAML is used for .yaml/.yml files; everything else is treated as JSON.
// Top-level entries that are not a mapping of sub-term to integer are dropped.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	var raw map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
		if err == nil && dec.More() {
			err = fmt.Errorf("unexpected trailing data after top-level object")
		}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("document is not a mapping")}
	}

	return fromRaw(raw), nil
}

func fromRaw(raw map[string]interface{}) Record {
	rec := make(Record, len(raw))
	for hashtag, v := range raw {
		terms, ok := toTerms(v)
		if !ok {
			continue
		}
		rec[hashtag] = terms
	}
	return rec
}

func toTerms(v interface{}) (map[string]int64, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	terms := make(map[string]int64, len(m))
	var sum int64
	for term, cv := range m {
		n, ok := toCount(cv)
		if !ok {
			return nil, false
		}
		// Total must stay representable.
		if sum, ok = addCount(sum, n); !ok {
			return nil, false
		}
		terms[term] = n
	}
	return terms, true
}

func addCount(sum, n int64) (int64, bool) {
	s := sum + n
	if (n > 0 && s < sum) || (n < 0 && s > sum) {
		return 0, false
	}
	return s, true
}

// toCount accepts integer-valued numbers only; 3.0 is 3, 3.5 is rejected.
func toCount(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatCount(f)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		return floatCount(n)
	default:
		return 0, false
	}
}

func floatCount(f float64) (int64, bool) {
	if f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
