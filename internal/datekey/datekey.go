// Package datekey derives sortable date keys from snapshot filenames.
//
// Two strategies are supported. GenericTriplet reads the first "NN-NN-NN"
// triplet in a filename as (MM, DD, YY) and sorts on that literal tuple, so
// ordering is only correct within a single year. GeoTwitterPrefixed reads
// "geoTwitterYY-MM-DD" and produces a calendar-ordered "20YY-MM-DD" key.
package datekey

import (
	"cmp"
	"fmt"
	"strings"
)

// Strategy selects how a DateKey is extracted from a filename.
type Strategy int

const (
	// GenericTriplet matches a bare MM-DD-YY triplet anywhere in the name.
	GenericTriplet Strategy = iota
	// GeoTwitterPrefixed matches geoTwitterYY-MM-DD.
	GeoTwitterPrefixed
)

// String returns the flag/config spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case GenericTriplet:
		return "generic"
	case GeoTwitterPrefixed:
		return "geotwitter"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy parses the flag/config spelling of a strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "triplet":
		return GenericTriplet, nil
	case "geotwitter", "geo":
		return GeoTwitterPrefixed, nil
	default:
		return 0, fmt.Errorf("unknown date pattern %q (valid: generic, geotwitter)", s)
	}
}

// Key is the canonical sort key for one snapshot date.
// Text is the display label; Parts is the tuple the key sorts on.
type Key struct {
	Text  string
	Parts [3]int
}

// Compare orders keys by Parts, falling back to Text so the order is total.
func (k Key) Compare(other Key) int {
	for i := range k.Parts {
		if c := cmp.Compare(k.Parts[i], other.Parts[i]); c != 0 {
			return c
		}
	}
	return strings.Compare(k.Text, other.Text)
}

func (k Key) String() string {
	return k.Text
}
