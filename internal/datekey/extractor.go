package datekey

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// ErrNoMatch is returned when a filename does not carry a date in the
// active strategy's pattern. Callers skip the file.
var ErrNoMatch = errors.New("filename does not match date pattern")

var (
	tripletPattern    = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{2})`)
	geoTwitterPattern = regexp.MustCompile(`geoTwitter(\d{2})-(\d{2})-(\d{2})`)
)

// Extractor turns filenames into Keys using a single strategy for the whole run.
type Extractor struct {
	strategy Strategy
}

// NewExtractor returns an Extractor bound to strategy.
func NewExtractor(strategy Strategy) *Extractor {
	return &Extractor{strategy: strategy}
}

// Strategy returns the strategy the extractor was built with.
func (e *Extractor) Strategy() Strategy {
	return e.strategy
}

// Extract parses a Key from the base name of path.
func (e *Extractor) Extract(path string) (Key, error) {
	name := filepath.Base(path)
	switch e.strategy {
	case GenericTriplet:
		return extractTriplet(name)
	case GeoTwitterPrefixed:
		return extractGeoTwitter(name)
	default:
		return Key{}, fmt.Errorf("unsupported strategy %s", e.strategy)
	}
}

// extractTriplet keeps the literal (MM, DD, YY) order as the sort tuple.
// Keys from different years therefore interleave; this matches how the
// snapshot archives have always been ordered and is left as is.
func extractTriplet(name string) (Key, error) {
	m := tripletPattern.FindStringSubmatch(name)
	if m == nil {
		return Key{}, ErrNoMatch
	}
	parts, err := atoiParts(m[1:])
	if err != nil {
		return Key{}, err
	}
	return Key{Text: m[0], Parts: parts}, nil
}

func extractGeoTwitter(name string) (Key, error) {
	m := geoTwitterPattern.FindStringSubmatch(name)
	if m == nil {
		return Key{}, ErrNoMatch
	}
	text := fmt.Sprintf("20%s-%s-%s", m[1], m[2], m[3])
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return Key{}, fmt.Errorf("%w: %s is not a calendar date", ErrNoMatch, text)
	}
	parts, err := atoiParts(m[1:])
	if err != nil {
		return Key{}, err
	}
	parts[0] += 2000
	return Key{Text: text, Parts: parts}, nil
}

func atoiParts(groups []string) ([3]int, error) {
	var parts [3]int
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			return parts, fmt.Errorf("parse date component %q: %w", g, err)
		}
		parts[i] = n
	}
	return parts, nil
}
