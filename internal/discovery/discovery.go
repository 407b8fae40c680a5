// Package discovery resolves the ordered list of snapshot files for a run.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hashtrend/internal/datekey"
)

// DefaultSuffix is the file suffix scanned for in folder mode.
const DefaultSuffix = ".lang"

// Source is an ordered list of inputs plus the date strategy its discovery
// path implies.
type Source struct {
	Paths    []string
	Strategy datekey.Strategy
}

// Paths keeps an explicit list in caller order. Explicit lists carry
// generic MM-DD-YY dates.
func Paths(paths []string) Source {
	return Source{
		Paths:    append([]string(nil), paths...),
		Strategy: datekey.GenericTriplet,
	}
}

// Folder lists the regular files in dir whose names end with suffix, sorted
// lexically. Subdirectories are not descended. Folder inputs carry
// geoTwitterYY-MM-DD dates.
func Folder(dir, suffix string) (Source, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Source{}, fmt.Errorf("scan input folder %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	return Source{Paths: paths, Strategy: datekey.GeoTwitterPrefixed}, nil
}

// WithStrategy returns a copy of s using strategy instead of the implied one.
func (s Source) WithStrategy(strategy datekey.Strategy) Source {
	s.Strategy = strategy
	return s
}
