package series

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: json, yaml, csv)", ErrUnknownFormat, s)
	}
}

type document struct {
	Dates    []string       `json:"dates" yaml:"dates"`
	Hashtags []seriesRecord `json:"series" yaml:"series"`
}

type seriesRecord struct {
	Hashtag string  `json:"hashtag" yaml:"hashtag"`
	Counts  []int64 `json:"counts" yaml:"counts,flow"`
}

func (t *Table) document() document {
	doc := document{Dates: t.Axis.Labels()}
	for _, tag := range t.Hashtags {
		doc.Hashtags = append(doc.Hashtags, seriesRecord{Hashtag: tag, Counts: t.Counts[tag]})
	}
	return doc
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t *Table, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t.document()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.document()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	header := append([]string{"date"}, t.Hashtags...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	for i, d := range t.Axis {
		row := make([]string, 0, len(t.Hashtags)+1)
		row = append(row, d.Text)
		for _, tag := range t.Hashtags {
			row = append(row, strconv.FormatInt(t.Counts[tag][i], 10))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("encode csv row %s: %w", d.Text, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
