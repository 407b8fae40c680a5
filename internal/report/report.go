// Package report prints a run's extracted data and final series as terminal tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"hashtrend/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	border  = lipgloss.Color("#2a3850")
	warning = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#6b7686")
)

// Reporter writes tables to w with locale-aware number grouping.
type Reporter struct {
	w       io.Writer
	printer *message.Printer

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	absent lipgloss.Style
	notice lipgloss.Style
}

// New returns a Reporter writing to w. An unparseable locale falls back to English.
func New(w io.Writer, locale string) *Reporter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Reporter{
		w:       w,
		printer: message.NewPrinter(tag),
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		absent:  lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		notice:  lipgloss.NewStyle().Foreground(warning),
	}
}

func (r *Reporter) number(n int64) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Reporter) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
}

// Extracted prints the aggregate table as stored: one row per axis date,
// "-" where a hashtag was not present in that date's snapshot.
func (r *Reporter) Extracted(res *pipeline.Result) {
	fmt.Fprintln(r.w, r.title.Render("Extracted Data"))
	if res.Series.Empty() {
		fmt.Fprintln(r.w, r.absent.Render("(no dates with the requested hashtags)"))
		return
	}

	t := r.newTable(append([]string{"Date"}, res.Series.Hashtags...)...)
	for _, d := range res.Series.Axis {
		row := []string{d.Text}
		for _, tag := range res.Series.Hashtags {
			if n, ok := res.Aggregate.Get(d, tag); ok {
				row = append(row, r.number(n))
			} else {
				row = append(row, "-")
			}
		}
		t.Row(row...)
	}
	fmt.Fprintln(r.w, t.String())
}

// Final prints each hashtag's aligned series with its total and peak.
func (r *Reporter) Final(res *pipeline.Result) {
	fmt.Fprintln(r.w, r.title.Render("Final Data for Plotting"))
	t := r.newTable("Hashtag", "Points", "Total", "Peak", "Series")
	for _, tag := range res.Series.Hashtags {
		counts := res.Series.Series(tag)
		var total, peak int64
		peakAt := "-"
		vals := make([]string, len(counts))
		for i, n := range counts {
			total += n
			if n > peak {
				peak = n
				peakAt = res.Series.Axis[i].Text
			}
			vals[i] = r.number(n)
		}
		t.Row(tag, r.number(int64(len(counts))), r.number(total), peakAt, "["+strings.Join(vals, ", ")+"]")
	}
	fmt.Fprintln(r.w, t.String())
}

// Skipped lists inputs that did not contribute, if any.
func (r *Reporter) Skipped(res *pipeline.Result) {
	if len(res.Skipped) == 0 {
		return
	}
	fmt.Fprintln(r.w, r.title.Render("Skipped Inputs"))
	t := r.newTable("File", "Reason")
	for _, s := range res.Skipped {
		t.Row(s.Path, string(s.Reason))
	}
	fmt.Fprintln(r.w, t.String())
}

// Run prints every section for res.
func (r *Reporter) Run(res *pipeline.Result) {
	r.Extracted(res)
	r.Final(res)
	r.Skipped(res)
}

// Notice prints a highlighted one-line message.
func (r *Reporter) Notice(format string, args ...interface{}) {
	fmt.Fprintln(r.w, r.notice.Render(fmt.Sprintf(format, args...)))
}
