package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	fserrors "github.com/wexinc/fightsongs/internal/errors"
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json"; empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fserrors.InvalidParameter("output", s, "want text or json")
	}
}

// Writer renders reports in one format.
type Writer struct {
	w      io.Writer
	format Format
	p      *message.Printer
}

// NewWriter creates a report writer.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, p: message.NewPrinter(language.English)}
}

func (w *Writer) json(v any) error {
	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (w *Writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(w.w, 0, 0, 2, ' ', 0)
}

// message prints the placeholder text of an empty report.
func (w *Writer) message(msg string) error {
	_, err := fmt.Fprintln(w.w, msg)
	return err
}

// Decades writes the decade report: one row per decade, one column per
// selected series.
func (w *Writer) Decades(r DecadesReport) error {
	if w.format == FormatJSON {
		return w.json(r)
	}
	if !r.Available {
		return w.message(r.Message)
	}

	tw := w.table()
	header := []string{"DECADE"}
	for _, s := range r.Series {
		header = append(header, strings.ToUpper(s.Label))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i, d := range r.Decades {
		row := []string{decadeLabel(d)}
		for _, s := range r.Series {
			row = append(row, s.Values[i].Format())
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := w.p.Fprintf(w.w, "\n%d decades from %s\n", len(r.Decades), decadeLabel(r.MinDecade))
	return err
}

// Conferences writes the top-K conference table and the radar message, if
// any.
func (w *Writer) Conferences(r ConferencesReport) error {
	if w.format == FormatJSON {
		return w.json(r)
	}
	if !r.Available {
		return w.message(r.Message)
	}

	tw := w.table()
	header := []string{"", "CONFERENCE", "SONGS"}
	for _, t := range r.Dimensions {
		header = append(header, strings.ToUpper(t.ShortLabel()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, c := range r.Conferences {
		mark := " "
		if c.Selected {
			mark = "*"
		}
		row := []string{mark, c.Conference, w.p.Sprintf("%d", c.Count)}
		for _, t := range r.Dimensions {
			row = append(row, c.Values[t].Format())
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Message != "" {
		fmt.Fprintln(w.w)
		return w.message(r.Message)
	}
	return nil
}

// Authorship writes one row per trope with the two groups side by side.
func (w *Writer) Authorship(r AuthorshipReport) error {
	if w.format == FormatJSON {
		return w.json(r)
	}
	if !r.Available {
		return w.message(r.Message)
	}

	fmt.Fprintln(w.w, r.Title)
	tw := w.table()
	header := []string{"TROPE"}
	for _, g := range r.Groups {
		header = append(header, w.p.Sprintf("%s (n=%d)", strings.ToUpper(g.Label), g.Count))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i, t := range r.Tropes {
		row := []string{t.Label()}
		for _, g := range r.Groups {
			row = append(row, g.Values[i].Format())
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Context writes the historical note for a decade.
func (w *Writer) Context(r ContextReport) error {
	if w.format == FormatJSON {
		return w.json(r)
	}
	_, err := fmt.Fprintf(w.w, "%s\n%s\n", decadeLabel(r.Decade), r.Text)
	return err
}

// decadeLabel renders 1920 as "1920s". Years are never digit-grouped.
func decadeLabel(d int) string {
	return strconv.Itoa(d) + "s"
}
