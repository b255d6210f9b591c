package songs

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	fserrors "github.com/wexinc/fightsongs/internal/errors"
)

// DefaultPath is the data file looked up relative to the working directory.
const DefaultPath = "fight-songs.csv"

var yearPattern = regexp.MustCompile(`\d{4}`)

// Dataset is the immutable result of loading the CSV. It is safe for
// concurrent readers; nothing mutates it after Parse returns.
type Dataset struct {
	records  []Record
	path     string
	version  string
	dropped  int
	loadedAt time.Time
}

// Records returns the normalized records. Callers must not modify the slice.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Path returns the file the dataset was read from.
func (d *Dataset) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Version is a content fingerprint of the source bytes.
func (d *Dataset) Version() string {
	if d == nil {
		return ""
	}
	return d.version
}

// Dropped returns how many rows were skipped for lacking a parseable year.
func (d *Dataset) Dropped() int {
	if d == nil {
		return 0
	}
	return d.dropped
}

// LoadedAt returns when the dataset was parsed.
func (d *Dataset) LoadedAt() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.loadedAt
}

// Available reports whether d holds any records.
func (d *Dataset) Available() bool {
	return d != nil && len(d.records) > 0
}

// FromRecords builds a dataset directly from records. Used by tests and by
// callers that synthesize data.
func FromRecords(records []Record) *Dataset {
	h := sha256.New()
	for _, r := range records {
		fmt.Fprintf(h, "%s|%s|%d|%s|%d|%d", r.School, r.Song, r.Year, r.Conference, r.StudentWriter, r.Contest)
		for _, t := range AllTropes {
			fmt.Fprintf(h, "|%d", r.Trope(t))
		}
		h.Write([]byte{'\n'})
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{
		records:  cp,
		path:     "(memory)",
		version:  hex.EncodeToString(h.Sum(nil)),
		loadedAt: time.Now(),
	}
}

// Load reads and normalizes the CSV at path. A missing, empty or unusable
// file yields a nil dataset and an ErrDataUnavailable error.
func Load(path string) (*Dataset, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fserrors.DataUnavailable(path, err)
	}

	return parse(data, path)
}

// Parse reads and normalizes CSV data from r. name is used in errors and as
// the dataset path.
func Parse(r io.Reader, name string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fserrors.DataUnavailable(name, err)
	}
	return parse(data, name)
}

func parse(data []byte, name string) (*Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fserrors.DataUnavailable(name, errors.New("file is empty"))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fserrors.DataUnavailable(name, fmt.Errorf("reading header: %w", err))
	}
	cols := indexColumns(header)
	if _, ok := cols["year"]; !ok {
		return nil, fserrors.DataUnavailable(name, errors.New(`header has no "year" column`))
	}

	var (
		records []Record
		dropped int
		line    = 1
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fserrors.DataUnavailable(name, fmt.Errorf("line %d: %w", line, err))
		}

		rec, ok := cols.record(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fserrors.DataUnavailable(name, fmt.Errorf("no rows with a valid year (%d dropped)", dropped))
	}

	sum := sha256.Sum256(data)
	return &Dataset{
		records:  records,
		path:     name,
		version:  hex.EncodeToString(sum[:]),
		dropped:  dropped,
		loadedAt: time.Now(),
	}, nil
}

// columns maps a lower-cased header name to its index.
type columns map[string]int

func indexColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) record(row []string) (Record, bool) {
	year, ok := ParseYear(c.get(row, "year"))
	if !ok {
		return Record{}, false
	}

	flags := make(map[Trope]Flag, len(AllTropes))
	for _, t := range AllTropes {
		flags[t] = ParseFlag(c.get(row, string(t)))
	}

	rec := NewRecord(year, flags)
	rec.School = c.get(row, "school")
	rec.Song = c.get(row, "song_name")
	rec.Conference = c.get(row, "conference")
	rec.StudentWriter = ParseFlag(c.get(row, "student_writer"))
	rec.Contest = ParseFlag(c.get(row, "contest"))
	return rec, true
}

// ParseYear extracts the first run of four digits from a free-text year
// field such as "1912" or "c. 1930s".
func ParseYear(s string) (int, bool) {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}
