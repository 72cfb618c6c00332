package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/sensor"
)

// Fixed leading output columns
var fixedColumns = []string{"GazeX", "GazeY", "SessionTime", "ClockTime", "FrameTime"}

// ErrInconsistentColumns is returned when documents of one session have
// different word lists and the strict column policy is in effect.
var ErrInconsistentColumns = errors.New("documents do not share the same words")

// ColumnPolicy decides the word columns of the output
type ColumnPolicy string

const (
	// ColumnsStrict requires every document to have the first document's word list
	ColumnsStrict ColumnPolicy = "strict"
	// ColumnsFirst labels the columns with the first document's words regardless;
	// rows of other documents may then differ in length.
	ColumnsFirst ColumnPolicy = "first"
)

// ParseColumnPolicy validates a policy name, defaulting to ColumnsStrict when empty
func ParseColumnPolicy(name string) (ColumnPolicy, error) {
	switch ColumnPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", ColumnsStrict:
		return ColumnsStrict, nil
	case ColumnsFirst:
		return ColumnsFirst, nil
	}
	return "", fmt.Errorf("unknown column policy %q (want %q or %q)", name, ColumnsStrict, ColumnsFirst)
}

// Row is one output line
type Row struct {
	GazeX       sensor.OptionalInt
	GazeY       sensor.OptionalInt
	SessionTime float64
	ClockTime   string
	FrameTime   string // Document identifier
	Distances   []document.Distance
}

// Record formats the row as CSV fields; absent values are empty fields
func (r Row) Record() []string {
	record := make([]string, 0, len(fixedColumns)+len(r.Distances))
	record = append(record,
		r.GazeX.String(),
		r.GazeY.String(),
		formatFloat(r.SessionTime),
		r.ClockTime,
		r.FrameTime,
	)
	for _, d := range r.Distances {
		if !d.Valid {
			record = append(record, "")
			continue
		}
		record = append(record, formatFloat(d.Pixels))
	}
	return record
}

// Header returns the output header: the fixed columns followed by the first
// document's words.
func (c *Corpus) Header() ([]string, error) {
	if len(c.Documents) == 0 {
		return nil, errors.New("corpus has no documents")
	}
	words := c.Documents[0].Words()

	if c.opts.Columns != ColumnsFirst {
		for _, doc := range c.Documents[1:] {
			if !equalWords(words, doc.Words()) {
				return nil, fmt.Errorf("%w: %s has %d words, %s has %d",
					ErrInconsistentColumns, c.Documents[0].ID(), len(words), doc.ID(), len(doc.Words()))
			}
		}
	}

	header := make([]string, 0, len(fixedColumns)+len(words))
	header = append(header, fixedColumns...)
	return append(header, words...), nil
}

// Emit writes the header and one row per sample, in sample order
func (c *Corpus) Emit(w io.Writer, samples []sensor.Sample) error {
	header, err := c.Header()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range c.AssignRows(samples) {
		if err := writer.Write(c.ComputeRow(a.Sample, a.Document).Record()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile emits the rows for samples to path, replacing any existing file
func (c *Corpus) WriteFile(path string, samples []sensor.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return c.Emit(f, samples)
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// formatFloat writes floats the way earlier analysis outputs did: whole numbers
// keep a trailing ".0" and very large or small magnitudes use exponent form.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
