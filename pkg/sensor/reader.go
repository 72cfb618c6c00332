package sensor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Reader streams samples from a tab-delimited sensor export
type Reader struct {
	csv     *csv.Reader
	header  map[string]int
	columns []string
	width   int // number of fields a row needs to hold every required column
}

// NewReader creates a Reader over tab-delimited sensor data
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return &Reader{csv: cr}
}

// Header returns the column names in file order once the header has been read
func (r *Reader) Header() []string {
	return append([]string(nil), r.columns...)
}

// Read returns the next sample. It returns io.EOF at the end of the stream.
func (r *Reader) Read() (Sample, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) && r.header == nil {
				return Sample{}, ErrNoHeader
			}
			return Sample{}, err
		}
		if len(record) < minFields {
			continue
		}

		if r.header == nil {
			if err := r.setHeader(record); err != nil {
				return Sample{}, err
			}
			continue
		}

		line, _ := r.csv.FieldPos(0)
		if len(record) < r.width {
			slog.Debug("skipping short sensor row", "line", line, "fields", len(record))
			continue
		}
		sample, err := r.parse(record)
		if err != nil {
			return Sample{}, fmt.Errorf("sensor line %d: %w", line, err)
		}
		return sample, nil
	}
}

// setHeader validates the header row up front so that a missing column fails
// before any sample is read.
func (r *Reader) setHeader(record []string) error {
	header := make(map[string]int, len(record))
	for i, name := range record {
		header[strings.TrimSpace(name)] = i
	}

	var missing []string
	width := 0
	for _, col := range []string{ColumnTimeSignal, ColumnGazeX, ColumnGazeY, ColumnTimestamp} {
		i, ok := header[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		if i+1 > width {
			width = i + 1
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column(s) %s", ErrMalformedHeader, strings.Join(missing, ", "))
	}

	r.header = header
	r.columns = record
	r.width = width
	return nil
}

func (r *Reader) parse(record []string) (Sample, error) {
	field := func(col string) string {
		return record[r.header[col]]
	}

	ms, err := strconv.ParseFloat(strings.TrimSpace(field(ColumnTimeSignal)), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColumnTimeSignal, err)
	}
	x, err := parseOptionalInt(field(ColumnGazeX))
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColumnGazeX, err)
	}
	y, err := parseOptionalInt(field(ColumnGazeY))
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColumnGazeY, err)
	}

	return Sample{
		TimeSignal:  ms,
		SessionTime: ms / 1000,
		GazeX:       x,
		GazeY:       y,
		Timestamp:   field(ColumnTimestamp),
	}, nil
}

func parseOptionalInt(s string) (OptionalInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptionalInt{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return OptionalInt{}, err
	}
	return Int(v), nil
}

// ReadWindow collects the samples whose session time lies in [start, end].
// Samples before start are skipped and reading stops at the first sample past end.
func ReadWindow(r io.Reader, start, end float64) ([]Sample, error) {
	reader := NewReader(r)
	var samples []Sample
	for {
		s, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if s.SessionTime < start {
			continue
		}
		if s.SessionTime > end {
			break
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadFile opens a sensor export and reads the samples in [start, end]
func ReadFile(path string, start, end float64) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sensor data: %w", err)
	}
	defer f.Close()

	samples, err := ReadWindow(f, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to read sensor data %s: %w", path, err)
	}
	return samples, nil
}
