package sensor

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const export = "Study\tPilot\n" +
	"\n" +
	"Row\tTimeSignal\tGazeX\tGazeY\tTimestamp\n" +
	"1\t900\t10\t20\t12:00:00.900\n" +
	"2\t1000\t11\t21\t12:00:01.000\n" +
	"3\t1500\t\t\t12:00:01.500\n" +
	"footer\tonly\n" +
	"4\t2000\t-1\t-1\t12:00:02.000\n" +
	"5\t2001\t13\t23\t12:00:02.001\n" +
	"6\t1200\t14\t24\t12:00:01.200\n"

func TestReadWindow(t *testing.T) {
	samples, err := ReadWindow(strings.NewReader(export), 1.0, 2.0)
	if err != nil {
		t.Fatalf("ReadWindow: %v", err)
	}

	// 900ms is before the window; 2001ms stops the stream, so the
	// out-of-order 1200ms row after it is never read.
	if len(samples) != 3 {
		t.Fatalf("len(samples) = %d, want 3: %+v", len(samples), samples)
	}

	first := samples[0]
	if first.SessionTime != 1.0 || first.TimeSignal != 1000 {
		t.Errorf("first time = %v (%v ms)", first.SessionTime, first.TimeSignal)
	}
	if first.GazeX != Int(11) || first.GazeY != Int(21) {
		t.Errorf("first gaze = %v, %v", first.GazeX, first.GazeY)
	}
	if first.Timestamp != "12:00:01.000" {
		t.Errorf("Timestamp = %q", first.Timestamp)
	}

	if samples[1].GazeX.Valid || samples[1].GazeY.Valid {
		t.Errorf("empty gaze should be absent, got %+v", samples[1])
	}
	if samples[1].HasGaze() {
		t.Error("HasGaze() should be false for empty gaze")
	}

	last := samples[2]
	if last.SessionTime != 2.0 {
		t.Errorf("end of window should be inclusive, got %v", last.SessionTime)
	}
	if !last.GazeX.Valid || last.HasGaze() {
		t.Errorf("-1 gaze should be present but unknown: %+v", last)
	}
}

func TestReaderMissingColumn(t *testing.T) {
	data := "TimeSignal\tGazeX\tTimestamp\n1\t2\t3\n"
	_, err := ReadWindow(strings.NewReader(data), 0, 10)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("err = %v, want ErrMalformedHeader", err)
	}
	if !strings.Contains(err.Error(), ColumnGazeY) {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReaderNoHeader(t *testing.T) {
	_, err := ReadWindow(strings.NewReader("a\tb\n\n"), 0, 10)
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("err = %v, want ErrNoHeader", err)
	}
}

func TestReaderBadGaze(t *testing.T) {
	data := "TimeSignal\tGazeX\tGazeY\tTimestamp\n1000\t1.5\t2\tt\n"
	_, err := ReadWindow(strings.NewReader(data), 0, 10)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want error on line 2", err)
	}
}

func TestReaderHeader(t *testing.T) {
	r := NewReader(strings.NewReader(export))
	if _, err := r.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{"Row", "TimeSignal", "GazeX", "GazeY", "Timestamp"}
	got := r.Header()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Header() = %v, want %v", got, want)
	}

	n := 1
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		n++
	}
	if n != 6 {
		t.Errorf("read %d samples, want 6", n)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.tsv"), 0, 1)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestOptionalIntString(t *testing.T) {
	if got := Int(42).String(); got != "42" {
		t.Errorf("String() = %q", got)
	}
	if got := (OptionalInt{}).String(); got != "" {
		t.Errorf("absent String() = %q", got)
	}
}
