package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/sensor"
	"github.com/gardar/gazepair/pkg/session"
)

func catDog(transition float64) *document.Document {
	m := hocr.Markup{Filename: "pets.txt", Lines: []hocr.Line{{
		BBox: hocr.NewBoundingBox(0, 70, 0, 20),
		Words: []hocr.Word{
			{Text: "cat", BBox: hocr.NewBoundingBox(0, 30, 0, 20)},
			{Text: "dog", BBox: hocr.NewBoundingBox(40, 70, 0, 20)},
		},
	}}}
	return document.New(m, "cat dog\n", transition, document.Options{})
}

func sample(t float64, x, y sensor.OptionalInt) sensor.Sample {
	return sensor.Sample{TimeSignal: t * 1000, SessionTime: t, GazeX: x, GazeY: y, Timestamp: "clk"}
}

func TestGeometryPath(t *testing.T) {
	tests := []struct {
		transition float64
		want       string
	}{
		{0, "00-00.xml"},
		{5, "00-05.xml"},
		{65, "01-05.xml"},
		{125.7, "02-05.xml"},
		{3600, "60-00.xml"},
	}
	for _, tt := range tests {
		if got := GeometryPath("xml", tt.transition); got != filepath.Join("xml", tt.want) {
			t.Errorf("GeometryPath(%v) = %q, want %q", tt.transition, got, tt.want)
		}
		if got := FrameName(tt.transition) + ".xml"; got != tt.want {
			t.Errorf("FrameName(%v) = %q", tt.transition, got)
		}
	}
}

func TestAssignRowsMonotonic(t *testing.T) {
	c := FromDocuments("", []*document.Document{catDog(0), catDog(10), catDog(20)}, DefaultOptions())

	times := []float64{0, 9.94, 9.96, 15, 19.96, 25, 100}
	want := []int{0, 0, 1, 1, 2, 2, 2}

	var samples []sensor.Sample
	for _, tm := range times {
		samples = append(samples, sample(tm, sensor.Int(1), sensor.Int(1)))
	}
	got := c.AssignRows(samples)
	for i := range want {
		if got[i].Document != want[i] {
			t.Errorf("sample at %v assigned to %d, want %d", times[i], got[i].Document, want[i])
		}
	}
}

func TestAssignRowsNeverRewinds(t *testing.T) {
	c := FromDocuments("", []*document.Document{catDog(0), catDog(10)}, DefaultOptions())
	samples := []sensor.Sample{
		sample(12, sensor.Int(1), sensor.Int(1)),
		sample(3, sensor.Int(1), sensor.Int(1)),
	}
	got := c.AssignRows(samples)
	if got[1].Document != 1 {
		t.Errorf("late sample after transition assigned to %d, want 1", got[1].Document)
	}
}

func TestEmitCatDog(t *testing.T) {
	doc := catDog(0)
	c := FromDocuments("", []*document.Document{doc}, DefaultOptions())

	samples := []sensor.Sample{
		sample(1.5, sensor.Int(0), sensor.Int(0)),
		sample(2, sensor.OptionalInt{}, sensor.Int(3)),
	}

	var buf bytes.Buffer
	if err := c.Emit(&buf, samples); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	id := doc.ID()
	want := "GazeX,GazeY,SessionTime,ClockTime,FrameTime,cat,dog\n" +
		"0,0,1.5,clk," + id + ",0.0,40.0\n" +
		",3,2.0,clk," + id + ",,\n"
	if buf.String() != want {
		t.Errorf("Emit output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestHeaderColumnPolicy(t *testing.T) {
	other := document.New(hocr.Markup{}, "a different text\n", 10, document.Options{})
	docs := []*document.Document{catDog(0), other}

	strict := FromDocuments("", docs, DefaultOptions())
	if _, err := strict.Header(); !errors.Is(err, ErrInconsistentColumns) {
		t.Errorf("strict Header() err = %v, want ErrInconsistentColumns", err)
	}

	opts := DefaultOptions()
	opts.Columns = ColumnsFirst
	first := FromDocuments("", docs, opts)
	header, err := first.Header()
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if got := strings.Join(header, ","); got != "GazeX,GazeY,SessionTime,ClockTime,FrameTime,cat,dog" {
		t.Errorf("Header() = %q", got)
	}

	var buf bytes.Buffer
	samples := []sensor.Sample{sample(11, sensor.Int(0), sensor.Int(0))}
	if err := first.Emit(&buf, samples); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if n := len(strings.Split(lines[1], ",")); n != 8 {
		t.Errorf("ragged row has %d fields, want 8", n)
	}
}

func TestParseColumnPolicy(t *testing.T) {
	if p, err := ParseColumnPolicy(""); err != nil || p != ColumnsStrict {
		t.Errorf("ParseColumnPolicy(\"\") = %q, %v", p, err)
	}
	if p, err := ParseColumnPolicy("first"); err != nil || p != ColumnsFirst {
		t.Errorf("ParseColumnPolicy(first) = %q, %v", p, err)
	}
	if _, err := ParseColumnPolicy("union"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{12, "12.0"},
		{-3, "-3.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{40.01249804748511, "40.01249804748511"},
		{1e-05, "1e-05"},
		{1e16, "1e+16"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFromSession(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"xml", "correct_text"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}
	m := hocr.Markup{Filename: "pets.txt", Lines: []hocr.Line{{
		Words: []hocr.Word{{Text: "cat"}, {Text: "dog"}},
	}}}
	xml, err := hocr.GenerateMarkup(&m)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"00-05.xml", "01-10.xml"} {
		if err := os.WriteFile(filepath.Join(dir, "xml", name), []byte(xml), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "correct_text", "pets.txt"), []byte("cat dog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sess := &session.Session{Name: "s", Dir: dir, Metadata: []session.Segment{
		{Part: session.DigitalReading, StartTime: 5, EndTime: 90, Transitions: []float64{5, 70}},
	}}
	c, err := New(sess, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(c.Documents) != 2 || c.Documents[1].ID() != "01-10.xml" || c.Documents[1].TransitionTime != 70 {
		t.Errorf("documents = %+v", c.Documents)
	}

	sess.Metadata[0].Transitions = []float64{5, 70, 130}
	if _, err := New(sess, DefaultOptions()); err == nil {
		t.Error("expected error for missing geometry file 02-10.xml")
	}
}
