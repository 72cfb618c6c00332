package pairing

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/session"
)

const sensorData = "Recording\tpilot\n" +
	"TimeSignal\tGazeX\tGazeY\tTimestamp\n" +
	"500\t1\t1\t09:00:00.500\n" +
	"1000\t0\t0\t09:00:01.000\n" +
	"1500\t\t\t09:00:01.500\n" +
	"x\ty\n" +
	"2000\t70\t20\t09:00:02.000\n" +
	"3500\t5\t5\t09:00:03.500\n"

// writeSession lays out a session directory with one "cat dog" document
func writeSession(t *testing.T, root, name string) {
	t.Helper()
	dir := filepath.Join(root, name)
	for _, sub := range []string{"xml", "correct_text"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	m := hocr.Markup{Filename: "pets.txt", Lines: []hocr.Line{{
		BBox: hocr.NewBoundingBox(0, 70, 0, 20),
		Words: []hocr.Word{
			{Text: "cat", BBox: hocr.NewBoundingBox(0, 30, 0, 20)},
			{Text: "dog", BBox: hocr.NewBoundingBox(40, 70, 0, 20)},
		},
	}}}
	xml, err := hocr.GenerateMarkup(&m)
	if err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		filepath.Join("xml", "00-01.xml"):         xml,
		filepath.Join("correct_text", "pets.txt"): "cat dog\n",
		"eyes.tsv": sensorData,
		session.MetadataFile: "sensor_data_file: eyes.tsv\n" +
			"segments:\n" +
			"  - part: digital reading\n" +
			"    start_time: 1\n" +
			"    end_time: 3\n" +
			"    transitions: [1]\n",
	}
	for rel, body := range files {
		if err := os.WriteFile(filepath.Join(dir, rel), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPair(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "pilot")

	sess, err := session.Load(root, "pilot")
	if err != nil {
		t.Fatalf("session.Load: %v", err)
	}
	res, err := Pair(sess, DefaultConfig())
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if res.Samples != 3 || res.Documents != 1 {
		t.Errorf("result = %+v", res)
	}

	got, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "GazeX,GazeY,SessionTime,ClockTime,FrameTime,cat,dog\n" +
		"0,0,1.0,09:00:01.000,00-01.xml,0.0,40.0\n" +
		",,1.5,09:00:01.500,00-01.xml,,\n" +
		"70,20,2.0,09:00:02.000,00-01.xml,40.0,0.0\n"
	if string(got) != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPairIdempotent(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "pilot")
	sess, err := session.Load(root, "pilot")
	if err != nil {
		t.Fatal(err)
	}

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		res, err := Pair(sess, DefaultConfig())
		if err != nil {
			t.Fatalf("Pair run %d: %v", i+1, err)
		}
		data, err := os.ReadFile(res.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("two runs produced different output")
	}
}

func TestPairMissingSensorFile(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "pilot")
	if err := os.Remove(filepath.Join(root, "pilot", "eyes.tsv")); err != nil {
		t.Fatal(err)
	}
	sess, err := session.Load(root, "pilot")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Pair(sess, DefaultConfig()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestPairInvalidConfig(t *testing.T) {
	sess := &session.Session{Name: "s"}
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Metric = "cosine" },
		func(c *Config) { c.Matching = "fuzzy" },
		func(c *Config) { c.Columns = "union" },
		func(c *Config) { c.Tolerance = -1 },
		func(c *Config) { c.OutputFile = "" },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := Pair(sess, cfg); err == nil || !strings.Contains(err.Error(), "invalid config") {
			t.Errorf("config %+v: err = %v", cfg, err)
		}
	}
}

func TestPairAll(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "first")
	writeSession(t, root, "second")

	results, err := PairAll(context.Background(), root, []string{"first", "second"}, DefaultConfig(), 2)
	if err != nil {
		t.Fatalf("PairAll: %v", err)
	}
	if len(results) != 2 || results[0].Session != "first" || results[1].Session != "second" {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if _, err := os.Stat(r.OutputPath); err != nil {
			t.Errorf("missing output for %s: %v", r.Session, err)
		}
	}

	if _, err := PairAll(context.Background(), root, []string{"first", "absent"}, DefaultConfig(), 1); err == nil {
		t.Error("expected error for a missing session")
	}
}
