package pairing

import (
	"fmt"

	"github.com/gardar/gazepair/pkg/corpus"
	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/session"
)

// Config holds user options for pairing a session's gaze data with its words
type Config struct {
	XMLDir         string  // Geometry directory inside the session directory
	CorrectTextDir string  // Verified transcription directory inside the session directory
	OutputFile     string  // Output CSV name inside the session directory
	SegmentLabel   string  // Metadata part holding the on-screen reading
	Tolerance      float64 // Seconds a sample may precede a transition
	Metric         string  // "legacy" or "rect"
	Matching       string  // "first" or "positional"
	Columns        string  // "strict" or "first"
}

// DefaultConfig returns a config with the layout the recording tools produce
func DefaultConfig() Config {
	return Config{
		XMLDir:         "xml",
		CorrectTextDir: "correct_text",
		OutputFile:     "eye_tracking_words.csv",
		SegmentLabel:   session.DigitalReading,
		Tolerance:      corpus.DefaultTolerance,
		Metric:         string(hocr.MetricLegacy),
		Matching:       string(document.MatchFirst),
		Columns:        string(corpus.ColumnsStrict),
	}
}

// corpusOptions validates the config and converts it to corpus options
func (c Config) corpusOptions() (corpus.Options, error) {
	metric, err := hocr.ParseMetric(c.Metric)
	if err != nil {
		return corpus.Options{}, err
	}
	matching, err := document.ParseMatchMode(c.Matching)
	if err != nil {
		return corpus.Options{}, err
	}
	columns, err := corpus.ParseColumnPolicy(c.Columns)
	if err != nil {
		return corpus.Options{}, err
	}
	if c.Tolerance < 0 {
		return corpus.Options{}, fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance)
	}
	if c.OutputFile == "" {
		return corpus.Options{}, fmt.Errorf("output file name is empty")
	}

	return corpus.Options{
		SegmentLabel:   c.SegmentLabel,
		XMLDir:         c.XMLDir,
		CorrectTextDir: c.CorrectTextDir,
		Tolerance:      c.Tolerance,
		Columns:        columns,
		Document: document.Options{
			Metric:   metric,
			Matching: matching,
		},
	}, nil
}
