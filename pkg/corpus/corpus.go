// Package corpus holds the documents shown during a session's digital reading
// segment and assigns gaze samples to the document on screen at the time.
//
// Documents are ordered by transition time. Samples, also ordered by time, are
// assigned in a single monotonic pass: the cursor moves to the next document once
// the sample time reaches that document's transition (less a small tolerance) and
// never moves back.
package corpus

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/sensor"
	"github.com/gardar/gazepair/pkg/session"
)

// DefaultTolerance is how early, in seconds, a sample may precede a transition
// and still be assigned to the incoming document.
const DefaultTolerance = 0.05

// Options configures corpus construction
type Options struct {
	SegmentLabel   string           // Segment whose transitions define the documents
	XMLDir         string           // Geometry directory, relative to the session directory
	CorrectTextDir string           // Transcription directory, relative to the session directory
	Tolerance      float64          // Transition tolerance in seconds
	Columns        ColumnPolicy     // How differing document word lists are handled
	Document       document.Options // Metric and matching; TranscriptDir is filled in
}

// DefaultOptions returns the layout used by the recording tools
func DefaultOptions() Options {
	return Options{
		SegmentLabel:   session.DigitalReading,
		XMLDir:         "xml",
		CorrectTextDir: "correct_text",
		Tolerance:      DefaultTolerance,
		Columns:        ColumnsStrict,
	}
}

// Corpus is the ordered set of documents for one session
type Corpus struct {
	Documents []*document.Document
	Dir       string
	Segment   session.Segment

	opts Options
}

// Assignment pairs a sample with the index of the document it was read against
type Assignment struct {
	Sample   sensor.Sample
	Document int
}

// FrameName names the screen frame of a transition: MM-SS, both parts zero
// padded, from the whole minutes and remaining whole seconds.
func FrameName(transition float64) string {
	minutes := int(transition / 60)
	seconds := int(transition) - minutes*60
	return fmt.Sprintf("%02d-%02d", minutes, seconds)
}

// GeometryPath returns the geometry file for a transition
func GeometryPath(xmlDir string, transition float64) string {
	return filepath.Join(xmlDir, FrameName(transition)+".xml")
}

// New builds one document per transition of the session's reading segment
func New(sess *session.Session, opts Options) (*Corpus, error) {
	if opts.SegmentLabel == "" {
		opts.SegmentLabel = session.DigitalReading
	}
	if opts.Columns == "" {
		opts.Columns = ColumnsStrict
	}

	seg, err := sess.Segment(opts.SegmentLabel)
	if err != nil {
		return nil, err
	}
	if len(seg.Transitions) == 0 {
		return nil, fmt.Errorf("session %s: segment %q has no transitions", sess.Name, seg.Part)
	}

	xmlDir := filepath.Join(sess.Dir, opts.XMLDir)
	docOpts := opts.Document
	docOpts.TranscriptDir = filepath.Join(sess.Dir, opts.CorrectTextDir)

	c := &Corpus{Dir: sess.Dir, Segment: seg, opts: opts}
	for _, t := range seg.Transitions {
		doc, err := document.Open(GeometryPath(xmlDir, t), t, docOpts)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sess.Name, err)
		}
		matched, total := doc.MatchedLines()
		slog.Debug("loaded document", "id", doc.ID(), "transition", t,
			"words", len(doc.Words()), "matched_lines", matched, "lines", total)
		c.Documents = append(c.Documents, doc)
	}
	return c, nil
}

// FromDocuments builds a corpus from documents already ordered by transition time
func FromDocuments(dir string, docs []*document.Document, opts Options) *Corpus {
	if opts.Columns == "" {
		opts.Columns = ColumnsStrict
	}
	return &Corpus{Documents: docs, Dir: dir, opts: opts}
}

// AssignRows assigns each sample to a document. Samples must be in time order.
func (c *Corpus) AssignRows(samples []sensor.Sample) []Assignment {
	assignments := make([]Assignment, 0, len(samples))
	index := 0
	for _, s := range samples {
		for index < len(c.Documents)-1 && c.Documents[index+1].TransitionTime-c.opts.Tolerance <= s.SessionTime {
			index++
		}
		assignments = append(assignments, Assignment{Sample: s, Document: index})
	}
	return assignments
}

// ComputeRow measures a sample against the document at documentIndex
func (c *Corpus) ComputeRow(s sensor.Sample, documentIndex int) Row {
	doc := c.Documents[documentIndex]
	return Row{
		GazeX:       s.GazeX,
		GazeY:       s.GazeY,
		SessionTime: s.SessionTime,
		ClockTime:   s.Timestamp,
		FrameTime:   doc.ID(),
		Distances:   doc.WordDistances(s.GazeX, s.GazeY),
	}
}
