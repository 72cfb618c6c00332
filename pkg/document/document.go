// Package document pairs one on-screen document's word geometry with its
// verified, human-corrected transcription and measures gaze-to-word distances.
//
// The transcription, not the raw OCR, defines which words a document has.
// Each transcription line is matched to a geometry line by exact string
// equality; lines without a match (OCR errors) yield unknown distances.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/sensor"
)

// Options controls how a Document resolves and measures words
type Options struct {
	TranscriptDir string      // Directory holding verified transcriptions
	Metric        hocr.Metric // Point-to-box distance metric
	Matching      MatchMode   // Transcription-to-geometry line matching
}

// Distance is a gaze-to-word distance in pixels that may be unknown
type Distance struct {
	Pixels float64
	Valid  bool
}

// Document is one on-screen document
type Document struct {
	TransitionTime    float64 // Seconds since session start when the document appeared
	SourcePath        string  // Geometry markup file
	TranscriptionPath string  // Verified transcription file
	Lines             []hocr.Line

	opts       Options
	transcript []transcriptLine
	words      []string
}

// transcriptLine is one line of the verified transcription with its geometry match
type transcriptLine struct {
	text   string
	tokens []string
	match  int // index into Lines, -1 when unmatched
}

// Open parses the geometry markup at sourcePath and loads the transcription it names
func Open(sourcePath string, transitionTime float64, opts Options) (*Document, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read geometry: %w", err)
	}
	markup, err := hocr.ParseMarkup(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geometry %s: %w", sourcePath, err)
	}
	if markup.Filename == "" {
		return nil, fmt.Errorf("geometry %s: root element has no filename", sourcePath)
	}

	transcriptionPath := filepath.Join(opts.TranscriptDir, markup.Filename)
	lines, err := readTranscript(transcriptionPath)
	if err != nil {
		return nil, err
	}

	return newDocument(sourcePath, transitionTime, transcriptionPath, markup, lines, opts), nil
}

// New builds a Document from already parsed geometry and transcription text
func New(markup hocr.Markup, transcription string, transitionTime float64, opts Options) *Document {
	return newDocument("", transitionTime, "", markup, splitTranscript(transcription), opts)
}

func newDocument(sourcePath string, transitionTime float64, transcriptionPath string,
	markup hocr.Markup, lines []string, opts Options) *Document {

	if opts.Metric == "" {
		opts.Metric = hocr.MetricLegacy
	}
	if opts.Matching == "" {
		opts.Matching = MatchFirst
	}

	d := &Document{
		TransitionTime:    transitionTime,
		SourcePath:        sourcePath,
		TranscriptionPath: transcriptionPath,
		Lines:             markup.Lines,
		opts:              opts,
	}
	d.transcript = matchLines(lines, d.Lines, opts.Matching)
	for _, tl := range d.transcript {
		d.words = append(d.words, tl.tokens...)
	}
	return d
}

// ID is the geometry file name, used as the frame identifier in the output
func (d *Document) ID() string {
	return filepath.Base(d.SourcePath)
}

// Words returns the transcription's tokens in order.
// The returned slice is shared and must not be modified.
func (d *Document) Words() []string {
	return d.words
}

// MatchedLines reports how many transcription lines found a geometry line
func (d *Document) MatchedLines() (matched, total int) {
	for _, tl := range d.transcript {
		if tl.match >= 0 {
			matched++
		}
	}
	return matched, len(d.transcript)
}

// WordDistances measures the distance from the gaze point to every transcription
// word. The result always has len(Words()) entries. Distances are unknown for
// every word when either coordinate is missing, and for the words of any
// transcription line that has no geometry line.
func (d *Document) WordDistances(x, y sensor.OptionalInt) []Distance {
	out := make([]Distance, 0, len(d.words))
	known := x.Known() && y.Known()

	for _, tl := range d.transcript {
		if !known || tl.match < 0 {
			out = append(out, make([]Distance, len(tl.tokens))...)
			continue
		}
		for _, px := range d.Lines[tl.match].Distances(float64(x.Value), float64(y.Value), d.opts.Metric) {
			out = append(out, Distance{Pixels: px, Valid: true})
		}
	}
	return out
}

// Extent returns the normalized rectangle covering the document's geometry
func (d *Document) Extent() (minX, maxX, minY, maxY float64) {
	return hocr.Markup{Lines: d.Lines}.Extent()
}
