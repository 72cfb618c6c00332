// Package overlay renders an aligned session as a PDF for visual inspection.
//
// Each document of the corpus becomes one page in screen pixel units. Word boxes
// are drawn on a "Words" layer and the gaze samples assigned to the document on
// a "Gaze" layer, so either can be toggled in a layer aware PDF reader. Samples
// without usable gaze coordinates are not drawn.
//
// Main Functions:
//
// - Render: Produces the PDF bytes for a corpus and its samples
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/gazepair/pkg/corpus"
	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/sensor"
)

// Render draws every document of c with the samples assigned to it
func Render(c *corpus.Corpus, samples []sensor.Sample, config Config) ([]byte, error) {
	if c == nil || len(c.Documents) == 0 {
		return nil, errors.New("corpus has no documents")
	}
	if config.DotRadius <= 0 {
		return nil, fmt.Errorf("dot radius must be positive, got %v", config.DotRadius)
	}

	byDocument := make([][]sensor.Sample, len(c.Documents))
	for _, a := range c.AssignRows(samples) {
		if a.Sample.HasGaze() {
			byDocument[a.Document] = append(byDocument[a.Document], a.Sample)
		}
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Gaze overlay %s", c.Dir), true)

	encodingErrors := 0
	wordCount := 0
	for i, doc := range c.Documents {
		page := newPage(doc, byDocument[i], config.Margin)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.width, Ht: page.height})

		pdf.SetFont(config.Font.Name, "B", config.Font.Size)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(config.Margin/2, config.Margin/2+config.Font.Size/2,
			fmt.Sprintf("%s  t=%.2fs  samples=%d", doc.ID(), doc.TransitionTime, len(byDocument[i])))

		words, errs := drawWordLayer(pdf, doc, page, i+1, config)
		wordCount += words
		encodingErrors += errs

		drawGazeLayer(pdf, byDocument[i], page, i+1, config)
	}

	if wordCount > 0 && encodingErrors > wordCount/10 {
		return nil, fmt.Errorf("character encoding issues in %d of %d words", encodingErrors, wordCount)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// page maps screen coordinates onto a PDF page
type page struct {
	offsetX, offsetY float64
	width, height    float64
}

// newPage sizes a page to hold the document's geometry and its gaze samples
func newPage(doc *document.Document, samples []sensor.Sample, margin float64) page {
	minX, maxX, minY, maxY := doc.Extent()
	empty := minX == maxX && minY == maxY
	if empty {
		minX, maxX, minY, maxY = 0, fallbackWidth, 0, fallbackHeight
	}
	for _, s := range samples {
		x, y := float64(s.GazeX.Value), float64(s.GazeY.Value)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return page{
		offsetX: margin - minX,
		offsetY: margin - minY,
		width:   maxX - minX + 2*margin,
		height:  maxY - minY + 2*margin,
	}
}

// transform moves a screen point onto the page
func (p page) transform(x, y float64) (float64, float64) {
	return x + p.offsetX, y + p.offsetY
}
