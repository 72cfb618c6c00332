package overlay

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/gazepair/pkg/document"
	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/sensor"
)

// drawWordLayer draws the document's word boxes, and optionally their text,
// onto a per-page layer. It returns the number of words drawn and how many of
// them could not be encoded for the PDF core fonts.
func drawWordLayer(pdf *fpdf.Fpdf, doc *document.Document, p page, pageNum int, config Config) (words, encodingErrors int) {
	layer := pdf.AddLayer(fmt.Sprintf("Words (Page %d)", pageNum), true)
	pdf.BeginLayer(layer)
	defer pdf.EndLayer()

	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)
	pdf.SetLineWidth(0.5)

	for _, line := range doc.Lines {
		pdf.SetDrawColor(180, 180, 180)
		drawBox(pdf, line.BBox, p)

		pdf.SetDrawColor(0, 90, 200)
		for _, word := range line.Words {
			drawBox(pdf, word.BBox, p)
			words++
			if config.ShowText && word.Text != "" {
				if !drawWordText(pdf, word, p, config.Font) {
					encodingErrors++
				}
			}
		}
	}
	return words, encodingErrors
}

func drawBox(pdf *fpdf.Fpdf, b hocr.BoundingBox, p page) {
	minX, maxX, minY, maxY := b.Extent()
	x, y := p.transform(minX, minY)
	pdf.Rect(x, y, maxX-minX, maxY-minY, "D")
}

// drawWordText renders the word scaled to its box width.
// It reports false when the text had to be written without ISO-8859-1 encoding.
func drawWordText(pdf *fpdf.Fpdf, word hocr.Word, p page, fontConfig FontConfig) bool {
	minX, maxX, minY, _ := word.BBox.Extent()
	x, y := p.transform(minX, minY)
	wordWidth := maxX - minX

	ok := true
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		ok = false
		latin1 = word.Text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 && wordWidth > 0 {
		pdf.SetFontSize(fontConfig.Size * wordWidth / strWidth)
	}
	fontSize, _ := pdf.GetFontSize()

	pdf.SetTextColor(60, 60, 60)
	pdf.Text(x, y+fontSize*fontConfig.AscentRatio, latin1)
	pdf.SetFontSize(fontConfig.Size)
	return ok
}

// drawGazeLayer draws one dot per sample onto a per-page layer
func drawGazeLayer(pdf *fpdf.Fpdf, samples []sensor.Sample, p page, pageNum int, config Config) {
	layer := pdf.AddLayer(fmt.Sprintf("Gaze (Page %d)", pageNum), true)
	pdf.BeginLayer(layer)
	defer pdf.EndLayer()

	pdf.SetFillColor(220, 30, 30)
	pdf.SetAlpha(0.5, "Normal")
	for _, s := range samples {
		x, y := p.transform(float64(s.GazeX.Value), float64(s.GazeY.Value))
		pdf.Circle(x, y, config.DotRadius, "F")
	}
	pdf.SetAlpha(1, "Normal")
}
