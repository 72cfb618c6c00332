package gdocai

import (
	"errors"
	"math"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/gazepair/pkg/hocr"
)

// ErrNoPages is returned when a Document AI response holds no page
var ErrNoPages = errors.New("document AI response has no pages")

// MarkupFromProto converts the first page of a Document AI response into
// geometry markup with pixel coordinates. Tokens are grouped under the line
// whose text span contains them.
func MarkupFromProto(doc *documentaipb.Document, filename string) (hocr.Markup, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return hocr.Markup{}, ErrNoPages
	}
	page := doc.Pages[0]
	markup := hocr.Markup{Filename: filename}

	for _, line := range page.Lines {
		ocrLine := hocr.Line{BBox: boundingBox(line.Layout, page.Dimension)}

		for _, token := range page.Tokens {
			if !isElementInParent(token.Layout, line.Layout) {
				continue
			}
			ocrLine.Words = append(ocrLine.Words, hocr.Word{
				Text: cleanTokenText(textFromLayout(token.Layout, doc.Text)),
				BBox: boundingBox(token.Layout, page.Dimension),
			})
		}
		markup.Lines = append(markup.Lines, ocrLine)
	}
	return markup, nil
}

// boundingBox converts a layout's polygon to a pixel box.
// Normalized vertices (0-1) are scaled by the page dimension; absolute
// vertices are used when no normalized ones are present.
func boundingBox(layout *documentaipb.Document_Page_Layout, dimension *documentaipb.Document_Page_Dimension) hocr.BoundingBox {
	if layout == nil || layout.BoundingPoly == nil {
		return hocr.BoundingBox{}
	}

	var xs, ys []float64
	poly := layout.BoundingPoly
	if len(poly.NormalizedVertices) > 0 && dimension != nil {
		for _, v := range poly.NormalizedVertices {
			xs = append(xs, math.Round(float64(v.X)*float64(dimension.Width)))
			ys = append(ys, math.Round(float64(v.Y)*float64(dimension.Height)))
		}
	} else {
		for _, v := range poly.Vertices {
			xs = append(xs, float64(v.X))
			ys = append(ys, float64(v.Y))
		}
	}
	if len(xs) == 0 {
		return hocr.BoundingBox{}
	}

	minX, maxX := span(xs)
	minY, maxY := span(ys)
	return hocr.NewBoundingBox(minX, maxX, minY, maxY)
}

func span(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

// isElementInParent checks whether an element's text span lies within its parent's
func isElementInParent(elementLayout, parentLayout *documentaipb.Document_Page_Layout) bool {
	if elementLayout == nil || parentLayout == nil ||
		elementLayout.TextAnchor == nil || parentLayout.TextAnchor == nil ||
		len(elementLayout.TextAnchor.TextSegments) == 0 || len(parentLayout.TextAnchor.TextSegments) == 0 {
		return false
	}

	elementStart := elementLayout.TextAnchor.TextSegments[0].StartIndex
	elementEnd := elementLayout.TextAnchor.TextSegments[0].EndIndex
	parentStart := parentLayout.TextAnchor.TextSegments[0].StartIndex
	parentEnd := parentLayout.TextAnchor.TextSegments[0].EndIndex

	return elementStart >= parentStart && elementEnd <= parentEnd
}
