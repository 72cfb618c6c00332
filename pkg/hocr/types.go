package hocr

// Markup represents one parsed geometry source
// Corresponds to the legacy <root> element
type Markup struct {
	Filename string // Transcription filename from the root element
	Lines    []Line // Lines in document order
}

// Words returns every word of the markup in document order
func (m Markup) Words() []Word {
	var words []Word
	for _, line := range m.Lines {
		words = append(words, line.Words...)
	}
	return words
}

// Line represents a line of text
// Corresponds to the legacy <line> element or hOCR class 'ocr_line'
type Line struct {
	BBox  BoundingBox // Line coordinates
	Words []Word      // Words in this line, empty ones included
}

// Word is a recognized word with bounding box
// Corresponds to the legacy <word> element or hOCR class 'ocrx_word'
type Word struct {
	Text string      // The text content, possibly empty or holding several tokens
	BBox BoundingBox // Word coordinates
}

// BoundingBox represents a rectangle on screen in pixel coordinates.
// The sides are stored exactly as the source provides them; no ordering
// between Left/Right or Top/Bottom is assumed.
type BoundingBox struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewBoundingBox creates a bounding box from its four sides
func NewBoundingBox(left, right, top, bottom float64) BoundingBox {
	return BoundingBox{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
	}
}
