package hocr

import (
	"fmt"
	"math"
	"strings"
)

// Metric selects how the distance between a point and a bounding box is measured
type Metric string

const (
	// MetricLegacy takes, per axis, the distance to the closer of the two sides.
	// A point inside the box is therefore not at distance zero; this matches the
	// distances of earlier analyses and is the default.
	MetricLegacy Metric = "legacy"
	// MetricRect is the Euclidean distance from the point to the rectangle,
	// zero anywhere inside it.
	MetricRect Metric = "rect"
)

// ParseMetric validates a metric name, defaulting to MetricLegacy when empty
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case "", MetricLegacy:
		return MetricLegacy, nil
	case MetricRect:
		return MetricRect, nil
	}
	return "", fmt.Errorf("unknown distance metric %q (want %q or %q)", name, MetricLegacy, MetricRect)
}

// Distance measures the distance from (x, y) to the box
func (m Metric) Distance(b BoundingBox, x, y float64) float64 {
	if m == MetricRect {
		return b.rectDistance(x, y)
	}
	return b.legacyDistance(x, y)
}

func (b BoundingBox) legacyDistance(x, y float64) float64 {
	dx := math.Min(math.Abs(b.Left-x), math.Abs(b.Right-x))
	dy := math.Min(math.Abs(b.Top-y), math.Abs(b.Bottom-y))
	return math.Sqrt(dx*dx + dy*dy)
}

func (b BoundingBox) rectDistance(x, y float64) float64 {
	minX, maxX, minY, maxY := b.Extent()
	dx := math.Max(0, math.Max(minX-x, x-maxX))
	dy := math.Max(0, math.Max(minY-y, y-maxY))
	return math.Sqrt(dx*dx + dy*dy)
}

// Extent returns the box normalized to min/max on each axis
func (b BoundingBox) Extent() (minX, maxX, minY, maxY float64) {
	minX, maxX = math.Min(b.Left, b.Right), math.Max(b.Left, b.Right)
	minY, maxY = math.Min(b.Top, b.Bottom), math.Max(b.Top, b.Bottom)
	return minX, maxX, minY, maxY
}

// DistanceTo returns the legacy distance from (x, y) to the word's box
func (w Word) DistanceTo(x, y float64) float64 {
	return w.BBox.legacyDistance(x, y)
}

// Tokens splits the word text on whitespace. OCR occasionally assigns several
// tokens to a single box, and an empty word has no tokens.
func (w Word) Tokens() []string {
	return strings.Fields(w.Text)
}

// String joins the line's non-empty words with single spaces.
// This is the key used to match a line against the verified transcription.
func (l Line) String() string {
	parts := make([]string, 0, len(l.Words))
	for _, word := range l.Words {
		if len(word.Text) > 0 {
			parts = append(parts, word.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Distances returns one distance per token of the line: each word's distance is
// repeated once for every whitespace token in its text.
func (l Line) Distances(x, y float64, metric Metric) []float64 {
	var out []float64
	for _, word := range l.Words {
		d := metric.Distance(word.BBox, x, y)
		for range word.Tokens() {
			out = append(out, d)
		}
	}
	return out
}

// Extent returns the smallest normalized rectangle covering every line and word
func (m Markup) Extent() (minX, maxX, minY, maxY float64) {
	first := true
	grow := func(b BoundingBox) {
		x0, x1, y0, y1 := b.Extent()
		if first {
			minX, maxX, minY, maxY = x0, x1, y0, y1
			first = false
			return
		}
		minX, maxX = math.Min(minX, x0), math.Max(maxX, x1)
		minY, maxY = math.Min(minY, y0), math.Max(maxY, y1)
	}
	for _, line := range m.Lines {
		grow(line.BBox)
		for _, word := range line.Words {
			grow(word.BBox)
		}
	}
	return minX, maxX, minY, maxY
}

// ExtractMarkupText renders the markup as plain text, one line per markup line.
// The result has the layout of a verified transcription file and is a
// starting point for correcting one by hand.
func ExtractMarkupText(m *Markup) string {
	var builder strings.Builder
	for _, line := range m.Lines {
		builder.WriteString(line.String())
		builder.WriteString("\n")
	}
	return builder.String()
}
