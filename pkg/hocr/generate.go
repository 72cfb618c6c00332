package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/net/html"
)

//go:embed templates/markup.tmpl
var templateFS embed.FS

// GenerateMarkup creates legacy geometry markup from the Markup struct
// Uses the embedded template to generate a complete document
func GenerateMarkup(doc *Markup) (string, error) {
	tmpl, err := template.New("markup.tmpl").Funcs(template.FuncMap{
		"escape": html.EscapeString,
		"bbox":   FormatBoundingBox,
	}).ParseFS(templateFS, "templates/markup.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing markup template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering markup template: %w", err)
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

// FormatBoundingBox writes a box in the legacy right, top, left, bottom order
func FormatBoundingBox(b BoundingBox) string {
	values := []float64{b.Right, b.Top, b.Left, b.Bottom}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
