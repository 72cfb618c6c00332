package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrNoGeometry is returned when markup holds neither a legacy <root> element
// nor any hOCR lines.
var ErrNoGeometry = errors.New("no geometry found in markup")

var charsetPattern = regexp.MustCompile(`(?i)(?:charset|encoding)\s*=\s*["']?([a-zA-Z0-9_\-:.]+)`)

// ParseMarkup converts raw geometry markup into a structured Markup.
// Legacy markup (a <root> element with <line> and <word> children) is preferred;
// when no <root> element exists, hOCR ocr_line/ocrx_word elements are read instead.
func ParseMarkup(data []byte) (Markup, error) {
	decoded, err := decodeMarkup(data)
	if err != nil {
		return Markup{}, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return Markup{}, fmt.Errorf("failed to parse markup: %w", err)
	}

	if root := findElement(doc, "root"); root != nil {
		return processRoot(root)
	}
	return processHOCR(doc)
}

// ParseBoundingBox reads a legacy bbox attribute: four numbers in the order
// right, top, left, bottom.
func ParseBoundingBox(s string) (BoundingBox, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return BoundingBox{}, fmt.Errorf("bbox %q: want 4 values, got %d", s, len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = n
	}
	right, top, left, bottom := v[0], v[1], v[2], v[3]
	return NewBoundingBox(left, right, top, bottom), nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from an hOCR title string.
// hOCR writes x1 y1 x2 y2, i.e. left top right bottom.
// Returns nil if extraction fails
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var v [4]float64
	for i := range v {
		n, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		v[i] = n
	}
	result := NewBoundingBox(v[0], v[2], v[1], v[3])
	return &result
}

// decodeMarkup converts declared non UTF-8 charsets to UTF-8
func decodeMarkup(data []byte) ([]byte, error) {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := charsetPattern.FindSubmatch(head)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(string(m[1]))
	if label == "utf-8" || label == "utf8" {
		return data, nil
	}

	var enc encoding.Encoding = charmap.ISO8859_1
	if e, err := htmlindex.Get(label); err == nil {
		enc = e
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", label, err)
	}
	return decoded, nil
}

// processRoot extracts the filename and every <line> of a legacy root element
func processRoot(root *html.Node) (Markup, error) {
	markup := Markup{Filename: getAttrVal(root, "filename")}

	var err error
	walk(root, func(n *html.Node) bool {
		if err != nil {
			return false
		}
		if n.Type != html.ElementNode || n.Data != "line" {
			return true
		}
		var line Line
		line, err = processLine(n)
		if err == nil {
			markup.Lines = append(markup.Lines, line)
		}
		return false
	})
	if err != nil {
		return Markup{}, err
	}
	return markup, nil
}

// processLine extracts a legacy line and its words
func processLine(n *html.Node) (Line, error) {
	bbox, err := ParseBoundingBox(getAttrVal(n, "bbox"))
	if err != nil {
		return Line{}, fmt.Errorf("line: %w", err)
	}
	line := Line{BBox: bbox}

	walk(n, func(c *html.Node) bool {
		if err != nil {
			return false
		}
		if c == n || c.Type != html.ElementNode || c.Data != "word" {
			return true
		}
		var wordBox BoundingBox
		wordBox, err = ParseBoundingBox(getAttrVal(c, "bbox"))
		if err != nil {
			err = fmt.Errorf("word: %w", err)
			return false
		}
		line.Words = append(line.Words, Word{Text: directTextContent(c), BBox: wordBox})
		// The HTML parser ignores "/>" on unknown elements, so the words after a
		// self-closing <word/> end up nested inside it.
		return true
	})
	if err != nil {
		return Line{}, err
	}
	return line, nil
}

// processHOCR reads Tesseract style hOCR lines and words
func processHOCR(doc *html.Node) (Markup, error) {
	var markup Markup
	found := false

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		class := getAttrVal(n, "class")
		switch {
		case strings.Contains(class, "ocr_page") && markup.Filename == "":
			if image, ok := ParseTitle(getAttrVal(n, "title"))["image"]; ok && len(image) > 0 {
				markup.Filename = transcriptionName(strings.Join(image, " "))
			}
			return true
		case strings.Contains(class, "ocr_line") || strings.Contains(class, "ocrx_line"):
			found = true
			markup.Lines = append(markup.Lines, processHOCRLine(n))
			return false
		}
		return true
	})

	if !found {
		return Markup{}, ErrNoGeometry
	}
	return markup, nil
}

func processHOCRLine(n *html.Node) Line {
	var line Line
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		line.BBox = *bbox
	}
	walk(n, func(c *html.Node) bool {
		if c == n || c.Type != html.ElementNode || !strings.Contains(getAttrVal(c, "class"), "ocrx_word") {
			return true
		}
		word := Word{Text: extractTextContent(c)}
		if bbox := ParseBoundingBoxFromTitle(getAttrVal(c, "title")); bbox != nil {
			word.BBox = *bbox
		}
		line.Words = append(line.Words, word)
		return false
	})
	return line
}

// transcriptionName maps an hOCR page image to the transcription file it pairs with
func transcriptionName(image string) string {
	base := filepath.Base(strings.Trim(image, `"'`))
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
}

// walk visits n and its descendants depth first; visit returns false to skip children
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(text.String())
}

// directTextContent gets the text of a node's own text children
func directTextContent(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
