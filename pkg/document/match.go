package document

import (
	"fmt"
	"strings"

	"github.com/gardar/gazepair/pkg/hocr"
)

// MatchMode selects how transcription lines find their geometry line
type MatchMode string

const (
	// MatchFirst pairs a transcription line with the first geometry line whose
	// text is equal. Repeated line text always resolves to the earliest line.
	MatchFirst MatchMode = "first"
	// MatchPositional pairs the Nth transcription line with the Nth geometry
	// line, provided their text is equal.
	MatchPositional MatchMode = "positional"
)

// ParseMatchMode validates a match mode name, defaulting to MatchFirst when empty
func ParseMatchMode(name string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", MatchFirst:
		return MatchFirst, nil
	case MatchPositional:
		return MatchPositional, nil
	}
	return "", fmt.Errorf("unknown line matching %q (want %q or %q)", name, MatchFirst, MatchPositional)
}

// matchLines tokenizes the transcription and resolves each line's geometry line
func matchLines(transcript []string, lines []hocr.Line, mode MatchMode) []transcriptLine {
	keys := make([]string, len(lines))
	first := make(map[string]int, len(lines))
	for i, line := range lines {
		keys[i] = line.String()
		if _, ok := first[keys[i]]; !ok {
			first[keys[i]] = i
		}
	}

	out := make([]transcriptLine, len(transcript))
	for i, text := range transcript {
		tl := transcriptLine{text: text, tokens: strings.Fields(text), match: -1}
		switch mode {
		case MatchPositional:
			if i < len(keys) && keys[i] == text {
				tl.match = i
			}
		default:
			if j, ok := first[text]; ok {
				tl.match = j
			}
		}
		out[i] = tl
	}
	return out
}
