package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readTranscript loads a verified transcription, one trimmed string per line
func readTranscript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcription: %w", err)
	}
	defer f.Close()

	lines, err := scanLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription %s: %w", path, err)
	}
	return lines, nil
}

func splitTranscript(text string) []string {
	lines, _ := scanLines(strings.NewReader(text))
	return lines
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines, scanner.Err()
}
