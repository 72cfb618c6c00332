package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gardar/gazepair/pkg/hocr"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output.xml>",
	Short: "Convert hOCR or geometry markup to the legacy geometry format",
	Long: `Read hOCR (or legacy geometry markup) and write it in the legacy
<root filename><line bbox><word bbox> format used by the pairing.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var (
	convertFilename string
	convertText     string
)

func init() {
	convertCmd.Flags().StringVar(&convertFilename, "filename", "", "transcription file name to record in the markup")
	convertCmd.Flags().StringVar(&convertText, "text", "", "path to save the markup's text as a transcription draft")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	markup, err := hocr.ParseMarkup(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if convertFilename != "" {
		markup.Filename = convertFilename
	}

	if err := writeMarkup(args[1], &markup); err != nil {
		return err
	}

	if convertText != "" {
		if err := os.WriteFile(convertText, []byte(hocr.ExtractMarkupText(&markup)), 0644); err != nil {
			return fmt.Errorf("failed to write text: %w", err)
		}
	}
	return nil
}

// writeMarkup renders markup in the legacy format to path
func writeMarkup(path string, markup *hocr.Markup) error {
	if strings.TrimSpace(markup.Filename) == "" {
		return fmt.Errorf("%s: markup has no transcription file name, use --filename", path)
	}
	rendered, err := hocr.GenerateMarkup(markup)
	if err != nil {
		return fmt.Errorf("failed to generate markup: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write markup: %w", err)
	}
	return nil
}
