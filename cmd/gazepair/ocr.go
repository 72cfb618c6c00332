package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardar/gazepair/pkg/corpus"
	"github.com/gardar/gazepair/pkg/gdocai"
	"github.com/gardar/gazepair/pkg/hocr"
	"github.com/gardar/gazepair/pkg/session"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <session>",
	Short: "Create geometry markup from screen captures with Google Document AI",
	Long: `For every transition of the session's reading segment, send the screen
capture <images>/MM-SS.png to Google Document AI and write the resulting word
geometry to <xml dir>/MM-SS.xml. Existing geometry files are kept unless
--overwrite is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

var (
	ocrImagesDir string
	ocrExt       string
	ocrOverwrite bool
	ocrDrafts    bool
	ocrDebugAPI  string
)

// mimeTypes lists the capture formats Document AI accepts as raw images
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

func init() {
	ocrCmd.Flags().StringVar(&ocrImagesDir, "images", "screens", "screen capture directory inside the session directory")
	ocrCmd.Flags().StringVar(&ocrExt, "ext", ".png", "screen capture file extension")
	ocrCmd.Flags().BoolVar(&ocrOverwrite, "overwrite", false, "replace existing geometry files")
	ocrCmd.Flags().BoolVar(&ocrDrafts, "drafts", false, "write the OCR text as a transcription draft when none exists")
	ocrCmd.Flags().StringVar(&ocrDebugAPI, "debug-api", "", "directory to save raw API responses as JSON")

	rootCmd.AddCommand(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	mimeType, ok := mimeTypes[ocrExt]
	if !ok {
		return fmt.Errorf("unsupported capture type: %s", ocrExt)
	}
	if err := cfg.DocAI.Validate(); err != nil {
		return err
	}

	sess, err := session.Load(cfg.DataDir, args[0])
	if err != nil {
		return err
	}
	seg, err := sess.Segment(cfg.SegmentLabel)
	if err != nil {
		return fmt.Errorf("session %s: %w", sess.Name, err)
	}

	xmlDir := filepath.Join(sess.Dir, cfg.XMLDir)
	textDir := filepath.Join(sess.Dir, cfg.CorrectTextDir)
	for _, dir := range []string{xmlDir, textDir, ocrDebugAPI} {
		if dir == "" || (dir == textDir && !ocrDrafts) {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, t := range seg.Transitions {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := corpus.FrameName(t)
		out := corpus.GeometryPath(xmlDir, t)
		if _, err := os.Stat(out); err == nil && !ocrOverwrite {
			slog.Info("geometry exists, skipping", "frame", frame)
			continue
		}

		image := filepath.Join(sess.Dir, ocrImagesDir, frame+ocrExt)
		if err := ocrFrame(ctx, image, mimeType, frame, out, textDir); err != nil {
			return fmt.Errorf("frame %s: %w", frame, err)
		}
	}
	return nil
}

// ocrFrame processes one capture and writes its geometry and optional outputs
func ocrFrame(ctx context.Context, image, mimeType, frame, out, textDir string) error {
	data, err := os.ReadFile(image)
	if err != nil {
		return fmt.Errorf("failed to read capture: %w", err)
	}

	slog.Info("processing capture", "image", image)
	raw, markup, rendered, err := gdocai.ScreenMarkup(ctx, data, mimeType, frame+".txt", &cfg.DocAI)
	if err != nil {
		return err
	}

	if ocrDebugAPI != "" {
		jsonData, err := gdocai.ToJSON(raw)
		if err != nil {
			return fmt.Errorf("failed to convert API response to JSON: %w", err)
		}
		if err := os.WriteFile(filepath.Join(ocrDebugAPI, frame+".json"), []byte(jsonData), 0644); err != nil {
			return fmt.Errorf("failed to write API response: %w", err)
		}
	}

	if err := os.WriteFile(out, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write markup: %w", err)
	}
	slog.Info("wrote geometry", "output", out, "lines", len(markup.Lines), "words", len(markup.Words()))

	if ocrDrafts {
		return writeDraft(filepath.Join(textDir, markup.Filename), &markup)
	}
	return nil
}

// writeDraft saves the OCR text as a transcription to be corrected by hand.
// A transcription that already exists is never replaced.
func writeDraft(path string, markup *hocr.Markup) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		slog.Debug("transcription exists, not writing draft", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	if _, err := f.WriteString(hocr.ExtractMarkupText(markup)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Close()
}
