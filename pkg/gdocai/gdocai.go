// Package gdocai produces screen geometry markup from screen captures using
// Google Document AI.
//
// Sessions record a screen capture at each document transition. Running those
// captures through a Document AI OCR processor yields the line and word boxes
// that the pairing measures gaze distances against.
//
// Main Functions:
//
// - ProcessImage: Sends a capture to Google Document AI for processing
// - MarkupFromProto: Converts the Document AI response to geometry markup
// - ScreenMarkup: Processes a capture and returns the markup and its rendering
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/gazepair/pkg/hocr"
)

// ScreenMarkup OCRs one screen capture and returns:
// - The raw Document AI response
// - The geometry markup naming filename as its transcription
// - The rendered legacy markup
func ScreenMarkup(ctx context.Context, image []byte, mimeType, filename string, cfg *Config) (*documentaipb.Document, hocr.Markup, string, error) {
	raw, err := ProcessImage(ctx, image, mimeType, cfg)
	if err != nil {
		return nil, hocr.Markup{}, "", err
	}

	markup, err := MarkupFromProto(raw, filename)
	if err != nil {
		return nil, hocr.Markup{}, "", err
	}

	rendered, err := hocr.GenerateMarkup(&markup)
	if err != nil {
		return nil, hocr.Markup{}, "", fmt.Errorf("failed to generate markup: %w", err)
	}
	return raw, markup, rendered, nil
}
