package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/gazepair/pkg/overlay"
	"github.com/gardar/gazepair/pkg/pairing"
	"github.com/gardar/gazepair/pkg/session"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay <session>",
	Short: "Render a session's word boxes and gaze samples as a layered PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runOverlay,
}

var (
	overlayOutput   string
	overlayNoText   bool
	overlayDotSize  float64
	overlayFontSize float64
)

func init() {
	defaults := overlay.DefaultConfig()

	overlayCmd.Flags().StringVarP(&overlayOutput, "output", "o", "", "path to save the PDF (required)")
	overlayCmd.Flags().BoolVar(&overlayNoText, "no-text", false, "draw word boxes without their text")
	overlayCmd.Flags().Float64Var(&overlayDotSize, "dot-radius", defaults.DotRadius, "gaze dot radius in screen pixels")
	overlayCmd.Flags().Float64Var(&overlayFontSize, "font-size", defaults.Font.Size, "header and word font size")
	_ = overlayCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(overlayCmd)
}

func runOverlay(cmd *cobra.Command, args []string) error {
	sess, err := session.Load(cfg.DataDir, args[0])
	if err != nil {
		return err
	}

	c, samples, err := pairing.Load(sess, cfg.pairing())
	if err != nil {
		return err
	}

	oc := overlay.DefaultConfig()
	oc.ShowText = !overlayNoText
	oc.DotRadius = overlayDotSize
	oc.Font.Size = overlayFontSize

	pdf, err := overlay.Render(c, samples, oc)
	if err != nil {
		return fmt.Errorf("session %s: %w", sess.Name, err)
	}
	if err := os.WriteFile(overlayOutput, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	slog.Info("wrote overlay", "session", sess.Name, "documents", len(c.Documents), "output", overlayOutput)
	return nil
}
