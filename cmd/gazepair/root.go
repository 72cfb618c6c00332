package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	verbose    bool
	quiet      bool

	cfg fileConfig
)

var rootCmd = &cobra.Command{
	Use:   "gazepair",
	Short: "Pair eye-tracking gaze samples with on-screen document words",
	Long: `gazepair aligns the gaze samples of digital reading sessions with the
documents shown on screen and writes, for every sample, the distance from the
gaze point to each word of the current document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return setupConfig(cmd)
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// setupConfig loads .env, the config file and the data directory override.
// Precedence is flag, then environment, then file.
func setupConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	var err error
	cfg, err = loadConfig(configPath)
	if err != nil {
		return err
	}

	if env := os.Getenv(envDataDir); env != "" {
		cfg.DataDir = env
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	slog.Debug("configuration loaded", "config", configPath, "data_dir", cfg.DataDir)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the session directories")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
