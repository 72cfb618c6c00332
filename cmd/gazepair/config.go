package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gardar/gazepair/pkg/gdocai"
	"github.com/gardar/gazepair/pkg/pairing"
)

const envDataDir = "GAZEPAIR_DATA_DIR"

// fileConfig is the YAML configuration file
type fileConfig struct {
	DataDir        string        `yaml:"data_dir"`
	Sessions       []string      `yaml:"sessions"`
	XMLDir         string        `yaml:"xml_dir"`
	CorrectTextDir string        `yaml:"correct_text_dir"`
	OutputFile     string        `yaml:"output_file"`
	SegmentLabel   string        `yaml:"segment_label"`
	Tolerance      float64       `yaml:"tolerance"`
	Metric         string        `yaml:"metric"`
	Matching       string        `yaml:"matching"`
	Columns        string        `yaml:"columns"`
	DocAI          gdocai.Config `yaml:"docai"`
}

func defaultConfig() fileConfig {
	p := pairing.DefaultConfig()
	return fileConfig{
		DataDir:        "data",
		XMLDir:         p.XMLDir,
		CorrectTextDir: p.CorrectTextDir,
		OutputFile:     p.OutputFile,
		SegmentLabel:   p.SegmentLabel,
		Tolerance:      p.Tolerance,
		Metric:         p.Metric,
		Matching:       p.Matching,
		Columns:        p.Columns,
	}
}

// loadConfig reads a YAML file over the defaults. An empty path yields the defaults.
func loadConfig(path string) (fileConfig, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// pairing returns the pairing options of the file
func (c fileConfig) pairing() pairing.Config {
	return pairing.Config{
		XMLDir:         c.XMLDir,
		CorrectTextDir: c.CorrectTextDir,
		OutputFile:     c.OutputFile,
		SegmentLabel:   c.SegmentLabel,
		Tolerance:      c.Tolerance,
		Metric:         c.Metric,
		Matching:       c.Matching,
		Columns:        c.Columns,
	}
}
