package gdocai

import (
	"errors"
	"fmt"
)

// Config identifies the Document AI OCR processor
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Validate checks that every field needed to reach the processor is set
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("document AI config is missing")
	}
	if c.ProjectID == "" || c.Location == "" || c.ProcessorID == "" {
		return errors.New("document AI config needs project_id, location and processor_id")
	}
	return nil
}

// ProcessorName builds the resource name of the processor
func (c *Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}
