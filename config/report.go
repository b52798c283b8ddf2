package config

import (
	"fmt"
	"os"
	"strings"
)

// ReportConfig controls the exported summary document.
type ReportConfig struct {
	OutputDir string `json:"output_dir"`
	// BaseName prefixes the timestamped file name.
	BaseName string `json:"base_name"`
	Title    string `json:"title"`
	// Logo is an optional PNG or JPEG printed at the top of the document.
	Logo string `json:"logo"`
}

// SetDefaults applies sane defaults.
func (c *ReportConfig) SetDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.BaseName == "" {
		c.BaseName = "CO2_Summary"
	}
}

// Validate checks the logo path and file extension.
func (c ReportConfig) Validate() error {
	if strings.ContainsAny(c.BaseName, `/\`) {
		return fmt.Errorf("base_name must not contain path separators")
	}
	if c.Logo == "" {
		return nil
	}
	lower := strings.ToLower(c.Logo)
	if !strings.HasSuffix(lower, ".png") && !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".jpeg") {
		return fmt.Errorf("logo must be a PNG or JPEG file")
	}
	if _, err := os.Stat(c.Logo); err != nil {
		return fmt.Errorf("logo: %w", err)
	}
	return nil
}
