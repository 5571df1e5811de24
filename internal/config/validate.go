package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("config: paths.output_dir is required")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("config: paths.log_dir is required")
	}
	if c.Run.ToolTimeout < 0 {
		return fmt.Errorf("config: run.tool_timeout must not be negative")
	}
	if c.Run.Threshold < 0 || c.Run.Threshold > 1 {
		return fmt.Errorf("config: run.threshold must be within [0, 1], got %v", c.Run.Threshold)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
