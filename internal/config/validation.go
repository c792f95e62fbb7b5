package config

import "fmt"

// Validate performs structural checks on the host-level configuration.
// Per-entry rules for the files list belong to the extrafiles plugin and run
// in its configuration hook, before any filesystem access.
func (c *Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir must not be empty")
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory must not be empty")
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port out of range: %d", c.Preview.Port)
	}
	return nil
}
