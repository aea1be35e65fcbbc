package appconfig

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ShowConfig prints the source file and the effective configuration as YAML.
func ShowConfig(out io.Writer, file string, cfg Config) error {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("unable to encode configuration: %w", err)
	}
	return enc.Close()
}
