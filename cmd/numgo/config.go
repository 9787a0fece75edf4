package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-level defaults for the CLI, loaded from an optional
// YAML file. Flags given on the command line win over these.
type Config struct {
	// Delim names the field delimiter: comma, tab, space, or detect.
	Delim string `yaml:"delim"`

	// SkipRows drops this many leading lines (header rows).
	SkipRows int `yaml:"skip_rows"`

	// Comments is a line prefix marking lines to ignore.
	Comments string `yaml:"comments"`

	// Precision is the number of significant digits in printed floats.
	Precision int `yaml:"precision"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
