package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options represents the optional YAML configuration file. Every field
// has a flag equivalent; flags win when both are set.
type Options struct {
	OutDir       string `yaml:"outDir,omitempty"`
	PreviewLines int    `yaml:"previewLines,omitempty"`
	LogLevel     string `yaml:"logLevel,omitempty"`
	DBPath       string `yaml:"db,omitempty"`
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		OutDir:       ".",
		PreviewLines: 5,
		LogLevel:     "info",
	}
}

// LoadOptions reads an options file, filling unset fields from the
// defaults. A missing file is not an error when required is false,
// which covers the default ./pemcsv.yaml lookup.
func LoadOptions(path string, required bool) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return opts, nil
		}
		return opts, fmt.Errorf("reading options file %s: %w", path, err)
	}

	var file Options
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("parsing options file %s: %w", path, err)
	}

	if file.OutDir != "" {
		opts.OutDir = file.OutDir
	}
	if file.PreviewLines > 0 {
		opts.PreviewLines = file.PreviewLines
	}
	if file.LogLevel != "" {
		opts.LogLevel = file.LogLevel
	}
	if file.DBPath != "" {
		opts.DBPath = file.DBPath
	}
	return opts, nil
}
