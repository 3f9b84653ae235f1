// Package config loads evaluator settings from YAML or TOML documents.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/reoring/glint/logging"
)

// Format names a document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for documents whose syntax cannot be told.
var ErrUnknownFormat = errors.New("config: unknown format")

// Config holds the settings a Program is built with. Zero numeric fields
// select the runtime defaults.
type Config struct {
	Language string `yaml:"language" toml:"language"`
	LogLevel string `yaml:"log-level" toml:"log-level"`
	// MaxDepth bounds the evaluation frame stack.
	MaxDepth int `yaml:"max-depth" toml:"max-depth"`
	// HistoryLimit bounds the samples each stream keeps.
	HistoryLimit int `yaml:"history-limit" toml:"history-limit"`
	// TimeFrequency is the default sampling period of Time, in milliseconds.
	TimeFrequency float64 `yaml:"time-frequency" toml:"time-frequency"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Language:      "en",
		LogLevel:      logging.LevelWarning.String(),
		MaxDepth:      256,
		HistoryLimit:  256,
		TimeFrequency: 33,
	}
}

// Load reads path, choosing the syntax from its extension.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// document is a Config as written in a file; absent keys stay nil.
type document struct {
	Language      *string  `yaml:"language" toml:"language"`
	LogLevel      *string  `yaml:"log-level" toml:"log-level"`
	MaxDepth      *int     `yaml:"max-depth" toml:"max-depth"`
	HistoryLimit  *int     `yaml:"history-limit" toml:"history-limit"`
	TimeFrequency *float64 `yaml:"time-frequency" toml:"time-frequency"`
}

// Parse decodes data over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte, format Format) (Config, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document decodes to io.EOF
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).Strict(true)
		if err := dec.Decode(&doc); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	cfg := doc.over(Default())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (d document) over(c Config) Config {
	if d.Language != nil {
		c.Language = *d.Language
	}
	if d.LogLevel != nil {
		c.LogLevel = *d.LogLevel
	}
	if d.MaxDepth != nil {
		c.MaxDepth = *d.MaxDepth
	}
	if d.HistoryLimit != nil {
		c.HistoryLimit = *d.HistoryLimit
	}
	if d.TimeFrequency != nil {
		c.TimeFrequency = *d.TimeFrequency
	}
	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Language) == "" {
		return errors.New("config: language is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max-depth %d is negative", c.MaxDepth)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history-limit %d is negative", c.HistoryLimit)
	}
	if c.TimeFrequency < 0 {
		return fmt.Errorf("config: time-frequency %v is negative", c.TimeFrequency)
	}
	return nil
}

// Encode writes c in format.
func (c Config) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatTOML:
		return toml.Marshal(c)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}
