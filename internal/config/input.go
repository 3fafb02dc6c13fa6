package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/finsim/wealthpath/internal/domain"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation configuration from a YAML, TOML or JSON
// file, chosen by extension, and validates it. Engines are never handed an
// unvalidated config.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := ip.Parse(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes raw config bytes according to the given file extension and
// validates the result. Unknown extensions fall back to YAML, which also
// covers extensionless input.
//
// Decoding runs over a pre-seeded config, so simulation knobs absent from
// the file keep their defaults while explicit values, zeros included, win
// and are judged by Validate on their own merits.
func (ip *InputParser) Parse(data []byte, ext string) (*domain.SimulationConfig, error) {
	cfg := defaultConfig()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// defaultConfig seeds the simulation knobs a config file may reasonably
// omit. Financial inputs are never defaulted; a zero there is taken at face
// value.
func defaultConfig() domain.SimulationConfig {
	return domain.SimulationConfig{
		Years: 30,
		Paths: 1000,
		Seed:  42,
	}
}
