package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/kvload/pkg/kvload"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type StoreConfig struct {
	URL   string `yaml:"url,omitempty"`
	Host  string `yaml:"host,omitempty"`
	Port  int    `yaml:"port,omitempty"`
	DB    int    `yaml:"db,omitempty"`
	Table string `yaml:"table,omitempty"`
}

// HasAddress reports whether granular host settings are present.
func (s StoreConfig) HasAddress() bool {
	return s.Host != "" || s.Port != 0 || s.DB != 0
}

type ProjectConfig struct {
	Store    StoreConfig `yaml:"store"`
	Format   string      `yaml:"format,omitempty"`
	KeyField string      `yaml:"key_field,omitempty"`
	KeyMode  string      `yaml:"key_mode,omitempty"`
	Timeout  string      `yaml:"timeout,omitempty"`
}

const ConfigFileName = "kvload.yaml"

// Load reads the config file at path. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: %w", path, kvload.ErrInvalidConfig, err)
	}
	return &cfg, nil
}
