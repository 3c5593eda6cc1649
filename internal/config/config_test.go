package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/kvload/pkg/kvload"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `store:
  url: redis://cache:6380/2
  host: cache
  port: 6380
  db: 2
  table: entities

format: jsonl
key_field: entity_id
key_mode: field
timeout: 10m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "redis://cache:6380/2", cfg.Store.URL)
	assert.Equal(t, "cache", cfg.Store.Host)
	assert.Equal(t, 6380, cfg.Store.Port)
	assert.Equal(t, 2, cfg.Store.DB)
	assert.Equal(t, "entities", cfg.Store.Table)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, "entity_id", cfg.KeyField)
	assert.Equal(t, "field", cfg.KeyMode)
	assert.Equal(t, "10m", cfg.Timeout)
	assert.True(t, cfg.Store.HasAddress())
}

func TestLoad_MinimalYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "key_field: uid\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Store.URL)
	assert.False(t, cfg.Store.HasAddress())
	assert.Equal(t, "uid", cfg.KeyField)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.ErrorIs(t, err, kvload.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_UnknownField(t *testing.T) {
	cfg, err := Load(writeConfig(t, "keyfield: uid\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, kvload.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "keyfield")
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}
