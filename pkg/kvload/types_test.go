package kvload_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vvka-141/kvload/pkg/kvload"
)

func validConfig() kvload.LoadConfig {
	return kvload.LoadConfig{
		InputPath: "/data/kv_data.msgpack",
		Format:    kvload.FormatMsgPack,
		KeyMode:   kvload.KeyModeField,
		KeyField:  "id",
		Store:     kvload.StoreConfig{URL: kvload.DefaultStoreURL},
	}
}

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*kvload.LoadConfig)
		wantError bool
	}{
		{name: "valid config", mutate: func(c *kvload.LoadConfig) {}},
		{name: "entry mode needs no key field", mutate: func(c *kvload.LoadConfig) {
			c.KeyMode = kvload.KeyModeEntry
			c.KeyField = ""
		}},
		{name: "missing input path", mutate: func(c *kvload.LoadConfig) { c.InputPath = "" }, wantError: true},
		{name: "missing store url", mutate: func(c *kvload.LoadConfig) { c.Store.URL = "" }, wantError: true},
		{name: "unknown format", mutate: func(c *kvload.LoadConfig) { c.Format = "csv" }, wantError: true},
		{name: "unknown key mode", mutate: func(c *kvload.LoadConfig) { c.KeyMode = "path" }, wantError: true},
		{name: "empty key field", mutate: func(c *kvload.LoadConfig) { c.KeyField = "" }, wantError: true},
		{name: "negative timeout", mutate: func(c *kvload.LoadConfig) { c.Timeout = -time.Second }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, kvload.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := kvload.LoadConfig{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	for _, want := range []string{"InputPath", "Store.URL", "format", "key mode"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    kvload.Format
		wantErr bool
	}{
		{"", kvload.FormatMsgPack, false},
		{"msgpack", kvload.FormatMsgPack, false},
		{"MessagePack", kvload.FormatMsgPack, false},
		{"jsonl", kvload.FormatJSONLines, false},
		{"JSONLines", kvload.FormatJSONLines, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := kvload.ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, kvload.ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
