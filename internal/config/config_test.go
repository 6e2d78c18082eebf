package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "bot:\n  token: \"123:abc\"\n")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Port != 8443 {
		t.Errorf("default port = %d, want 8443", cfg.HTTP.Port)
	}
	if cfg.Storage.Chats != "chats.json" {
		t.Errorf("default chats path = %q, want chats.json", cfg.Storage.Chats)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("default log config = %+v", cfg.Log)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing token is fatal", func(t *testing.T) {
		path := writeConfig(t, "http:\n  port: 8443\n")
		if _, err := LoadConfig(path, false); err == nil {
			t.Error("expected error for missing bot.token")
		}
	})

	t.Run("missing token is allowed in dev mode", func(t *testing.T) {
		path := writeConfig(t, "http:\n  port: 8443\n")
		cfg, err := LoadConfig(path, true)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if !cfg.Runtime.Dev {
			t.Error("dev flag not carried into runtime config")
		}
	})

	t.Run("half-configured tls is fatal", func(t *testing.T) {
		path := writeConfig(t, "bot:\n  token: \"123:abc\"\nhttp:\n  tls:\n    cert: cert.pem\n")
		if _, err := LoadConfig(path, false); err == nil {
			t.Error("expected error for cert without key")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
