package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
url = "ws://localhost:8080/ws"
realm = "example.realm"
serialization = "msgpack"
authid = "alice"
authmethod = "wampcra"
connect_timeout = "2s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.URL != "ws://localhost:8080/ws" {
		t.Fatalf("unexpected url: %q", cfg.URL)
	}
	if cfg.Realm != "example.realm" {
		t.Fatalf("unexpected realm: %q", cfg.Realm)
	}
	if cfg.Serialization != "msgpack" {
		t.Fatalf("unexpected serialization: %q", cfg.Serialization)
	}
	if cfg.ConnectTimeout != 2*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.ConnectTimeout)
	}
	if cfg.CloseTimeout != DefaultConfig().CloseTimeout {
		t.Fatalf("expected default close timeout, got %v", cfg.CloseTimeout)
	}
}

func TestLoadConnectTimeoutMillis(t *testing.T) {
	path := writeConfig(t, `
url = "ws://localhost:8080/ws"
realm = "example.realm"
connect_timeout_ms = 1500
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ConnectTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected connect timeout: %v", cfg.ConnectTimeout)
	}
}

func TestLoadMissingURLFails(t *testing.T) {
	path := writeConfig(t, `
realm = "example.realm"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for missing url")
	}
}

func TestLoadBadDurationFails(t *testing.T) {
	path := writeConfig(t, `
url = "ws://localhost:8080/ws"
realm = "example.realm"
connect_timeout = "not-a-duration"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadUnsupportedSerializationFails(t *testing.T) {
	path := writeConfig(t, `
url = "ws://localhost:8080/ws"
realm = "example.realm"
serialization = "xml"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad serialization")
	}
}

func TestLoadInvalidRealmFails(t *testing.T) {
	path := writeConfig(t, `
url = "ws://localhost:8080/ws"
realm = "..bad.."
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for malformed realm")
	}
}
