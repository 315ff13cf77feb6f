// Package config loads a Session's connection settings from TOML,
// following danmuck-edgectl's cmd/*/config.go pattern: a raw struct
// decoded with BurntSushi/toml, merged field-by-field over defaults
// using the decode metadata so an absent key never clobbers a
// programmatic default.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// realmPattern matches one or more dot-separated segments, each free
// of whitespace, '#', and '.'; it rejects the empty string along with
// leading, trailing, or doubled dots. Mirrors wampclient.URI.Valid.
var realmPattern = regexp.MustCompile(`^[^\s#.]+(\.[^\s#.]+)*$`)

// Config is the subset of Session.Connect/NewSession inputs that make
// sense to externalize into a file: where to dial, which realm to
// join, which wire format to use, which authid and authmethod to
// offer, and how long to wait
// during the opening handshake and the graceful close.
type Config struct {
	URL            string
	Realm          string
	Serialization  string // "json" or "msgpack"
	AuthID         string
	AuthMethod     string
	ConnectTimeout time.Duration
	CloseTimeout   time.Duration
}

// DefaultConfig holds the values Load starts from; keys absent from
// the file keep them.
func DefaultConfig() Config {
	return Config{
		Serialization:  "json",
		ConnectTimeout: 10 * time.Second,
		CloseTimeout:   5 * time.Second,
	}
}

type fileConfig struct {
	URL              string `toml:"url"`
	Realm            string `toml:"realm"`
	Serialization    string `toml:"serialization"`
	AuthID           string `toml:"authid"`
	AuthMethod       string `toml:"authmethod"`
	ConnectTimeout   string `toml:"connect_timeout"`
	ConnectTimeoutMS int64  `toml:"connect_timeout_ms"`
	CloseTimeout     string `toml:"close_timeout"`
	CloseTimeoutMS   int64  `toml:"close_timeout_ms"`
}

// Load reads path and merges it over DefaultConfig, leaving any key
// absent from the file untouched.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if meta.IsDefined("url") {
		cfg.URL = strings.TrimSpace(raw.URL)
	}
	if meta.IsDefined("realm") {
		cfg.Realm = strings.TrimSpace(raw.Realm)
	}
	if meta.IsDefined("serialization") {
		cfg.Serialization = strings.ToLower(strings.TrimSpace(raw.Serialization))
	}
	if meta.IsDefined("authid") {
		cfg.AuthID = strings.TrimSpace(raw.AuthID)
	}
	if meta.IsDefined("authmethod") {
		cfg.AuthMethod = strings.TrimSpace(raw.AuthMethod)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("config: parse connect_timeout: %w", err)
		}
		cfg.ConnectTimeout = d
	}
	if meta.IsDefined("connect_timeout_ms") {
		cfg.ConnectTimeout = time.Duration(raw.ConnectTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("close_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.CloseTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("config: parse close_timeout: %w", err)
		}
		cfg.CloseTimeout = d
	}
	if meta.IsDefined("close_timeout_ms") {
		cfg.CloseTimeout = time.Duration(raw.CloseTimeoutMS) * time.Millisecond
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether cfg has enough to dial and join a realm.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return fmt.Errorf("config: missing url")
	}
	if strings.TrimSpace(cfg.Realm) == "" {
		return fmt.Errorf("config: missing realm")
	}
	if !realmPattern.MatchString(cfg.Realm) {
		return fmt.Errorf("config: invalid realm %q", cfg.Realm)
	}
	switch cfg.Serialization {
	case "json", "msgpack":
	default:
		return fmt.Errorf("config: unsupported serialization %q", cfg.Serialization)
	}
	return nil
}
