// Package config holds the settings of the proxy and the schema checker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MCPROTO_"

type Config struct {
	Listen    string `yaml:"listen" toml:"listen" json:"listen"`
	Upstream  string `yaml:"upstream" toml:"upstream" json:"upstream"`
	LogLevel  string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format" json:"log_format"`

	// SessionServer, when set, is asked for the profiles of players the
	// proxy has not seen log in. Empty keeps lookups offline.
	SessionServer string `yaml:"session_server" toml:"session_server" json:"session_server"`

	// Source of minecraft-data schemas, in go-getter syntax.
	SchemaURL     string `yaml:"schema_url" toml:"schema_url" json:"schema_url"`
	SchemaVersion string `yaml:"schema_version" toml:"schema_version" json:"schema_version"`
	SchemaDir     string `yaml:"schema_dir" toml:"schema_dir" json:"schema_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:        ":25566",
		Upstream:      "127.0.0.1:25565",
		LogLevel:      "info",
		LogFormat:     "text",
		SchemaURL:     "git::https://github.com/PrismarineJS/minecraft-data.git//data/pc",
		SchemaVersion: "1.8",
		SchemaDir:     "./schema",
	}
}

// Load reads a config file on top of the defaults. The decoder is chosen
// by extension: .yaml/.yml, .toml or .json.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// envFields maps MCPROTO_* suffixes to the fields they override.
func envFields(cfg *Config) map[string]*string {
	return map[string]*string{
		"LISTEN":         &cfg.Listen,
		"UPSTREAM":       &cfg.Upstream,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FORMAT":     &cfg.LogFormat,
		"SESSION_SERVER": &cfg.SessionServer,
		"SCHEMA_URL":     &cfg.SchemaURL,
		"SCHEMA_VERSION": &cfg.SchemaVersion,
		"SCHEMA_DIR":     &cfg.SchemaDir,
	}
}

// LoadEnv applies MCPROTO_* values from the given .env files and then from
// the process environment, which wins. The process environment is not
// modified.
func LoadEnv(cfg *Config, files ...string) error {
	vals := map[string]string{}
	if len(files) > 0 {
		var err error
		if vals, err = godotenv.Read(files...); err != nil {
			return fmt.Errorf("read env files: %w", err)
		}
	}

	for suffix, field := range envFields(cfg) {
		key := EnvPrefix + suffix
		if v, ok := os.LookupEnv(key); ok {
			*field = v
			continue
		}
		if v, ok := vals[key]; ok {
			*field = v
		}
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["listen"] {
		cfg.Listen = fromFile.Listen
	}
	if !explicitFlags["upstream"] {
		cfg.Upstream = fromFile.Upstream
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["log-format"] {
		cfg.LogFormat = fromFile.LogFormat
	}
	if !explicitFlags["session-server"] {
		cfg.SessionServer = fromFile.SessionServer
	}
	if !explicitFlags["schema-url"] {
		cfg.SchemaURL = fromFile.SchemaURL
	}
	if !explicitFlags["schema-version"] {
		cfg.SchemaVersion = fromFile.SchemaVersion
	}
	if !explicitFlags["schema-dir"] {
		cfg.SchemaDir = fromFile.SchemaDir
	}
}

// Resolve builds the effective config: defaults, then the file at path if
// any, then the env files and environment, with explicitly set flags in
// cfg winning over all of them.
func Resolve(cfg *Config, path string, envFiles []string, explicitFlags map[string]bool) error {
	base := DefaultConfig()
	if path != "" {
		var err error
		if base, err = Load(path); err != nil {
			return err
		}
	}
	if err := LoadEnv(base, envFiles...); err != nil {
		return err
	}
	Merge(cfg, base, explicitFlags)
	return nil
}
