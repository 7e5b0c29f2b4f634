
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"minirates/internal/catalog"
	"minirates/internal/scrape"
)

type SourceOverride struct {
	TTLSeconds     int      `json:"ttl_seconds,omitempty"`
	BaseURL        string   `json:"base_url,omitempty"`
	BlacklistWords []string `json:"blacklist_words,omitempty"`
}

type Config struct {
	DataDir string `json:"data_dir"`

	// CanonicalUnit is the unit everything is normalized to: "toman"
	// (default) or "rial".
	CanonicalUnit string `json:"canonical_unit,omitempty"`

	// Sources lists enabled sources by name, highest priority first.
	// Empty means all built-in sources in default order.
	Sources []string `json:"sources,omitempty"`

	SourceOverrides map[string]SourceOverride `json:"source_overrides,omitempty"`

	HistoryEnabled bool   `json:"history_enabled,omitempty"`
	HistoryFile    string `json:"history_file,omitempty"`

	// Digits selects output numerals: "en" (default) or "fa".
	Digits string `json:"digits,omitempty"`

	Debug bool `json:"debug,omitempty"`
}

func DefaultDataDir() string {
	if v := os.Getenv("MINIRATES_DATA_DIR"); v != "" {
		return v
	}
	return "/var/lib/minirates"
}

func DefaultConfigPath() string {
	if v := os.Getenv("MINIRATES_CONFIG"); v != "" {
		return v
	}
	return "/etc/minirates/config.json"
}

func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	var cfg Config
	// 1) Try file
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config json: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// 2) Env fallback / override
	if v := os.Getenv("MINIRATES_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MINIRATES_UNIT"); v != "" {
		cfg.CanonicalUnit = v
	}
	if v := os.Getenv("MINIRATES_SOURCES"); v != "" {
		cfg.Sources = splitList(v)
	}
	if v := os.Getenv("MINIRATES_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
	}

	// Defaults
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	if cfg.CanonicalUnit == "" {
		cfg.CanonicalUnit = string(catalog.UnitToman)
	}
	if cfg.Digits == "" {
		cfg.Digits = "en"
	}
	if cfg.HistoryEnabled && cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.DataDir, "history.db")
	}

	switch catalog.Unit(cfg.CanonicalUnit) {
	case catalog.UnitToman, catalog.UnitRial:
	default:
		return Config{}, fmt.Errorf("unknown canonical_unit %q", cfg.CanonicalUnit)
	}
	return cfg, nil
}

// Unit returns the canonical unit as a typed value. Load has already
// validated it.
func (c Config) Unit() catalog.Unit {
	return catalog.Unit(c.CanonicalUnit)
}

// SourceConfigs resolves the enabled-sources list against the built-in
// source table, applying per-source overrides. Unknown names fail so a
// typo does not silently drop a source.
func (c Config) SourceConfigs() ([]scrape.SourceConfig, error) {
	builtins := scrape.BuiltinSources()
	byName := make(map[string]scrape.SourceConfig, len(builtins))
	order := make([]string, 0, len(builtins))
	for _, b := range builtins {
		byName[b.Name] = b
		order = append(order, b.Name)
	}

	names := c.Sources
	if len(names) == 0 {
		names = order
	}

	var out []scrape.SourceConfig
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		sc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		if ov, ok := c.SourceOverrides[name]; ok {
			if ov.TTLSeconds > 0 {
				sc.TTL = time.Duration(ov.TTLSeconds) * time.Second
			}
			if ov.BaseURL != "" {
				sc.BaseURL = ov.BaseURL
			}
			sc.ExtraBlacklist = append(sc.ExtraBlacklist, ov.BlacklistWords...)
		}
		out = append(out, sc)
	}
	if len(out) == 0 {
		return nil, errors.New("no sources enabled")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
