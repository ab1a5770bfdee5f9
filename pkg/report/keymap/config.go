// Package keymap provides user-configurable key bindings for the report
// dashboard, loaded from <home>/keymap.json.
package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

const configFile = "keymap.json"

// Config is the on-disk override file. Keys are "context:key", or a bare
// key for global; values are command names.
//
//	{"bindings": {"main:D": "delete", "ctrl+q": "quit"}}
type Config struct {
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns where overrides live under home
func ConfigPath(home string) string {
	return filepath.Join(home, configFile)
}

// LoadConfig reads overrides from path. A missing file is an empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Bindings: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig installs cfg's overrides on r. Entries naming an unknown
// context or command are skipped and reported together.
func ApplyConfig(r *Registry, cfg *Config) error {
	// Sorted so the error lists entries in a stable order.
	names := make([]string, 0, len(cfg.Bindings))
	for name := range cfg.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		ctx, key := parseBinding(name)
		cmd := Command(cfg.Bindings[name])
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("%q: missing key", name))
		case !slices.Contains(Contexts, ctx):
			errs = append(errs, fmt.Errorf("%q: unknown context %q", name, ctx))
		case !r.Known(cmd):
			errs = append(errs, fmt.Errorf("%q: unknown command %q", name, cmd))
		default:
			r.Override(ctx, key, cmd)
		}
	}
	return errors.Join(errs...)
}

// parseBinding splits "context:key". A bare key is global. A lone ":" is
// the colon key itself.
func parseBinding(s string) (Context, string) {
	if s == ":" {
		return ContextGlobal, s
	}
	ctx, key, ok := strings.Cut(s, ":")
	if !ok {
		return ContextGlobal, s
	}
	return Context(ctx), key
}

// Load builds a registry with the defaults plus overrides from home. On
// error the registry is still usable, with whatever overrides applied.
func Load(home string) (*Registry, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	if home == "" {
		return r, nil
	}
	cfg, err := LoadConfig(ConfigPath(home))
	if err != nil {
		return r, err
	}
	return r, ApplyConfig(r, cfg)
}
