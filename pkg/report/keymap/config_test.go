package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLoadConfigNonExistent(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/keymap.json")
	if err != nil {
		t.Errorf("LoadConfig should not error on nonexistent file: %v", err)
	}
	if cfg == nil || cfg.Bindings == nil {
		t.Fatal("LoadConfig should return an initialized config")
	}
}

func TestLoadAndSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home", "keymap.json")

	cfg := &Config{
		Bindings: map[string]string{
			"main:D": "delete",
			"menu:h": "close",
		},
	}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Bindings["main:D"] != "delete" {
		t.Errorf("expected 'delete', got '%s'", loaded.Bindings["main:D"])
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in      string
		context Context
		key     string
	}{
		{"main:D", ContextMain, "D"},
		{"ctrl+q", ContextGlobal, "ctrl+q"},
		{"menu:", ContextMenu, ""},
		{":", ContextGlobal, ":"},
		{"main::", ContextMain, ":"},
	}

	for _, tt := range tests {
		ctx, key := parseBinding(tt.in)
		if ctx != tt.context || key != tt.key {
			t.Errorf("parseBinding(%q) = %q, %q; want %q, %q", tt.in, ctx, key, tt.context, tt.key)
		}
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	home := t.TempDir()
	if err := SaveConfig(ConfigPath(home), &Config{Bindings: map[string]string{"main:D": "delete"}}); err != nil {
		t.Fatal(err)
	}

	r, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cmd, found := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}}, ContextMain)
	if !found || cmd != CmdDelete {
		t.Errorf("override not applied: %v %v", cmd, found)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ContextMain); cmd != CmdDelete {
		t.Errorf("defaults lost: x = %v", cmd)
	}
}

func TestApplyConfigRejectsUnknown(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	err := ApplyConfig(r, &Config{Bindings: map[string]string{
		"main:D":    "delete",
		"sidebar:x": "close",
		"main:Z":    "launch-rockets",
		"details:":  "close",
		"ctrl+q":    "quit",
	}})
	if err == nil {
		t.Fatal("expected an error for bad entries")
	}
	for _, want := range []string{`unknown context "sidebar"`, `unknown command "launch-rockets"`, "missing key"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	// good entries still apply
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}}, ContextMain); cmd != CmdDelete {
		t.Errorf("main:D = %v, want delete", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlQ}, ContextDetails); cmd != CmdQuit {
		t.Errorf("ctrl+q = %v, want quit", cmd)
	}
}
