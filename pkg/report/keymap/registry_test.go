package keymap

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, ctx := range []Context{ContextGlobal, ContextMain, ContextSearch, ContextMenu, ContextStatusPicker, ContextConfirm, ContextDetails, ContextMeasurements, ContextHelp} {
		if len(r.bindings[ctx]) == 0 {
			t.Errorf("no bindings registered for %s", ctx)
		}
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name    string
		key     tea.KeyMsg
		context Context
		want    Command
		found   bool
	}{
		{"quit with q in main", runeKey('q'), ContextMain, CmdQuit, true},
		{"cursor down with j in main", runeKey('j'), ContextMain, CmdCursorDown, true},
		{"menu with m in main", runeKey('m'), ContextMain, CmdOpenMenu, true},
		{"esc clears search in main", tea.KeyMsg{Type: tea.KeyEsc}, ContextMain, CmdSearchClear, true},
		{"esc cancels in search", tea.KeyMsg{Type: tea.KeyEsc}, ContextSearch, CmdSearchCancel, true},
		{"q closes menu instead of quitting", runeKey('q'), ContextMenu, CmdClose, true},
		{"enter selects status", tea.KeyMsg{Type: tea.KeyEnter}, ContextStatusPicker, CmdSelect, true},
		{"y confirms delete", runeKey('y'), ContextConfirm, CmdConfirm, true},
		{"y copies link in details", runeKey('y'), ContextDetails, CmdCopyOrderLink, true},
		{"j scrolls measurements", runeKey('j'), ContextMeasurements, CmdScrollDown, true},
		{"help toggles everywhere", runeKey('?'), ContextDetails, CmdToggleHelp, true},
		{"unknown key", runeKey('z'), ContextMain, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Lookup(tt.key, tt.context)
			if found != tt.found {
				t.Errorf("Lookup() found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("Lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChord(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	now := time.Unix(0, 0)
	r.SetClock(func() time.Time { return now })

	cmd, found := r.Lookup(runeKey('g'), ContextMain)
	if found || cmd != "" {
		t.Errorf("first g should wait for the chord, got %v %v", cmd, found)
	}

	now = now.Add(100 * time.Millisecond)
	cmd, found = r.Lookup(runeKey('g'), ContextMain)
	if !found || cmd != CmdCursorTop {
		t.Errorf("g g = %v %v, want cursor-top", cmd, found)
	}

	// consumed: a third g starts a new chord
	if _, found := r.Lookup(runeKey('g'), ContextMain); found {
		t.Error("chord should have been consumed")
	}
}

func TestChordExpires(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	now := time.Unix(0, 0)
	r.SetClock(func() time.Time { return now })

	r.Lookup(runeKey('g'), ContextMain)
	now = now.Add(chordWindow)

	cmd, found := r.Lookup(runeKey('j'), ContextMain)
	if !found || cmd != CmdCursorDown {
		t.Errorf("expired chord should fall through to j, got %v %v", cmd, found)
	}
}

func TestChordBrokenByOtherKey(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.Lookup(runeKey('g'), ContextMain)
	cmd, found := r.Lookup(runeKey('k'), ContextMain)
	if !found || cmd != CmdCursorUp {
		t.Errorf("g k = %v %v, want k alone", cmd, found)
	}
}

func TestOverridePrecedence(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.Override(ContextMain, "d", CmdDelete)
	r.Override(ContextMain, "j", CmdCursorBottom)
	r.Override(ContextGlobal, "ctrl+q", CmdQuit)

	if cmd, _ := r.Lookup(runeKey('d'), ContextMain); cmd != CmdDelete {
		t.Errorf("main override = %v, want delete", cmd)
	}
	if cmd, _ := r.Lookup(runeKey('j'), ContextMain); cmd != CmdCursorBottom {
		t.Errorf("override should shadow default j, got %v", cmd)
	}
	if cmd, _ := r.Lookup(runeKey('j'), ContextMenu); cmd != CmdCursorDown {
		t.Errorf("main override leaked into menu: %v", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlQ}, ContextMenu); cmd != CmdQuit {
		t.Errorf("global override = %v, want quit", cmd)
	}
}

func TestKnown(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if !r.Known(CmdDelete) {
		t.Error("delete should be known")
	}
	if r.Known("launch-rockets") {
		t.Error("unbound command reported known")
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runeKey('G'), "G"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "pgdown"},
		{tea.KeyMsg{Type: tea.KeyCtrlQ}, "ctrl+q"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIsPrintable(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{runeKey('a'), true},
		{runeKey('?'), true},
		{runeKey('é'), true},
		{tea.KeyMsg{Type: tea.KeySpace}, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, false},
	}

	for _, tt := range tests {
		if got := IsPrintable(tt.key); got != tt.want {
			t.Errorf("IsPrintable(%q) = %v, want %v", tt.key.String(), got, tt.want)
		}
	}
}

func TestGenerateHelp(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	help := r.GenerateHelp()

	for _, want := range []string{"LIST:", "ITEM MENU:", "Press and hold", "j / ↓", "PgDn", "View sales order"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
