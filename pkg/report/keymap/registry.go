package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// chordWindow is how long the first key of a chord like "g g" waits
const chordWindow = 500 * time.Millisecond

// Context is the dashboard layer a key is resolved in
type Context string

const (
	ContextGlobal       Context = "global"
	ContextMain         Context = "main"
	ContextSearch       Context = "search"
	ContextMenu         Context = "menu"          // long-press menu of a card
	ContextStatusPicker Context = "status-picker" // opened from the menu
	ContextConfirm      Context = "confirm"       // delete confirmation
	ContextDetails      Context = "details"       // sales order details
	ContextMeasurements Context = "measurements"
	ContextHelp         Context = "help"
)

// Contexts lists every context a binding may name
var Contexts = []Context{
	ContextGlobal, ContextMain, ContextSearch, ContextMenu, ContextStatusPicker,
	ContextConfirm, ContextDetails, ContextMeasurements, ContextHelp,
}

// Command names an action the dashboard performs
type Command string

const (
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Movement
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdHalfPageDown Command = "half-page-down"
	CmdHalfPageUp   Command = "half-page-up"
	CmdScrollDown   Command = "scroll-down"
	CmdScrollUp     Command = "scroll-up"
	CmdSelect       Command = "select"
	CmdClose        Command = "close"

	// Card actions
	CmdOpenDetails      Command = "open-details"
	CmdOpenMenu         Command = "open-menu"
	CmdChangeStatus     Command = "change-status"
	CmdDelete           Command = "delete"
	CmdOpenMeasurements Command = "open-measurements"
	CmdCopyOrderLink    Command = "copy-order-link"
	CmdCopyJobOrderLink Command = "copy-job-order-link"
	CmdRefresh          Command = "refresh"
	CmdLoadMore         Command = "load-more"

	// Search box
	CmdSearch        Command = "search"
	CmdSearchConfirm Command = "search-confirm"
	CmdSearchCancel  Command = "search-cancel"
	CmdSearchClear   Command = "search-clear"

	// Delete confirmation
	CmdConfirm    Command = "confirm"
	CmdCancel     Command = "cancel"
	CmdNextButton Command = "next-button"
	CmdPrevButton Command = "prev-button"
)

// Binding ties a key, or a space-separated chord, to a command
type Binding struct {
	Key         string
	Command     Command
	Context     Context
	Description string
}

// Registry resolves keys to commands. User overrides shadow the defaults
// of the same context; the active context shadows global.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[Context][]Binding
	overrides map[Context]map[string]Command

	chord   string // first key of an unfinished chord
	chordAt time.Time
	now     func() time.Time
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[Context][]Binding),
		overrides: make(map[Context]map[string]Command),
		now:       time.Now,
	}
}

// SetClock replaces the clock used to expire chords
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// RegisterBindings appends bindings to their contexts
func (r *Registry) RegisterBindings(bindings []Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range bindings {
		r.bindings[b.Context] = append(r.bindings[b.Context], b)
	}
}

// Override binds key to cmd in ctx ahead of the defaults
func (r *Registry) Override(ctx Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overrides[ctx] == nil {
		r.overrides[ctx] = make(map[string]Command)
	}
	r.overrides[ctx][key] = cmd
}

// Known reports whether cmd is bound anywhere by default
func (r *Registry) Known(cmd Command) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, bs := range r.bindings {
		for _, b := range bs {
			if b.Command == cmd {
				return true
			}
		}
	}
	return false
}

// Lookup resolves key in ctx. The first key of a chord returns found=false
// and is held for chordWindow; if the next key does not complete the chord
// it is resolved on its own.
func (r *Registry) Lookup(key tea.KeyMsg, ctx Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := KeyToString(key)
	now := r.now()

	if first := r.chord; first != "" {
		r.chord = ""
		if now.Sub(r.chordAt) < chordWindow {
			if cmd, ok := r.resolve(first+" "+k, ctx); ok {
				return cmd, true
			}
		}
	}

	if r.startsChord(k, ctx) {
		r.chord = k
		r.chordAt = now
		return "", false
	}
	return r.resolve(k, ctx)
}

// layers returns ctx then global, without duplicates
func layers(ctx Context) []Context {
	if ctx == "" || ctx == ContextGlobal {
		return []Context{ContextGlobal}
	}
	return []Context{ctx, ContextGlobal}
}

func (r *Registry) resolve(key string, ctx Context) (Command, bool) {
	for _, c := range layers(ctx) {
		if cmd, ok := r.overrides[c][key]; ok {
			return cmd, true
		}
	}
	for _, c := range layers(ctx) {
		for _, b := range r.bindings[c] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

func (r *Registry) startsChord(key string, ctx Context) bool {
	prefix := key + " "
	for _, c := range layers(ctx) {
		for k := range r.overrides[c] {
			if strings.HasPrefix(k, prefix) {
				return true
			}
		}
		for _, b := range r.bindings[c] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
	}
	return false
}

var keyNames = map[tea.KeyType]string{
	tea.KeyCtrlC:     "ctrl+c",
	tea.KeyCtrlD:     "ctrl+d",
	tea.KeyCtrlL:     "ctrl+l",
	tea.KeyCtrlR:     "ctrl+r",
	tea.KeyCtrlU:     "ctrl+u",
	tea.KeyTab:       "tab",
	tea.KeyShiftTab:  "shift+tab",
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "esc",
	tea.KeySpace:     "space",
	tea.KeyBackspace: "backspace",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pgup",
	tea.KeyPgDown:    "pgdown",
	tea.KeyDelete:    "delete",
}

// KeyToString names a key the way bindings spell it
func KeyToString(key tea.KeyMsg) string {
	if key.Type == tea.KeyRunes {
		return string(key.Runes)
	}
	if name, ok := keyNames[key.Type]; ok {
		return name
	}
	return key.String()
}

// IsPrintable reports whether key types a single visible character
func IsPrintable(key tea.KeyMsg) bool {
	switch {
	case key.Type == tea.KeySpace:
		return true
	case key.Type != tea.KeyRunes || len(key.Runes) != 1:
		return false
	}
	c := key.Runes[0]
	return c >= ' ' && c != 0x7f
}
