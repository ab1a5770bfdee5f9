// Package debounce coalesces rapidly changing search input.
//
// A Filter does not own a timer. Each Input returns a sequence number; the
// caller schedules a wake-up (tea.Tick in the dashboard) carrying it and calls
// Fire when it elapses. Only the wake-up for the latest input commits, so
// stale wake-ups are harmless and need no cancellation.
package debounce

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Filter holds the raw and committed search terms.
type Filter struct {
	Delay time.Duration

	raw       string
	committed string
	seq       uint64
	pending   bool
}

// New returns a Filter with the given quiet period.
func New(delay time.Duration) *Filter {
	return &Filter{Delay: delay}
}

// Raw returns the latest raw input.
func (f *Filter) Raw() string { return f.raw }

// Committed returns the last committed term.
func (f *Filter) Committed() string { return f.committed }

// Pending reports whether an input is waiting for its quiet period.
func (f *Filter) Pending() bool { return f.pending }

// Input records a raw value and returns the sequence its wake-up must carry.
func (f *Filter) Input(raw string) uint64 {
	f.raw = raw
	f.seq++
	f.pending = true
	return f.seq
}

// Fire is called when the wake-up for seq elapses. It returns the term to
// propagate and true when seq is still the latest input and the trimmed term
// differs from the committed one.
func (f *Filter) Fire(seq uint64) (string, bool) {
	if seq != f.seq || !f.pending {
		return "", false
	}
	f.pending = false
	return f.commit(strings.TrimSpace(f.raw))
}

// Clear empties the input and commits "" at once, dropping pending wake-ups.
// It returns true when the committed term changed.
func (f *Filter) Clear() bool {
	f.raw = ""
	f.seq++
	f.pending = false
	_, changed := f.commit("")
	return changed
}

// Restore sets raw and committed to term without scheduling anything.
func (f *Filter) Restore(term string) {
	f.raw = term
	f.committed = strings.TrimSpace(term)
	f.seq++
	f.pending = false
}

// Stop drops any pending wake-up.
func (f *Filter) Stop() {
	f.seq++
	f.pending = false
}

func (f *Filter) commit(term string) (string, bool) {
	if term == f.committed {
		return term, false
	}
	f.committed = term
	return term, true
}

// Msg is delivered when a debounce wake-up elapses.
type Msg struct {
	Seq uint64
}

// Tick schedules the wake-up for seq after the filter's delay.
func (f *Filter) Tick(seq uint64) tea.Cmd {
	return tea.Tick(f.Delay, func(time.Time) tea.Msg {
		return Msg{Seq: seq}
	})
}
