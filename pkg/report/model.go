package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tailor/internal/config"
	"github.com/marcus/tailor/internal/debounce"
	"github.com/marcus/tailor/internal/gesture"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
	"github.com/marcus/tailor/pkg/report/keymap"
)

// API is everything the dashboard asks of the report backend
type API interface {
	pager.Fetcher
	statusflow.API
	Measurements(ctx context.Context, orderID, itemID string) (*models.MeasurementSheet, error)
}

// Options configures a dashboard Model
type Options struct {
	API        API
	Settings   config.Settings
	Home       string              // where the last search is persisted; "" disables
	History    statusflow.Recorder // may be nil
	Scheduler  gesture.Scheduler   // nil uses real timers
	Dispatcher *Dispatcher         // receives long-press notifications
	Keymap     *keymap.Registry    // nil uses the defaults
	Clipboard  func(string) error  // nil uses the system clipboard
	Version    string
}

// Model is the Bubble Tea model for the pending sales dashboard
type Model struct {
	api        API
	flow       *statusflow.Flow
	dispatcher *Dispatcher
	home       string
	settings   config.Settings
	clipboard  func(string) error
	now        func() time.Time

	// Loading and interaction state machines
	Loader  *pager.Loader
	Trigger *pager.Trigger
	Filter  *debounce.Filter
	Gesture *gesture.Detector

	// Window dimensions
	Width  int
	Height int

	// List state
	Cursor       int
	ScrollOffset int
	SelectedKey  string // preserved across reloads
	pressKey     string // card under an active press

	// Search
	SearchMode  bool
	SearchInput textinput.Model
	Spinner     spinner.Model

	// Overlays, at most one open at a time
	Menu    *MenuState
	Picker  *PickerState
	Confirm *ConfirmState
	Details *DetailsState
	Measure *MeasureState

	HelpOpen   bool
	HelpScroll int

	// A status change or delete is in flight
	Mutating bool

	// Toast
	StatusMessage string
	StatusIsError bool
	statusSeq     int

	Keymap  *keymap.Registry
	Version string
}

// NewModel builds a dashboard model. The last committed search is restored
// into both the input and the filter so the first fetch uses it.
func NewModel(opts Options) Model {
	km := opts.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "Search customer, product or order"
	ti.Prompt = ""
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = subtleStyle

	dispatcher := opts.Dispatcher
	m := Model{
		api:        opts.API,
		flow:       statusflow.New(opts.API, opts.History),
		dispatcher: dispatcher,
		home:       opts.Home,
		settings:   opts.Settings,
		clipboard:  clip,
		now:        time.Now,
		Loader:     pager.New(opts.API, opts.Settings.PerPage),
		Trigger:    pager.NewTrigger(),
		Filter:     debounce.New(opts.Settings.SearchDebounce),
		Gesture: gesture.New(opts.Settings.LongPress, opts.Scheduler, func(token uint64) {
			dispatcher.Send(LongPressMsg{Token: token})
		}),
		SearchInput: ti,
		Spinner:     sp,
		Keymap:      km,
		Version:     opts.Version,
	}

	if term := opts.Settings.LastSearch; term != "" {
		m.SearchInput.SetValue(term)
		m.Filter.Restore(term)
		m.Loader.SetSearch(m.Filter.Committed())
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.Spinner.Tick)
}

// Close releases everything the model owns: the fetch in flight, the hold
// timer, pending search wake-ups and the scroll trigger. It is safe to call
// more than once.
func (m Model) Close() {
	m.Loader.Cancel()
	m.Gesture.Close()
	m.Filter.Stop()
	m.Trigger.Disconnect()
	if m.dispatcher != nil {
		m.dispatcher.Detach()
	}
	slog.Debug("report: closed")
}

// Update implements tea.Model. After every message the load-more sentinel is
// observed, mirroring a render pass.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if more := next.observeSentinel(); more != nil {
		cmd = tea.Batch(cmd, more)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.SearchInput.Width = max(m.Width-14, 10)
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case debounce.Msg:
		term, ok := m.Filter.Fire(msg.Seq)
		if !ok {
			return m, nil
		}
		return m, m.applySearch(term)

	case LongPressMsg:
		target, ok := m.Gesture.Fire(msg.Token)
		if !ok {
			return m, nil
		}
		if item, found := m.itemByKey(target); found {
			m.openMenu(item)
		}
		return m, nil

	case StatusResultMsg:
		return m.handleStatusResult(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case MeasurementsMsg:
		if m.Measure == nil || m.Measure.Item.Key() != msg.ItemKey {
			return m, nil
		}
		m.Measure.Loading = false
		m.Measure.Sheet = msg.Sheet
		m.Measure.Render = msg.Render
		m.Measure.Err = msg.Err
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			slog.Warn("report: clipboard", "err", msg.Err)
			return m.toast("Clipboard unavailable", true)
		}
		return m.toast("Copied "+msg.What, false)

	case SearchSavedMsg:
		if msg.Err != nil {
			slog.Warn("report: save last search", "err", msg.Err)
		}
		return m, nil

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMessage = ""
			m.StatusIsError = false
		}
		return m, nil
	}

	if m.SearchMode {
		var cmd tea.Cmd
		m.SearchInput, cmd = m.SearchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (Model, tea.Cmd) {
	applied, err := m.Loader.Complete(msg.Result)
	if !applied {
		return m, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return m, nil
		}
		slog.Warn("report: page fetch failed",
			"page", msg.Result.Query.Page, "search", msg.Result.Query.Search, "err", err)
		return m.toast(userMessage(err, "Failed to load pending sales"), true)
	}

	slog.Debug("report: page loaded",
		"page", m.Loader.State().CurrentPage, "rows", len(m.Loader.Rows()), "more", m.Loader.State().HasMorePages)
	m.restoreCursor(msg.Result.Append)
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// Rows returns the loaded rows
func (m Model) Rows() []models.PendingItem {
	return m.Loader.Rows()
}

// SelectedItem returns the row under the cursor
func (m Model) SelectedItem() (models.PendingItem, bool) {
	rows := m.Loader.Rows()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return models.PendingItem{}, false
	}
	return rows[m.Cursor], true
}

// OverlayOpen reports whether any modal or menu covers the list
func (m Model) OverlayOpen() bool {
	return m.Menu != nil || m.Picker != nil || m.Confirm != nil ||
		m.Details != nil || m.Measure != nil || m.HelpOpen
}

// CurrentContext returns the keymap context for the frontmost layer
func (m Model) CurrentContext() keymap.Context {
	switch {
	case m.HelpOpen:
		return keymap.ContextHelp
	case m.Confirm != nil:
		return keymap.ContextConfirm
	case m.Picker != nil:
		return keymap.ContextStatusPicker
	case m.Menu != nil:
		return keymap.ContextMenu
	case m.Measure != nil:
		return keymap.ContextMeasurements
	case m.Details != nil:
		return keymap.ContextDetails
	case m.SearchMode:
		return keymap.ContextSearch
	default:
		return keymap.ContextMain
	}
}

func (m Model) itemByKey(key string) (models.PendingItem, bool) {
	for _, r := range m.Loader.Rows() {
		if r.Key() == key {
			return r, true
		}
	}
	return models.PendingItem{}, false
}

// visibleRows is how many cards fit between the header and footer
func (m Model) visibleRows() int {
	h := m.Height - headerHeight - footerHeight
	if h < cardHeight {
		return 1
	}
	return h / cardHeight
}

// restoreCursor keeps the selected row selected after a fetch. A replacing
// fetch that dropped the selected row puts the cursor back on top.
func (m *Model) restoreCursor(appended bool) {
	rows := m.Loader.Rows()
	if m.SelectedKey != "" {
		for i, r := range rows {
			if r.Key() == m.SelectedKey {
				m.Cursor = i
				m.ensureCursorVisible()
				return
			}
		}
	}
	if !appended {
		m.Cursor = 0
		m.ScrollOffset = 0
	}
	m.clampCursor()
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	n := len(m.Loader.Rows())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if item, ok := m.SelectedItem(); ok {
		m.SelectedKey = item.Key()
	} else {
		m.SelectedKey = ""
	}
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if m.Cursor < m.ScrollOffset {
		m.ScrollOffset = m.Cursor
	}
	if m.Cursor >= m.ScrollOffset+visible {
		m.ScrollOffset = m.Cursor - visible + 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := len(m.Loader.Rows()) - m.visibleRows()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.ScrollOffset > maxScroll {
		m.ScrollOffset = maxScroll
	}
	if m.ScrollOffset < 0 {
		m.ScrollOffset = 0
	}
}

// moveCursor moves the cursor by delta rows
func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampCursor()
	m.ensureCursorVisible()
}

// sentinelVisible reports whether the last loaded row is inside the viewport
func (m Model) sentinelVisible() bool {
	n := len(m.Loader.Rows())
	if n == 0 || m.Height == 0 {
		return false
	}
	last := n - 1
	return last >= m.ScrollOffset && last-m.ScrollOffset < m.visibleRows()
}

// observeSentinel feeds the trigger and issues the next page when the end of
// the list has just come into view.
func (m Model) observeSentinel() tea.Cmd {
	rows := m.Loader.Rows()
	if len(rows) == 0 {
		return nil
	}
	sentinel := rows[len(rows)-1].Key()
	state := m.Loader.State()
	if !m.Trigger.Observe(sentinel, m.sentinelVisible(), state.HasMorePages, m.Loader.Busy()) {
		return nil
	}
	return m.loadMore()
}
