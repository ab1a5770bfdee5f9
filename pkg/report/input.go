package report

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/internal/statusflow"
	"github.com/marcus/tailor/pkg/report/keymap"
)

// handleKey routes a key press through the keymap for the frontmost layer.
// While searching, printable keys are text and never commands.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctx := m.CurrentContext()

	if ctx == keymap.ContextSearch {
		if !keymap.IsPrintable(msg) {
			if cmd, ok := m.Keymap.Lookup(msg, ctx); ok {
				return m.executeCommand(cmd)
			}
		}
		return m.updateSearchInput(msg)
	}

	cmd, ok := m.Keymap.Lookup(msg, ctx)
	if !ok {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// updateSearchInput feeds the key to the text input and debounces the
// result. Emptying the field commits the empty term at once.
func (m Model) updateSearchInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.SearchInput.Value()
	var inputCmd tea.Cmd
	m.SearchInput, inputCmd = m.SearchInput.Update(msg)
	value := m.SearchInput.Value()
	if value == before {
		return m, inputCmd
	}

	if value == "" {
		if m.Filter.Clear() {
			return m, tea.Batch(inputCmd, m.applySearch(""))
		}
		return m, inputCmd
	}
	seq := m.Filter.Input(value)
	return m, tea.Batch(inputCmd, m.Filter.Tick(seq))
}

// executeCommand runs a keymap command in the current context
func (m Model) executeCommand(cmd keymap.Command) (Model, tea.Cmd) {
	ctx := m.CurrentContext()

	switch cmd {
	case keymap.CmdQuit:
		m.Close()
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		open := !m.HelpOpen
		m.closeOverlays()
		m.HelpOpen = open
		m.HelpScroll = 0
		return m, nil

	case keymap.CmdCursorDown, keymap.CmdCursorUp:
		delta := 1
		if cmd == keymap.CmdCursorUp {
			delta = -1
		}
		switch ctx {
		case keymap.ContextMenu:
			m.Menu.Cursor = moveIndex(m.Menu.Cursor, delta, len(m.Menu.Entries))
		case keymap.ContextStatusPicker:
			m.Picker.Cursor = moveIndex(m.Picker.Cursor, delta, len(m.Picker.Options))
		default:
			m.moveCursor(delta)
		}
		return m, nil

	case keymap.CmdCursorTop:
		m.Cursor = 0
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdCursorBottom:
		m.Cursor = len(m.Loader.Rows()) - 1
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case keymap.CmdHalfPageDown:
		m.moveCursor(max(m.visibleRows()/2, 1))
		return m, nil

	case keymap.CmdHalfPageUp:
		m.moveCursor(-max(m.visibleRows()/2, 1))
		return m, nil

	case keymap.CmdScrollDown:
		m.scrollModal(1)
		return m, nil

	case keymap.CmdScrollUp:
		m.scrollModal(-1)
		return m, nil

	case keymap.CmdSelect:
		switch ctx {
		case keymap.ContextMenu:
			return m.runMenuEntry(m.Menu.Cursor)
		case keymap.ContextStatusPicker:
			return m.choosePicker(m.Picker.Cursor)
		case keymap.ContextConfirm:
			if m.Confirm.FocusYes {
				return m.confirmDelete()
			}
			m.Confirm = nil
		}
		return m, nil

	case keymap.CmdClose, keymap.CmdCancel:
		m.closeOverlays()
		return m, nil

	case keymap.CmdConfirm:
		return m.confirmDelete()

	case keymap.CmdNextButton, keymap.CmdPrevButton:
		if m.Confirm != nil {
			m.Confirm.FocusYes = !m.Confirm.FocusYes
		}
		return m, nil

	case keymap.CmdOpenDetails:
		if item, ok := m.SelectedItem(); ok {
			m.openDetails(item)
		}
		return m, nil

	case keymap.CmdOpenMenu:
		item, ok := m.SelectedItem()
		if m.Details != nil {
			item, ok = m.Details.Item, true
		}
		if ok {
			m.openMenu(item)
		}
		return m, nil

	case keymap.CmdChangeStatus:
		if item, ok := m.SelectedItem(); ok {
			m.openPicker(item)
		}
		return m, nil

	case keymap.CmdDelete:
		item, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		if err := statusflow.CheckDelete(item); err != nil {
			return m.toast(userMessage(err, "Failed to delete item"), true)
		}
		m.openConfirm(item)
		return m, nil

	case keymap.CmdOpenMeasurements:
		if item, ok := m.SelectedItem(); ok {
			return m.openMeasurements(item)
		}
		return m, nil

	case keymap.CmdCopyOrderLink:
		item, ok := m.SelectedItem()
		if m.Details != nil {
			item, ok = m.Details.Item, true
		}
		if ok {
			return m, m.copyLink(item.SalesOrderPath(), "sales order link")
		}
		return m, nil

	case keymap.CmdCopyJobOrderLink:
		if item, ok := m.SelectedItem(); ok {
			return m, m.copyLink(item.JobOrderPath(), "job order link")
		}
		return m, nil

	case keymap.CmdRefresh:
		return m, m.reload()

	case keymap.CmdLoadMore:
		if !m.Loader.State().HasMorePages {
			return m.toast("No more items", false)
		}
		return m, m.loadMore()

	case keymap.CmdSearch:
		m.SearchMode = true
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()

	case keymap.CmdSearchConfirm:
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, m.flushSearch()

	case keymap.CmdSearchCancel:
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, m.clearSearch()

	case keymap.CmdSearchClear:
		return m, m.clearSearch()
	}

	return m, nil
}

// flushSearch commits the typed term without waiting for the debounce
func (m *Model) flushSearch() tea.Cmd {
	value := m.SearchInput.Value()
	if value == "" {
		return m.clearSearch()
	}
	term, ok := m.Filter.Fire(m.Filter.Input(value))
	if !ok {
		return nil
	}
	return m.applySearch(term)
}

// clearSearch empties the input and commits the empty term immediately
func (m *Model) clearSearch() tea.Cmd {
	m.SearchInput.SetValue("")
	if !m.Filter.Clear() {
		return nil
	}
	return m.applySearch("")
}

func (m Model) confirmDelete() (Model, tea.Cmd) {
	if m.Confirm == nil {
		return m, nil
	}
	item := m.Confirm.Item
	m.Confirm = nil
	return m.startDelete(item)
}

// scrollModal scrolls whichever scrollable modal is open
func (m *Model) scrollModal(delta int) {
	height := m.modalBodyHeight()
	switch {
	case m.HelpOpen:
		m.HelpScroll = clampScroll(m.HelpScroll+delta, lineCount(m.Keymap.GenerateHelp()), height)
	case m.Measure != nil:
		m.Measure.Scroll = clampScroll(m.Measure.Scroll+delta, lineCount(m.Measure.Render), height)
	case m.Details != nil:
		body := output.FormatItemLong(&m.Details.Item, m.now())
		m.Details.Scroll = clampScroll(m.Details.Scroll+delta, lineCount(body), height)
	}
}

func lineCount(s string) int {
	return strings.Count(strings.TrimRight(s, "\n"), "\n") + 1
}

// handleMouse turns pointer events into taps and long presses on cards.
// A press arms the hold timer; release before it fires is a tap that opens
// the sales order; the timer firing opens the item menu instead. Moving off
// the card cancels the press.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if m.OverlayOpen() {
			m.scrollModal(delta)
			return m, nil
		}
		m.scrollList(delta)
		return m, nil
	}

	if m.OverlayOpen() {
		return m.handleOverlayMouse(msg)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row := m.HitTestRow(msg.Y)
		if row < 0 {
			m.Gesture.Leave()
			return m, nil
		}
		m.Cursor = row
		m.clampCursor()
		key := m.Loader.Rows()[row].Key()
		m.pressKey = key
		m.Gesture.Press(key)
		return m, nil

	case tea.MouseActionMotion:
		if m.pressKey == "" {
			return m, nil
		}
		row := m.HitTestRow(msg.Y)
		if row < 0 || m.Loader.Rows()[row].Key() != m.pressKey {
			m.Gesture.Leave()
			m.pressKey = ""
		}
		return m, nil

	case tea.MouseActionRelease:
		m.pressKey = ""
		out := m.Gesture.Release()
		if !out.Tap || !m.Gesture.AllowTap() {
			return m, nil
		}
		if item, ok := m.itemByKey(out.Target); ok {
			m.openDetails(item)
		}
		return m, nil
	}
	return m, nil
}

// scrollList scrolls the card list by delta rows, keeping the cursor on screen
func (m *Model) scrollList(delta int) {
	m.ScrollOffset += delta
	m.clampScroll()
	visible := m.visibleRows()
	if m.Cursor < m.ScrollOffset {
		m.Cursor = m.ScrollOffset
	}
	if m.Cursor >= m.ScrollOffset+visible {
		m.Cursor = m.ScrollOffset + visible - 1
	}
	m.clampCursor()
}

// handleOverlayMouse handles clicks while a menu or modal is open. A click
// outside the box closes it; a click on a menu or picker entry selects it.
func (m Model) handleOverlayMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease {
		// The release of the long press that opened the menu lands here.
		m.pressKey = ""
		m.Gesture.Release()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	var box string
	switch {
	case m.HelpOpen:
		box = m.renderHelp()
	case m.Confirm != nil:
		box = m.renderConfirm()
	case m.Picker != nil:
		box = m.renderPicker()
	case m.Menu != nil:
		box = m.renderMenu()
	case m.Measure != nil:
		box = m.renderMeasurements()
	case m.Details != nil:
		box = m.renderDetails()
	}
	bounds := m.overlayBounds(box)
	if !bounds.Contains(msg.X, msg.Y) {
		m.closeOverlays()
		return m, nil
	}

	// First entry sits below the top border and the header lines.
	idx := msg.Y - bounds.Y - 1 - menuHeaderLines
	switch {
	case m.Picker != nil:
		if idx >= 0 && idx < len(m.Picker.Options) {
			m.Picker.Cursor = idx
			return m.choosePicker(idx)
		}
	case m.Menu != nil:
		if idx >= 0 && idx < len(m.Menu.Entries) {
			m.Menu.Cursor = idx
			return m.runMenuEntry(idx)
		}
	}
	return m, nil
}
