package keymap

// DefaultBindings returns the default key bindings for the report dashboard.
func DefaultBindings() []Binding {
	return []Binding{
		// ============================================================
		// GLOBAL BINDINGS
		// ============================================================
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// ============================================================
		// MAIN LIST
		// Active when no modal is open and not typing a search
		// ============================================================
		{Key: "j", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "ctrl+d", Command: CmdHalfPageDown, Context: ContextMain, Description: "Half page down"},
		{Key: "pgdown", Command: CmdHalfPageDown, Context: ContextMain, Description: "Half page down"},
		{Key: "ctrl+u", Command: CmdHalfPageUp, Context: ContextMain, Description: "Half page up"},
		{Key: "pgup", Command: CmdHalfPageUp, Context: ContextMain, Description: "Half page up"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},

		{Key: "enter", Command: CmdOpenDetails, Context: ContextMain, Description: "View sales order"},
		{Key: "m", Command: CmdOpenMenu, Context: ContextMain, Description: "Open item menu"},
		{Key: "space", Command: CmdOpenMenu, Context: ContextMain, Description: "Open item menu"},
		{Key: "s", Command: CmdChangeStatus, Context: ContextMain, Description: "Change status"},
		{Key: "x", Command: CmdDelete, Context: ContextMain, Description: "Delete item"},
		{Key: "M", Command: CmdOpenMeasurements, Context: ContextMain, Description: "Measurements"},
		{Key: "y", Command: CmdCopyOrderLink, Context: ContextMain, Description: "Copy sales order link"},
		{Key: "o", Command: CmdCopyJobOrderLink, Context: ContextMain, Description: "Copy job order link"},
		{Key: "r", Command: CmdRefresh, Context: ContextMain, Description: "Reload from page 1"},
		{Key: "ctrl+r", Command: CmdRefresh, Context: ContextMain, Description: "Reload from page 1"},
		{Key: "L", Command: CmdLoadMore, Context: ContextMain, Description: "Load next page"},
		{Key: "/", Command: CmdSearch, Context: ContextMain, Description: "Search"},
		{Key: "esc", Command: CmdSearchClear, Context: ContextMain, Description: "Clear search"},

		// ============================================================
		// SEARCH INPUT
		// Printable keys go to the text input
		// ============================================================
		{Key: "enter", Command: CmdSearchConfirm, Context: ContextSearch, Description: "Done typing"},
		{Key: "esc", Command: CmdSearchCancel, Context: ContextSearch, Description: "Clear and leave search"},
		{Key: "ctrl+l", Command: CmdSearchClear, Context: ContextSearch, Description: "Clear search"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextSearch, Description: "Quit"},

		// ============================================================
		// CONTEXT MENU
		// ============================================================
		{Key: "j", Command: CmdCursorDown, Context: ContextMenu, Description: "Next entry"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMenu, Description: "Next entry"},
		{Key: "tab", Command: CmdCursorDown, Context: ContextMenu, Description: "Next entry"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous entry"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous entry"},
		{Key: "shift+tab", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous entry"},
		{Key: "enter", Command: CmdSelect, Context: ContextMenu, Description: "Run entry"},
		{Key: "esc", Command: CmdClose, Context: ContextMenu, Description: "Close menu"},
		{Key: "q", Command: CmdClose, Context: ContextMenu, Description: "Close menu"},

		// ============================================================
		// STATUS PICKER
		// ============================================================
		{Key: "j", Command: CmdCursorDown, Context: ContextStatusPicker, Description: "Next status"},
		{Key: "down", Command: CmdCursorDown, Context: ContextStatusPicker, Description: "Next status"},
		{Key: "k", Command: CmdCursorUp, Context: ContextStatusPicker, Description: "Previous status"},
		{Key: "up", Command: CmdCursorUp, Context: ContextStatusPicker, Description: "Previous status"},
		{Key: "enter", Command: CmdSelect, Context: ContextStatusPicker, Description: "Apply status"},
		{Key: "esc", Command: CmdClose, Context: ContextStatusPicker, Description: "Cancel"},
		{Key: "q", Command: CmdClose, Context: ContextStatusPicker, Description: "Cancel"},

		// ============================================================
		// DELETE CONFIRMATION
		// ============================================================
		{Key: "y", Command: CmdConfirm, Context: ContextConfirm, Description: "Delete"},
		{Key: "n", Command: CmdCancel, Context: ContextConfirm, Description: "Cancel"},
		{Key: "esc", Command: CmdCancel, Context: ContextConfirm, Description: "Cancel"},
		{Key: "q", Command: CmdCancel, Context: ContextConfirm, Description: "Cancel"},
		{Key: "enter", Command: CmdSelect, Context: ContextConfirm, Description: "Press focused button"},
		{Key: "tab", Command: CmdNextButton, Context: ContextConfirm, Description: "Next button"},
		{Key: "right", Command: CmdNextButton, Context: ContextConfirm, Description: "Next button"},
		{Key: "shift+tab", Command: CmdPrevButton, Context: ContextConfirm, Description: "Previous button"},
		{Key: "left", Command: CmdPrevButton, Context: ContextConfirm, Description: "Previous button"},

		// ============================================================
		// DETAILS MODAL
		// ============================================================
		{Key: "j", Command: CmdScrollDown, Context: ContextDetails, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextDetails, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextDetails, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextDetails, Description: "Scroll up"},
		{Key: "y", Command: CmdCopyOrderLink, Context: ContextDetails, Description: "Copy sales order link"},
		{Key: "m", Command: CmdOpenMenu, Context: ContextDetails, Description: "Open item menu"},
		{Key: "esc", Command: CmdClose, Context: ContextDetails, Description: "Close"},
		{Key: "enter", Command: CmdClose, Context: ContextDetails, Description: "Close"},
		{Key: "q", Command: CmdClose, Context: ContextDetails, Description: "Close"},

		// ============================================================
		// MEASUREMENTS MODAL
		// ============================================================
		{Key: "j", Command: CmdScrollDown, Context: ContextMeasurements, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextMeasurements, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextMeasurements, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextMeasurements, Description: "Scroll up"},
		{Key: "esc", Command: CmdClose, Context: ContextMeasurements, Description: "Close"},
		{Key: "enter", Command: CmdClose, Context: ContextMeasurements, Description: "Close"},
		{Key: "q", Command: CmdClose, Context: ContextMeasurements, Description: "Close"},

		// ============================================================
		// HELP
		// ============================================================
		{Key: "j", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
