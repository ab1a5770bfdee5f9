package keymap

import (
	"fmt"
	"strings"
)

// helpSections lists the contexts shown in help, in order.
var helpSections = []struct {
	Title   string
	Context Context
}{
	{"LIST", ContextMain},
	{"SEARCH", ContextSearch},
	{"ITEM MENU", ContextMenu},
	{"STATUS PICKER", ContextStatusPicker},
	{"DELETE CONFIRMATION", ContextConfirm},
	{"SALES ORDER DETAILS", ContextDetails},
	{"MEASUREMENTS", ContextMeasurements},
	{"GLOBAL", ContextGlobal},
}

// GenerateHelp generates help text from the registry bindings. Keys bound
// to the same command within a context are joined on one line.
func (r *Registry) GenerateHelp() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\nPENDING SALES - Key Bindings\n")

	sb.WriteString("\nMOUSE:\n")
	sb.WriteString(fmt.Sprintf("  %-20s %s\n", "Click", "View sales order"))
	sb.WriteString(fmt.Sprintf("  %-20s %s\n", "Press and hold", "Open item menu"))
	sb.WriteString(fmt.Sprintf("  %-20s %s\n", "Wheel", "Scroll; more rows load at the end"))

	for _, sec := range helpSections {
		var order []Command
		keys := make(map[Command][]string)
		desc := make(map[Command]string)
		for _, b := range r.bindings[sec.Context] {
			if _, seen := keys[b.Command]; !seen {
				order = append(order, b.Command)
				desc[b.Command] = b.Description
			}
			keys[b.Command] = append(keys[b.Command], formatKey(b.Key))
		}
		if len(order) == 0 {
			continue
		}
		sb.WriteString("\n" + sec.Title + ":\n")
		for _, cmd := range order {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", strings.Join(keys[cmd], " / "), desc[cmd]))
		}
	}

	sb.WriteString("\nPress ? to close help\n")
	return sb.String()
}

// FooterHelp generates a compact help string for the footer
func (r *Registry) FooterHelp() string {
	return "/:search  enter:view  m:menu  s:status  x:delete  M:measure  r:reload  ?:help  q:quit"
}

// ModalFooterHelp generates help text for the scrollable modals
func (r *Registry) ModalFooterHelp() string {
	return "↑↓:scroll  esc:close"
}

// formatKey formats a key string for display
func formatKey(key string) string {
	replacements := []struct{ old, new string }{
		{"shift+tab", "Shift+Tab"},
		{"ctrl+", "Ctrl+"},
		{"pgup", "PgUp"},
		{"pgdown", "PgDn"},
		{"up", "↑"},
		{"down", "↓"},
		{"left", "←"},
		{"right", "→"},
		{"enter", "Enter"},
		{"esc", "Esc"},
		{"tab", "Tab"},
		{"space", "Space"},
	}

	result := key
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.old, r.new)
	}
	return result
}
