package report

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/statusflow"
)

// Confirmation prompts for delete
const (
	confirmDeleteItem  = "Are you sure you want to delete this item?"
	confirmDeleteOrder = "This is the only item in the Sales Order. Deleting this will delete the entire Sales Order. Continue?"
)

// menuEntries builds the context menu for item
func menuEntries(item models.PendingItem) []MenuEntry {
	jobLabel := "Create Job Order"
	if item.HasJobOrder() {
		jobLabel = "View Job Order"
	}
	del := MenuEntry{Action: MenuDelete, Label: "Delete Item"}
	if err := statusflow.CheckDelete(item); err != nil {
		del.Disabled = true
		del.Reason = capitalize(err.Error())
	}
	return []MenuEntry{
		{Action: MenuViewOrder, Label: "View Sales Order"},
		{Action: MenuJobOrder, Label: jobLabel},
		{Action: MenuChangeStatus, Label: "Change Status"},
		{Action: MenuMeasurements, Label: "Measurements"},
		del,
	}
}

// openMenu opens the context menu for item, replacing any other overlay
func (m *Model) openMenu(item models.PendingItem) {
	m.closeOverlays()
	m.selectKey(item.Key())
	m.Menu = &MenuState{Item: item, Entries: menuEntries(item)}
}

// closeOverlays closes every modal and menu
func (m *Model) closeOverlays() {
	m.Menu = nil
	m.Picker = nil
	m.Confirm = nil
	m.Details = nil
	m.Measure = nil
	m.HelpOpen = false
}

// selectKey moves the cursor to the row with key, if loaded
func (m *Model) selectKey(key string) {
	for i, r := range m.Loader.Rows() {
		if r.Key() == key {
			m.Cursor = i
			m.SelectedKey = key
			m.ensureCursorVisible()
			return
		}
	}
}

// runMenuEntry performs the entry under the menu cursor
func (m Model) runMenuEntry(idx int) (Model, tea.Cmd) {
	if m.Menu == nil || idx < 0 || idx >= len(m.Menu.Entries) {
		return m, nil
	}
	entry := m.Menu.Entries[idx]
	item := m.Menu.Item
	if entry.Disabled {
		return m.toast(entry.Reason, true)
	}
	m.Menu = nil

	switch entry.Action {
	case MenuViewOrder:
		m.openDetails(item)
		return m, nil
	case MenuJobOrder:
		return m, m.copyLink(item.JobOrderPath(), "job order link")
	case MenuChangeStatus:
		m.openPicker(item)
		return m, nil
	case MenuMeasurements:
		return m.openMeasurements(item)
	case MenuDelete:
		m.openConfirm(item)
		return m, nil
	}
	return m, nil
}

// openDetails shows the sales order details for item. This is the tap action.
func (m *Model) openDetails(item models.PendingItem) {
	m.closeOverlays()
	m.selectKey(item.Key())
	m.Details = &DetailsState{Item: item}
}

// openPicker opens the status picker with the cursor on the current status
func (m *Model) openPicker(item models.PendingItem) {
	m.closeOverlays()
	opts := statusflow.Options(item)
	cursor := 0
	for i, o := range opts {
		if o.Current {
			cursor = i
			break
		}
	}
	m.Picker = &PickerState{Item: item, Options: opts, Cursor: cursor}
}

// choosePicker applies the option under the picker cursor. Disabled options
// are rejected locally and leave the picker open.
func (m Model) choosePicker(idx int) (Model, tea.Cmd) {
	if m.Picker == nil || idx < 0 || idx >= len(m.Picker.Options) {
		return m, nil
	}
	opt := m.Picker.Options[idx]
	if !opt.Enabled() {
		return m.toast(userMessage(opt.Err, "Failed to update status"), true)
	}
	item := m.Picker.Item
	m.Picker = nil
	return m.startStatusChange(item, opt.Status)
}

// openConfirm asks before deleting item. Deleting the last loaded item of a
// sales order removes the whole order, so the prompt says so.
func (m *Model) openConfirm(item models.PendingItem) {
	m.closeOverlays()
	only := true
	for _, r := range m.Loader.Rows() {
		if r.OrderID == item.OrderID && r.ID != item.ID {
			only = false
			break
		}
	}
	m.Confirm = &ConfirmState{Item: item, OnlyItem: only}
}

func (c ConfirmState) prompt() string {
	if c.OnlyItem {
		return confirmDeleteOrder
	}
	return confirmDeleteItem
}

// openMeasurements opens the measurement modal and starts the fetch
func (m Model) openMeasurements(item models.PendingItem) (Model, tea.Cmd) {
	m.closeOverlays()
	m.Measure = &MeasureState{Item: item, Loading: true}
	return m, m.fetchMeasurements(item)
}

// moveIndex moves a list cursor by delta within n entries, wrapping
func moveIndex(cur, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((cur+delta)%n + n) % n
}
