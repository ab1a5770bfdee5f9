package report

import (
	"time"

	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
)

// Minimum dimensions for the dashboard
const (
	MinWidth  = 40
	MinHeight = 12
)

// Layout. Every card occupies cardHeight lines: a top line, two body lines
// and a blank separator.
const (
	headerHeight = 3 // title, search bar, blank
	footerHeight = 2 // status line, key hints
	cardHeight   = 4
	cardLines    = 3
)

// toastDuration is how long a notification stays on screen
const toastDuration = 3 * time.Second

// Rect represents a rectangular region for hit-testing
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MenuAction identifies a context menu entry
type MenuAction int

const (
	MenuViewOrder MenuAction = iota
	MenuJobOrder
	MenuChangeStatus
	MenuMeasurements
	MenuDelete
)

// MenuEntry is one line of the context menu
type MenuEntry struct {
	Action   MenuAction
	Label    string
	Disabled bool
	Reason   string // why Disabled
}

// MenuState is the open context menu
type MenuState struct {
	Item    models.PendingItem
	Entries []MenuEntry
	Cursor  int
}

// PickerState is the open status picker
type PickerState struct {
	Item    models.PendingItem
	Options []statusflow.Option
	Cursor  int
}

// ConfirmState is the open delete confirmation
type ConfirmState struct {
	Item     models.PendingItem
	OnlyItem bool // last loaded item of its sales order
	FocusYes bool
}

// DetailsState is the open sales order details modal
type DetailsState struct {
	Item   models.PendingItem
	Scroll int
}

// MeasureState is the open measurement sheet modal
type MeasureState struct {
	Item    models.PendingItem
	Loading bool
	Err     error
	Sheet   *models.MeasurementSheet
	Render  string
	Scroll  int
}

// PageLoadedMsg carries a finished page fetch
type PageLoadedMsg struct {
	Result pager.Result
}

// LongPressMsg is posted by the gesture timer when a hold reaches threshold
type LongPressMsg struct {
	Token uint64
}

// StatusResultMsg carries the outcome of a status change
type StatusResultMsg struct {
	Item   models.PendingItem
	Target models.Status
	Err    error
}

// DeleteResultMsg carries the outcome of a delete
type DeleteResultMsg struct {
	Item models.PendingItem
	Err  error
}

// MeasurementsMsg carries a fetched and rendered measurement sheet
type MeasurementsMsg struct {
	ItemKey string
	Sheet   *models.MeasurementSheet
	Render  string
	Err     error
}

// ClipboardMsg carries the outcome of a clipboard copy
type ClipboardMsg struct {
	What string
	Err  error
}

// SearchSavedMsg is sent after the committed search is persisted
type SearchSavedMsg struct {
	Err error
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct {
	Seq int
}
