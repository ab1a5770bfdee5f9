package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
)

// menuHeaderLines is the number of lines above the first menu or picker
// entry inside the box: title, subtitle, blank.
const menuHeaderLines = 3

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	switch {
	case m.HelpOpen:
		return m.placeOverlay(m.renderHelp())
	case m.Confirm != nil:
		return m.placeOverlay(m.renderConfirm())
	case m.Picker != nil:
		return m.placeOverlay(m.renderPicker())
	case m.Menu != nil:
		return m.placeOverlay(m.renderMenu())
	case m.Measure != nil:
		return m.placeOverlay(m.renderMeasurements())
	case m.Details != nil:
		return m.placeOverlay(m.renderDetails())
	}

	lines := make([]string, 0, m.Height)
	lines = append(lines, m.renderHeader()...)
	lines = append(lines, m.renderCards()...)
	for len(lines) < m.Height-footerHeight {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderStatusLine(), helpStyle.Render(m.Keymap.FooterHelp()))
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, m.Width, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCompact() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
		m.Width, m.Height, MinWidth, MinHeight)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, errorStyle.Render(msg))
}

// renderHeader renders the title and search lines plus a blank separator
func (m Model) renderHeader() []string {
	title := appTitleStyle.Render("Pending Sales")
	state := m.Loader.State()
	count := ""
	if m.Loader.Loaded() {
		count = subtleStyle.Render(fmt.Sprintf(" %d of %d", len(m.Loader.Rows()), state.Total))
	}
	busy := ""
	if m.Loader.Loading() || m.Mutating {
		busy = " " + m.Spinner.View()
	}

	var search string
	switch {
	case m.SearchMode:
		search = searchPromptStyle.Render("/ ") + m.SearchInput.View()
	case m.Filter.Raw() != "":
		search = searchPromptStyle.Render("/ ") + m.Filter.Raw() + subtleStyle.Render("  (esc to clear)")
	default:
		search = subtleStyle.Render("/ to search")
	}

	return []string{title + count + busy, search, ""}
}

// renderCards renders the visible window of cards. Every card is exactly
// cardHeight lines so HitTestRow can map a y coordinate back to a row.
func (m Model) renderCards() []string {
	rows := m.Loader.Rows()
	if len(rows) == 0 {
		switch {
		case !m.Loader.Loaded():
			return []string{subtleStyle.Render("  Loading pending sales...")}
		case m.Loader.Search() != "":
			return []string{subtleStyle.Render(fmt.Sprintf("  No pending items match %q", m.Loader.Search()))}
		default:
			return []string{subtleStyle.Render("  No pending items")}
		}
	}

	var lines []string
	end := min(m.ScrollOffset+m.visibleRows(), len(rows))
	for i := m.ScrollOffset; i < end; i++ {
		lines = append(lines, m.renderCard(rows[i], i == m.Cursor)...)
	}
	return lines
}

func (m Model) renderCard(item models.PendingItem, selected bool) []string {
	bar := cardBarStyle.Render("│ ")
	title := cardTitleStyle.Render(item.ProductName)
	switch {
	case m.Gesture.Target() == item.Key():
		bar = cardPressedStyle.Render("┃ ")
		title = cardPressedStyle.Render(item.ProductName)
	case selected:
		bar = cardSelectedStyle.Render("▌ ")
		title = cardSelectedStyle.Render(item.ProductName)
	}

	width := m.Width - 2
	status := formatStatusTag(item.Status)
	top := title + subtleStyle.Render(" · "+item.CustomerName)
	gap := width - lipgloss.Width(top) - lipgloss.Width(status)
	if gap < 1 {
		top = ansi.Truncate(top, max(width-lipgloss.Width(status)-1, 1), "…")
		gap = 1
	}
	top += strings.Repeat(" ", gap) + status

	order := fmt.Sprintf("Order %s · Due %s", item.OrderID, output.FormatDue(item.DeliveryDate, m.now()))
	job := "No job order"
	if item.HasJobOrder() {
		job = "Job: " + item.LatestJobOrderStatus()
	}
	if item.OrderedQty != nil {
		job += " · Qty " + output.FormatQty(item.OrderedQty)
	}

	return []string{
		bar + ansi.Truncate(top, width, "…"),
		bar + ansi.Truncate(order, width, "…"),
		bar + subtleStyle.Render(ansi.Truncate(job, width, "…")),
		"",
	}
}

// renderStatusLine shows the toast, or the paging state
func (m Model) renderStatusLine() string {
	if m.StatusMessage != "" {
		if m.StatusIsError {
			return errorStyle.Render("✗ " + m.StatusMessage)
		}
		return okStyle.Render("✓ " + m.StatusMessage)
	}
	switch {
	case m.Loader.FetchingMore():
		return subtleStyle.Render(m.Spinner.View() + " Loading more...")
	case m.Mutating:
		return subtleStyle.Render(m.Spinner.View() + " Saving...")
	case m.Loader.Loaded() && !m.Loader.State().HasMorePages && len(m.Loader.Rows()) > 0:
		return subtleStyle.Render("End of list")
	}
	return ""
}

// HitTestRow returns the row index of the card at y, or -1. The blank
// separator line under each card belongs to no row.
func (m Model) HitTestRow(y int) int {
	if y < headerHeight || y >= m.Height-footerHeight {
		return -1
	}
	rel := y - headerHeight
	if rel%cardHeight >= cardLines {
		return -1
	}
	idx := rel / cardHeight
	if idx >= m.visibleRows() {
		return -1
	}
	row := m.ScrollOffset + idx
	if row >= len(m.Loader.Rows()) {
		return -1
	}
	return row
}

// modalWidth is the outer width of a centered modal
func (m Model) modalWidth() int {
	return max(min(m.Width-4, 72), 30)
}

// modalBodyHeight is how many scrollable lines a modal shows
func (m Model) modalBodyHeight() int {
	return max(m.Height-8, 3)
}

// overlayTop is the first screen line of an overlay box of height h
func (m Model) overlayTop(h int) int {
	return max((m.Height-h)/2, 0)
}

// placeOverlay centers box horizontally at overlayTop. Placing vertically by
// hand keeps the box where the mouse hit tests expect it.
func (m Model) placeOverlay(box string) string {
	top := m.overlayTop(lipgloss.Height(box))
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", top)+box)
}

// overlayBounds returns the screen rectangle of box as placed by placeOverlay
func (m Model) overlayBounds(box string) Rect {
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return Rect{X: max((m.Width-w)/2, 0), Y: m.overlayTop(h), W: w, H: h}
}

func (m Model) renderMenu() string {
	menu := m.Menu
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(menu.Item.ProductName) + "\n")
	sb.WriteString(subtleStyle.Render(menu.Item.CustomerName+" · Order "+menu.Item.OrderID) + "\n\n")
	for i, e := range menu.Entries {
		line := " " + e.Label + " "
		switch {
		case e.Disabled:
			line = disabledRowStyle.Render(line)
		case i == menu.Cursor:
			line = selectedRowStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	if cur := menu.Entries[menu.Cursor]; cur.Disabled {
		sb.WriteString("\n" + subtleStyle.Render(cur.Reason))
	} else {
		sb.WriteString("\n" + helpStyle.Render("enter:select  esc:close"))
	}
	return modalStyle.Width(m.modalWidth() - 4).Render(sb.String())
}

func (m Model) renderPicker() string {
	p := m.Picker
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Change Status") + "\n")
	sb.WriteString(subtleStyle.Render(p.Item.ProductName+" · "+p.Item.CustomerName) + "\n\n")
	for i, o := range p.Options {
		label := " " + o.Status.String()
		if o.Current {
			label += " (current)"
		}
		label += " "
		switch {
		case i == p.Cursor && o.Enabled():
			label = selectedRowStyle.Render(label)
		case i == p.Cursor:
			label = selectedRowStyle.Inherit(disabledRowStyle).Render(label)
		case !o.Enabled():
			label = disabledRowStyle.Render(label)
		default:
			label = formatStatusTag(o.Status.String())
			label = " " + label + " "
		}
		sb.WriteString(label + "\n")
	}
	if cur := p.Options[p.Cursor]; !cur.Enabled() {
		sb.WriteString("\n" + subtleStyle.Render(userMessage(cur.Err, "Not available")))
	} else {
		sb.WriteString("\n" + helpStyle.Render("enter:apply  esc:cancel"))
	}
	return modalStyle.Width(m.modalWidth() - 4).Render(sb.String())
}

func (m Model) renderConfirm() string {
	c := m.Confirm
	width := m.modalWidth() - 4
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Delete Item") + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(width-2).Render(c.prompt()) + "\n\n")

	yes, no := buttonStyle.Render("Delete"), buttonFocusedStyle.Render("Cancel")
	if c.FocusYes {
		yes, no = buttonFocusedStyle.Render("Delete"), buttonStyle.Render("Cancel")
	}
	sb.WriteString(yes + "  " + no + "\n\n")
	sb.WriteString(helpStyle.Render("y:delete  n:cancel  tab:switch"))
	return dangerModalStyle.Width(width).Render(sb.String())
}

func (m Model) renderDetails() string {
	d := m.Details
	body := output.FormatItemLong(&d.Item, m.now())
	return m.renderScrollModal("Sales Order", body, d.Scroll,
		"y:copy link  m:menu  esc:close")
}

func (m Model) renderMeasurements() string {
	s := m.Measure
	var body string
	switch {
	case s.Loading:
		body = m.Spinner.View() + " Loading measurements..."
	case s.Err != nil:
		body = errorStyle.Render(userMessage(s.Err, "Failed to load measurements"))
	default:
		body = s.Render
	}
	return m.renderScrollModal("Measurements · "+s.Item.ProductName, body, s.Scroll,
		m.Keymap.ModalFooterHelp())
}

func (m Model) renderHelp() string {
	return m.renderScrollModal("Help", m.Keymap.GenerateHelp(), m.HelpScroll,
		m.Keymap.ModalFooterHelp())
}

// renderScrollModal renders body in a bordered box showing the window that
// starts at scroll
func (m Model) renderScrollModal(title, body string, scroll int, hints string) string {
	width := m.modalWidth() - 4
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	height := m.modalBodyHeight()
	scroll = clampScroll(scroll, len(lines), height)
	end := min(scroll+height, len(lines))

	visible := make([]string, 0, height)
	for _, l := range lines[scroll:end] {
		visible = append(visible, ansi.Truncate(l, width-2, "…"))
	}

	indicator := ""
	if len(lines) > height {
		indicator = subtleStyle.Render(fmt.Sprintf("  %d-%d of %d", scroll+1, end, len(lines)))
	}

	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(title) + indicator + "\n\n")
	sb.WriteString(strings.Join(visible, "\n"))
	sb.WriteString("\n\n" + helpStyle.Render(hints))
	return modalStyle.Width(width).Render(sb.String())
}

// clampScroll bounds scroll for n lines shown height at a time
func clampScroll(scroll, n, height int) int {
	maxScroll := max(n-height, 0)
	return max(min(scroll, maxScroll), 0)
}
