package report

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tailor/internal/client"
	"github.com/marcus/tailor/internal/config"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
)

// mutationTimeout bounds a status change or delete
const mutationTimeout = 30 * time.Second

// fetchPage runs req off the update loop
func fetchPage(req pager.Request) tea.Cmd {
	return func() tea.Msg {
		return PageLoadedMsg{Result: req.Run()}
	}
}

// reload replaces the rows with page 1, cancelling any fetch in flight
func (m Model) reload() tea.Cmd {
	return fetchPage(m.Loader.BeginReload(context.Background()))
}

// loadMore appends the next page, if there is one and nothing is loading
func (m Model) loadMore() tea.Cmd {
	if !m.Loader.CanLoadMore() {
		return nil
	}
	req, err := m.Loader.BeginLoadMore(context.Background())
	if err != nil {
		slog.Debug("report: load more skipped", "err", err)
		return nil
	}
	return fetchPage(req)
}

// applySearch commits term: reset the list position, refetch from page 1,
// and persist the term for the next launch.
func (m *Model) applySearch(term string) tea.Cmd {
	if !m.Loader.SetSearch(term) {
		return nil
	}
	slog.Debug("report: search", "term", term)
	m.Cursor = 0
	m.ScrollOffset = 0
	m.SelectedKey = ""
	return tea.Batch(m.reload(), m.saveSearch(term))
}

func (m Model) saveSearch(term string) tea.Cmd {
	if m.home == "" {
		return nil
	}
	home := m.home
	return func() tea.Msg {
		return SearchSavedMsg{Err: config.SetLastSearch(home, term)}
	}
}

// toast shows a notification that clears itself after toastDuration.
// A newer toast restarts the clock.
func (m Model) toast(text string, isErr bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.StatusMessage = text
	m.StatusIsError = isErr
	seq := m.statusSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// userMessage turns err into toast text
func userMessage(err error, fallback string) string {
	if statusflow.IsLocalRejection(err) {
		return capitalize(err.Error())
	}
	return client.UserMessage(err, fallback)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// changeStatus posts the status change off the update loop
func (m Model) changeStatus(item models.PendingItem, target models.Status) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return StatusResultMsg{Item: item, Target: target, Err: flow.ChangeStatus(ctx, item, target)}
	}
}

// deleteItem deletes the item off the update loop
func (m Model) deleteItem(item models.PendingItem) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return DeleteResultMsg{Item: item, Err: flow.Delete(ctx, item)}
	}
}

// startStatusChange validates locally and, if allowed, issues the change.
// A local rejection is reported without touching the API or the list.
func (m Model) startStatusChange(item models.PendingItem, target models.Status) (Model, tea.Cmd) {
	if err := statusflow.CheckTransition(item, target); err != nil {
		return m.toast(userMessage(err, "Failed to update status"), true)
	}
	if m.Mutating {
		return m.toast("Another change is still saving", true)
	}
	m.Mutating = true
	return m, m.changeStatus(item, target)
}

func (m Model) startDelete(item models.PendingItem) (Model, tea.Cmd) {
	if err := statusflow.CheckDelete(item); err != nil {
		return m.toast(userMessage(err, "Failed to delete item"), true)
	}
	if m.Mutating {
		return m.toast("Another change is still saving", true)
	}
	m.Mutating = true
	return m, m.deleteItem(item)
}

// handleStatusResult reports the outcome and reloads page 1. The list is
// refetched whether or not the API accepted the change.
func (m Model) handleStatusResult(msg StatusResultMsg) (Model, tea.Cmd) {
	m.Mutating = false
	if statusflow.IsLocalRejection(msg.Err) {
		return m.toast(userMessage(msg.Err, "Failed to update status"), true)
	}

	var toastCmd tea.Cmd
	if msg.Err != nil {
		slog.Warn("report: status change failed", "item", msg.Item.ID, "target", msg.Target, "err", msg.Err)
		m, toastCmd = m.toast(userMessage(msg.Err, "Failed to update status"), true)
	} else {
		slog.Info("report: status changed", "item", msg.Item.ID, "from", msg.Item.StatusID, "to", msg.Target)
		m, toastCmd = m.toast("Status updated successfully", false)
	}
	return m, tea.Batch(toastCmd, m.reload())
}

func (m Model) handleDeleteResult(msg DeleteResultMsg) (Model, tea.Cmd) {
	m.Mutating = false
	if statusflow.IsLocalRejection(msg.Err) {
		return m.toast(userMessage(msg.Err, "Failed to delete item"), true)
	}

	var toastCmd tea.Cmd
	if msg.Err != nil {
		slog.Warn("report: delete failed", "item", msg.Item.ID, "err", msg.Err)
		m, toastCmd = m.toast(userMessage(msg.Err, "Failed to delete item"), true)
	} else {
		slog.Info("report: item deleted", "item", msg.Item.ID, "order", msg.Item.OrderID)
		if m.SelectedKey == msg.Item.Key() {
			m.SelectedKey = ""
		}
		m, toastCmd = m.toast("Item deleted successfully", false)
	}
	return m, tea.Batch(toastCmd, m.reload())
}

// fetchMeasurements loads and renders the measurement sheet for item
func (m Model) fetchMeasurements(item models.PendingItem) tea.Cmd {
	api := m.api
	width := max(m.modalWidth()-4, 20)
	key := item.Key()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		sheet, err := api.Measurements(ctx, item.OrderID, item.ID)
		if err != nil {
			return MeasurementsMsg{ItemKey: key, Err: err}
		}
		rendered, err := output.RenderMeasurements(sheet, width, "dark")
		if err != nil {
			slog.Debug("report: render measurements", "err", err)
			rendered = output.MeasurementMarkdown(sheet)
		}
		return MeasurementsMsg{ItemKey: key, Sheet: sheet, Render: rendered}
	}
}

// copyLink puts a dashboard link on the clipboard
func (m Model) copyLink(path, what string) tea.Cmd {
	link := m.settings.DashboardURL + path
	write := m.clipboard
	return func() tea.Msg {
		return ClipboardMsg{What: what, Err: write(link)}
	}
}
