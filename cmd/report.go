package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/pkg/report"
	"github.com/marcus/tailor/pkg/report/keymap"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"dash"},
	Short:   "Interactive pending sales dashboard",
	Long: `Launch the pending sales dashboard.

Cards load a page at a time; scrolling to the end of the list fetches the
next page. Typing after / filters by customer, product or order (the request
is sent once typing pauses). Click a card to open its sales order; hold the
button on a card to open its menu.

Key bindings:
  j/k, ↑/↓       Move between cards
  enter          Open sales order details
  m, space       Item menu
  s              Change status
  x              Delete item
  M              Measurement sheet
  /              Search
  r              Refresh from page 1
  ?              Toggle help
  q              Quit`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		store, err := openHistory()
		if err != nil {
			// History is a convenience; the dashboard works without it.
			slog.Warn("report: history unavailable", "err", err)
		} else {
			defer store.Close()
		}

		km, err := keymap.Load(getHomeDir())
		if err != nil {
			slog.Warn("report: keymap overrides ignored", "err", err)
		}

		dispatcher := report.NewDispatcher()
		opts := report.Options{
			API:        newClient(settings),
			Settings:   settings,
			Home:       getHomeDir(),
			Dispatcher: dispatcher,
			Keymap:     km,
			Version:    versionStr,
		}
		if store != nil {
			opts.History = store
		}
		model := report.NewModel(opts)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		dispatcher.Attach(p.Send)

		final, err := p.Run()
		// Quit already closed it; this covers a program error or signal.
		if m, ok := final.(report.Model); ok {
			m.Close()
		} else {
			model.Close()
		}
		if err != nil {
			return fmt.Errorf("error running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
