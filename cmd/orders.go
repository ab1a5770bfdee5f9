package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/tailor/internal/input"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// statusValue is a --status flag accepting ids or names
type statusValue struct {
	status models.Status
}

var _ pflag.Value = (*statusValue)(nil)

func (v *statusValue) String() string {
	if v.status == 0 {
		return ""
	}
	return v.status.String()
}

func (v *statusValue) Set(s string) error {
	st, ok := models.ParseStatus(s)
	if !ok {
		return fmt.Errorf("unknown status %q (pending, in-progress, completed, cancelled)", s)
	}
	v.status = st
	return nil
}

func (v *statusValue) Type() string { return "status" }

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"items"},
	Short:   "List and change pending sales items",
	GroupID: "orders",
}

var listStatus statusValue

var ordersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List pending sales items",
	Example: `  tailor orders list
  tailor orders list --search kurta --all
  tailor orders list --status pending --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		all, _ := cmd.Flags().GetBool("all")
		perPage, _ := cmd.Flags().GetInt("per-page")
		if perPage <= 0 {
			perPage = settings.PerPage
		}

		ctx, cancel := commandContext()
		defer cancel()

		loader := pager.New(newClient(settings), perPage)
		loader.SetSearch(strings.TrimSpace(search))
		if page < 1 {
			page = 1
		}
		if err := loader.Load(ctx, page, false); err != nil {
			return reportError(err, "Failed to load pending sales")
		}
		for all {
			err := loader.LoadMore(ctx)
			if errors.Is(err, pager.ErrNoMorePages) {
				break
			}
			if err != nil {
				return reportError(err, "Failed to load pending sales")
			}
		}

		rows := loader.Rows()
		if listStatus.status != 0 {
			var filtered []models.PendingItem
			for _, r := range rows {
				if r.StatusID == listStatus.status {
					filtered = append(filtered, r)
				}
			}
			rows = filtered
		}

		state := loader.State()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(models.PendingPage{
				Data: rows,
				PaginatorInfo: models.PaginatorInfo{
					Total:        state.Total,
					PerPage:      state.PerPage,
					CurrentPage:  state.CurrentPage,
					LastPage:     state.LastPage,
					HasMorePages: state.HasMorePages,
				},
			})
		}

		if len(rows) == 0 {
			fmt.Println("No pending items")
			return nil
		}
		for i := range rows {
			fmt.Println(output.FormatItemShort(&rows[i]))
		}
		fmt.Printf("\n%d of %d items (page %d of %d)\n", len(loader.Rows()), state.Total, state.CurrentPage, state.LastPage)
		if state.HasMorePages && !all {
			fmt.Println("More available: --page", state.CurrentPage+1, "or --all")
		}
		return nil
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <item> <status>",
	Short: "Change the status of a pending item",
	Long: `Change the status of a pending item. <item> is the item id or its
order-item key as shown by "orders list". <status> is a name or id:
pending (1), in-progress (2), completed (3), cancelled (4).

Completing an item requires its job order to be completed first.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := models.ParseStatus(args[1])
		if !ok {
			err := fmt.Errorf("unknown status %q", args[1])
			output.Error("%v", err)
			return err
		}

		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		search, _ := cmd.Flags().GetString("search")

		ctx, cancel := commandContext()
		defer cancel()

		api := newClient(settings)
		loader := pager.New(api, settings.PerPage)
		loader.SetSearch(search)
		item, err := findItem(ctx, loader, args[0])
		if err != nil {
			return reportError(err, "Failed to find item")
		}

		flow, closeFlow := newFlow(api)
		defer closeFlow()

		if err := flow.ChangeStatusAndReload(ctx, loader, item, target); err != nil {
			return reportError(err, "Failed to update status")
		}
		output.Success("%s: %s -> %s", item.Key(), item.StatusID, target)
		return nil
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:     "delete <item>...",
	Aliases: []string{"rm"},
	Short:   "Delete pending items",
	Long: `Delete pending items by id or order-item key. "-" reads item references
from stdin and "@file" from a file, one per line. Use --yes when reading
from stdin, since confirmation needs the terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := input.ExpandArgs(args, cmd.InOrStdin())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		yes, _ := cmd.Flags().GetBool("yes")

		api := newClient(settings)
		flow, closeFlow := newFlow(api)
		defer closeFlow()

		var failed int
		for _, ref := range refs {
			deleted, err := deleteOne(api, flow, settings.PerPage, search, ref, yes)
			if err != nil {
				failed++
				continue
			}
			if deleted != nil {
				output.Success("deleted %s (%s)", deleted.Key(), deleted.ProductName)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d deletions failed", failed, len(refs))
		}
		return nil
	},
}

// deleteOne looks up ref, confirms unless yes, and deletes it. It returns
// nil, nil when the user declines.
func deleteOne(api pager.Fetcher, flow *statusflow.Flow, perPage int, search, ref string, yes bool) (*models.PendingItem, error) {
	ctx, cancel := commandContext()
	defer cancel()

	loader := pager.New(api, perPage)
	loader.SetSearch(search)
	item, err := findItem(ctx, loader, ref)
	if err != nil {
		return nil, reportError(err, "Failed to find item")
	}
	if err := statusflow.CheckDelete(item); err != nil {
		return nil, reportError(fmt.Errorf("%s: %w", item.Key(), err), "Failed to delete item")
	}

	if !yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(deletePrompt(loader.Rows(), item)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		if !confirmed {
			fmt.Println("Skipped", item.Key())
			return nil, nil
		}
	}

	if err := flow.DeleteAndReload(ctx, loader, item); err != nil {
		return nil, reportError(err, "Failed to delete item")
	}
	return &item, nil
}

// deletePrompt warns when item is the only loaded line of its order, since
// the backend then removes the whole order.
func deletePrompt(rows []models.PendingItem, item models.PendingItem) string {
	for _, r := range rows {
		if r.OrderID == item.OrderID && r.ID != item.ID {
			return fmt.Sprintf("Delete %s for %s?", item.ProductName, item.CustomerName)
		}
	}
	return fmt.Sprintf("Delete %s for %s? This is the only item, so the whole order will be deleted.", item.ProductName, item.CustomerName)
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)

	ordersCmd.PersistentFlags().String("search", "", "Narrow the report by customer, product or order")

	ordersListCmd.Flags().Int("page", 1, "Page to fetch")
	ordersListCmd.Flags().Int("per-page", 0, "Rows per page (default from config)")
	ordersListCmd.Flags().Bool("all", false, "Fetch every remaining page")
	ordersListCmd.Flags().Var(&listStatus, "status", "Only show items in this status")
	ordersListCmd.Flags().Bool("json", false, "JSON output")

	ordersDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}
