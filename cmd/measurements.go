package cmd

import (
	"fmt"

	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/internal/pager"
	"github.com/spf13/cobra"
)

var measurementsCmd = &cobra.Command{
	Use:     "measurements <item> | <order-id> <item-id>",
	Aliases: []string{"measure"},
	Short:   "Show the measurement sheet of an order item",
	Long: `Show the measurement sheet of an order item.

With one argument the item is looked up in the pending report by id or
order-item key. With two, the order and item ids are used directly.`,
	GroupID: "orders",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()

		api := newClient(settings)
		orderID, itemID := "", ""
		if len(args) == 2 {
			orderID, itemID = args[0], args[1]
		} else {
			search, _ := cmd.Flags().GetString("search")
			loader := pager.New(api, settings.PerPage)
			loader.SetSearch(search)
			item, err := findItem(ctx, loader, args[0])
			if err != nil {
				return reportError(err, "Failed to find item")
			}
			orderID, itemID = item.OrderID, item.ID
		}

		sheet, err := api.Measurements(ctx, orderID, itemID)
		if err != nil {
			return reportError(err, "Failed to load measurements")
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(sheet)
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Print(output.MeasurementMarkdown(sheet))
			return nil
		}
		rendered, err := output.RenderMeasurements(sheet, output.TerminalWidth(80), "")
		if err != nil {
			fmt.Print(output.MeasurementMarkdown(sheet))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(measurementsCmd)
	measurementsCmd.Flags().String("search", "", "Narrow the item lookup")
	measurementsCmd.Flags().Bool("json", false, "JSON output")
	measurementsCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
