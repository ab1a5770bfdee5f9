package cmd

import (
	"fmt"

	"github.com/marcus/tailor/internal/dateparse"
	"github.com/marcus/tailor/internal/history"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "Show changes made from this machine",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer store.Close()

		opts := history.ListOptions{}
		if action, _ := cmd.Flags().GetString("action"); action != "" {
			switch a := models.HistoryAction(action); a {
			case models.HistoryStatusChange, models.HistoryDelete, models.HistoryProfileUpdate:
				opts.Action = a
			default:
				err := fmt.Errorf("unknown action %q (status, delete, profile)", action)
				output.Error("%v", err)
				return err
			}
		}
		opts.RowID, _ = cmd.Flags().GetString("item")
		if since, _ := cmd.Flags().GetString("since"); since != "" {
			t, err := dateparse.ParseSince(since)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			opts.Since = t
		}
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		ctx, cancel := commandContext()
		defer cancel()

		entries, err := store.List(ctx, opts)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if entries == nil {
				entries = []models.HistoryEntry{}
			}
			return output.JSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No history")
			return nil
		}
		for _, e := range entries {
			fmt.Println(output.FormatHistoryEntry(e))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("action", "", "Only this action: status, delete, profile")
	historyCmd.Flags().String("item", "", "Only entries for this item id")
	historyCmd.Flags().String("since", "", "Only newer entries: 2026-03-01, today, yesterday, 3d, 2w, 24h, monday")
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum entries")
	historyCmd.Flags().Bool("json", false, "JSON output")
}
