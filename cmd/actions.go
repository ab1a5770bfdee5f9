package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions [id]",
	Short: "List quick actions and their dashboard links",
	Long: `List the dashboard quick actions. With an id, print that action's link
and copy it to the clipboard.`,
	GroupID: "core",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		actions := models.QuickActions()

		if len(args) == 1 {
			for _, a := range actions {
				if a.ID != args[0] {
					continue
				}
				link := settings.DashboardURL + a.Path
				fmt.Println(link)
				if err := clipboard.WriteAll(link); err != nil {
					output.Warning("clipboard unavailable: %v", err)
				}
				return nil
			}
			err := fmt.Errorf("unknown action %q", args[0])
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(actions)
		}
		for _, a := range actions {
			label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.Color)).Render(fmt.Sprintf("%-10s", a.Label))
			fmt.Printf("%s  %-18s %s\n", label, a.ID, a.Description)
			fmt.Printf("            %s\n", settings.DashboardURL+a.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().Bool("json", false, "JSON output")
}
