package cmd

import (
	"fmt"

	"github.com/marcus/tailor/internal/output"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Print(versionStr)
			return
		}
		fmt.Printf("tailor version %s\n", versionStr)
	},
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Aliases: []string{"ping"},
	Short:   "Check that the report API is reachable",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		resp, err := newClient(settings).HealthCheck(ctx)
		if err != nil {
			output.Error("%s unreachable: %v", settings.APIURL, err)
			return err
		}
		output.Success("%s: %s", settings.APIURL, resp.Status)
		if settings.APIToken == "" {
			output.Warning("no api_token set; run: tailor config set api_token <token>")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)

	versionCmd.Flags().Bool("short", false, "Print only the version")
}
