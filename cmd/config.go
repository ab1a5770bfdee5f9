package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/tailor/internal/config"
	"github.com/marcus/tailor/internal/output"
	"github.com/spf13/cobra"
)

func isValidConfigKey(key string) bool {
	for _, k := range config.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// maskToken hides all but the last four characters of a secret
func maskToken(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage tailor configuration",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		if !isValidConfigKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := config.Set(getHomeDir(), key, val); err != nil {
			output.Error("%v", err)
			return err
		}

		if key == "api_token" {
			val = maskToken(val)
		}
		output.Success("set %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		if !isValidConfigKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
			return fmt.Errorf("unknown config key: %s", key)
		}

		cfg, err := config.Load(getHomeDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		val, err := config.Get(cfg, key)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if val == "" {
			val = configDefault(key)
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getHomeDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			masked := *cfg
			masked.APIToken = maskToken(masked.APIToken)
			return output.JSON(masked)
		}

		for _, key := range config.Keys() {
			val, _ := config.Get(cfg, key)
			switch {
			case val == "":
				val = configDefault(key)
			case key == "api_token":
				val = maskToken(val)
			}
			fmt.Printf("%-20s %s\n", key, val)
		}
		return nil
	},
}

// configDefault describes what an unset key resolves to
func configDefault(key string) string {
	switch key {
	case "api_url":
		return config.DefaultAPIURL + " (default)"
	case "dashboard_url":
		return config.DefaultDashboardURL + " (default)"
	case "per_page":
		return fmt.Sprintf("%d (default)", config.DefaultPerPage)
	case "search_debounce_ms":
		return fmt.Sprintf("%d (default)", config.DefaultSearchDebounce.Milliseconds())
	case "long_press_ms":
		return fmt.Sprintf("%d (default)", config.DefaultLongPress.Milliseconds())
	}
	return ""
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)

	configListCmd.Flags().Bool("json", false, "JSON output")
}
