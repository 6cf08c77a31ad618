package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taxo/internal/store"
)

// doctorCmd reports the health of the engine's external dependencies.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		healthy := true

		if err := appInstance.TaxonomyStore.Ping(cmd.Context()); err != nil {
			color.Red("Database: unreachable (%v)", err)
			healthy = false
		} else {
			color.Green("Database: ok")
		}

		if appInstance.CompletionService == nil {
			color.Yellow("AI provider: disabled by configuration (rule-only categorization)")
		} else {
			switch appInstance.CompletionService.Status() {
			case store.ProviderStatusActive:
				color.Green("AI provider: %s (%s)", appInstance.CompletionService.Name(), appInstance.CompletionService.ModelName())
			case store.ProviderStatusDisabled:
				color.Yellow("AI provider: %s configured but missing API key; categorization degrades to rules only", appInstance.CompletionService.Name())
			default:
				color.Yellow("AI provider: %s status unknown", appInstance.CompletionService.Name())
			}
		}

		if !healthy {
			color.Red("Some checks failed.")
		} else {
			color.Green("All checks passed.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
