package cmd

import (
	"github.com/spf13/cobra"
)

// categorizeCmd represents the base command for categorization operations.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Manage product categorization",
	Long: `Provides commands to suggest and apply categories/subcategories to products
using the rule table and the configured AI provider.`,
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
	// Subcommands 'batch' and 'apply' are added in their files' init().
}
