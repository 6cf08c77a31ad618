package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taxo/internal/clix"
	"taxo/internal/models"
)

var categorizeBatchNames []string

// categorizeBatchCmd suggests taxonomy assignments without applying them.
var categorizeBatchCmd = &cobra.Command{
	Use:   "batch [product_id...]",
	Short: "Suggest categories/subcategories for products",
	Long: `Fetches categorization suggestions for the given stored product IDs, or for ad
hoc names passed via --name. Does NOT automatically apply them; use
'categorize apply' for that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		var results []models.CategorizedProduct
		switch {
		case len(categorizeBatchNames) > 0:
			if len(args) > 0 {
				return fmt.Errorf("pass either product IDs or --name values, not both")
			}
			results, err = appInstance.CategorizationService.CategorizeNames(cmd.Context(), categorizeBatchNames)
		case len(args) > 0:
			ids, parseErr := clix.ParseIDs(args)
			if parseErr != nil {
				return parseErr
			}
			results, err = appInstance.CategorizationService.CategorizeByIDs(cmd.Context(), ids)
		default:
			return fmt.Errorf("provide product IDs or at least one --name")
		}
		if err != nil {
			return fmt.Errorf("failed to get categorization suggestions: %w", err)
		}

		renderCategorizedProducts(results)
		return nil
	},
}

func renderCategorizedProducts(results []models.CategorizedProduct) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product", "Top Category", "Top Subcategory", "Auto-Populated"})
	table.SetBorder(true)
	table.SetRowLine(true)

	for _, r := range results {
		table.Append([]string{
			r.Product.Name,
			formatCategorySuggestions(r.CategorySuggestions),
			formatSubcategorySuggestions(r.SubcategorySuggestions),
			formatSelection(r),
		})
	}
	table.Render()
}

func formatCategorySuggestions(sugs []models.CategorySuggestion) string {
	if len(sugs) == 0 {
		return "-"
	}
	parts := make([]string, len(sugs))
	for i, s := range sugs {
		parts[i] = fmt.Sprintf("%s (%.2f)", s.Name, s.Confidence)
	}
	return strings.Join(parts, "\n")
}

func formatSubcategorySuggestions(sugs []models.SubcategorySuggestion) string {
	if len(sugs) == 0 {
		return "-"
	}
	parts := make([]string, len(sugs))
	for i, s := range sugs {
		marker := ""
		if s.IsNew {
			marker = " [new]"
		}
		parts[i] = fmt.Sprintf("%s%s (%.2f)", s.Name, marker, s.Confidence)
	}
	return strings.Join(parts, "\n")
}

func formatSelection(r models.CategorizedProduct) string {
	if r.SelectedCategory == nil {
		return "no"
	}
	sel := *r.SelectedCategory
	if r.SelectedSubcategory != nil {
		sel += " / " + *r.SelectedSubcategory
	}
	return sel
}

func init() {
	categorizeCmd.AddCommand(categorizeBatchCmd)
	categorizeBatchCmd.Flags().StringArrayVarP(&categorizeBatchNames, "name", "n", nil, "Ad hoc product name to categorize (repeatable)")
}
