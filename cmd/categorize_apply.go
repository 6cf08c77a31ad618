package cmd

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taxo/internal/clix"
)

var (
	applyAsync bool
	applyAll   bool
	applyLimit int
)

// categorizeApplyCmd categorizes products and writes auto-populated fields.
var categorizeApplyCmd = &cobra.Command{
	Use:   "apply [product_id...]",
	Short: "Categorize products and persist auto-populated fields",
	Long: `Categorizes the given stored products (or all uncategorized products with
--all) and writes confident category/subcategory assignments back to the
product records. With --async the batch is enqueued for the background worker
instead of running inline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		var ids []int64
		if applyAll {
			if len(args) > 0 {
				return fmt.Errorf("pass either product IDs or --all, not both")
			}
			ids, err = appInstance.ProductStore.ListUncategorizedIDs(cmd.Context(), applyLimit)
			if err != nil {
				return fmt.Errorf("failed to list uncategorized products: %w", err)
			}
			if len(ids) == 0 {
				fmt.Println("No uncategorized products.")
				return nil
			}
		} else {
			ids, err = clix.ParseIDs(args)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return fmt.Errorf("provide product IDs or --all")
			}
		}

		if applyAsync {
			batchID, err := appInstance.JobClient.EnqueueCategorizeBatch(cmd.Context(), ids)
			if err != nil {
				return fmt.Errorf("failed to enqueue categorize batch: %w", err)
			}
			color.Green("Enqueued categorize batch %s (%d products)", batchID, len(ids))
			return nil
		}

		log.Infof("Categorizing %d products inline...", len(ids))
		results, err := appInstance.CategorizationService.CategorizeByIDs(cmd.Context(), ids)
		if err != nil {
			return fmt.Errorf("categorization failed: %w", err)
		}
		applied, err := appInstance.CategorizationService.Apply(cmd.Context(), results)
		if err != nil {
			return fmt.Errorf("failed to apply categorization results: %w", err)
		}

		color.Green("Auto-populated %d of %d products.", applied, len(results))
		if applied < len(results) {
			color.Yellow("%d products need manual review; run 'taxo categorize batch' to inspect suggestions.", len(results)-applied)
		}
		return nil
	},
}

func init() {
	categorizeCmd.AddCommand(categorizeApplyCmd)
	categorizeApplyCmd.Flags().BoolVar(&applyAsync, "async", false, "Enqueue the batch for the background worker")
	categorizeApplyCmd.Flags().BoolVar(&applyAll, "all", false, "Apply to all uncategorized products")
	categorizeApplyCmd.Flags().IntVar(&applyLimit, "limit", 100, "Max products selected by --all")
}
