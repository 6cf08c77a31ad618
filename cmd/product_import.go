package cmd

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taxo/internal/ingest"
)

var importCategorize bool

var productImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk-import products from a CSV export",
	Long: `Reads a CSV product export (header row with a 'name' column; optional
'brand', 'category' and 'subcategory' columns) and stores each row as a
product. With --categorize the imported uncategorized products are enqueued
for the background categorization worker.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		parsed, err := ingest.ReadProductsFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse product file: %w", err)
		}
		if len(parsed.Products) == 0 {
			return fmt.Errorf("no importable products in '%s'", args[0])
		}

		var uncategorized []int64
		for i := range parsed.Products {
			product := &parsed.Products[i]
			if err := appInstance.ProductStore.CreateProduct(cmd.Context(), product); err != nil {
				return fmt.Errorf("failed to store product %q: %w", product.Name, err)
			}
			if product.Category == nil {
				uncategorized = append(uncategorized, product.ID)
			}
		}

		color.Green("Imported %d products from %s.", len(parsed.Products), args[0])
		if parsed.Skipped > 0 {
			color.Yellow("Skipped %d rows with a blank name.", parsed.Skipped)
		}

		if importCategorize && len(uncategorized) > 0 {
			batchSize := appInstance.Config.Worker.BatchSize
			if batchSize <= 0 {
				batchSize = len(uncategorized)
			}
			for start := 0; start < len(uncategorized); start += batchSize {
				end := start + batchSize
				if end > len(uncategorized) {
					end = len(uncategorized)
				}
				batchID, err := appInstance.JobClient.EnqueueCategorizeBatch(cmd.Context(), uncategorized[start:end])
				if err != nil {
					return fmt.Errorf("failed to enqueue categorize batch: %w", err)
				}
				log.Infof("Enqueued categorize batch %s (%d products)", batchID, end-start)
			}
			color.Green("Enqueued %d uncategorized products for categorization.", len(uncategorized))
		}
		return nil
	},
}

func init() {
	productCmd.AddCommand(productImportCmd)
	productImportCmd.Flags().BoolVar(&importCategorize, "categorize", false, "Enqueue imported uncategorized products for the worker")
}
