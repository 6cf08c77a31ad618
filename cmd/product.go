package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taxo/internal/clix"
	"taxo/internal/models"
)

var (
	productAddBrand          string
	productListUncategorized bool
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage stored products",
}

var productAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Store a product for later categorization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		product := &models.Product{Name: args[0]}
		if productAddBrand != "" {
			product.Brand = &productAddBrand
		}
		if err := appInstance.ProductStore.CreateProduct(cmd.Context(), product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		color.Green("Created product %q (id=%d)", product.Name, product.ID)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored products",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		page, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}
		products, err := appInstance.ProductStore.ListProducts(cmd.Context(), page.Limit, page.Offset, productListUncategorized)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		if len(products) == 0 {
			fmt.Println("No products found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Brand", "Category", "Subcategory"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)

		for _, p := range products {
			table.Append([]string{
				fmt.Sprintf("%d", p.ID),
				p.Name,
				strOrDash(p.Brand),
				strOrDash(p.Category),
				strOrDash(p.Subcategory),
			})
		}
		table.Render()
		return nil
	},
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)

	productAddCmd.Flags().StringVar(&productAddBrand, "brand", "", "Product brand")
	productListCmd.Flags().Int("limit", 20, "Max products to show")
	productListCmd.Flags().Int("offset", 0, "Pagination offset")
	productListCmd.Flags().BoolVar(&productListUncategorized, "uncategorized", false, "Only show uncategorized products")
}
