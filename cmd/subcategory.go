package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taxo/internal/models"
)

var subcategoryListCategoryID int64

var subcategoryCmd = &cobra.Command{
	Use:   "subcategory",
	Short: "Manage taxonomy subcategories",
}

var subcategoryAddCmd = &cobra.Command{
	Use:   "add <category_id> <name>",
	Short: "Create a subcategory under a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		categoryID, err := parseInt64Arg(args[0], "category id")
		if err != nil {
			return err
		}

		sub, err := appInstance.TaxonomyService.CreateSubcategory(cmd.Context(), categoryID, args[1])
		if err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return fmt.Errorf("a subcategory with that slug already exists in this category")
			}
			if errors.Is(err, models.ErrValidation) {
				return fmt.Errorf("invalid subcategory name %q: %w", args[1], err)
			}
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("category %d not found", categoryID)
			}
			return fmt.Errorf("failed to create subcategory: %w", err)
		}

		color.Green("Created subcategory %q (id=%d, slug=%s) under category %d", sub.Name, sub.ID, sub.Slug, categoryID)
		return nil
	},
}

var subcategoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subcategories",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		var subs []models.Subcategory
		if subcategoryListCategoryID > 0 {
			subs, err = appInstance.TaxonomyStore.ListSubcategoriesByCategory(cmd.Context(), subcategoryListCategoryID)
		} else {
			subs, err = appInstance.TaxonomyStore.ListSubcategories(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list subcategories: %w", err)
		}
		if len(subs) == 0 {
			fmt.Println("No subcategories defined.")
			return nil
		}

		categoryNames := make(map[int64]string)
		categories, err := appInstance.TaxonomyStore.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, cat := range categories {
			categoryNames[cat.ID] = cat.Name
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Slug", "Category"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)

		for _, sub := range subs {
			table.Append([]string{
				fmt.Sprintf("%d", sub.ID),
				sub.Name,
				sub.Slug,
				categoryNames[sub.CategoryID],
			})
		}
		table.Render()
		return nil
	},
}

var subcategoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a subcategory and clear it from products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		id, err := parseInt64Arg(args[0], "subcategory id")
		if err != nil {
			return err
		}

		affected, err := appInstance.TaxonomyService.DeleteSubcategory(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("subcategory %d not found", id)
			}
			return fmt.Errorf("failed to delete subcategory: %w", err)
		}

		color.Green("Deleted subcategory %d.", id)
		if affected > 0 {
			color.Yellow("Cleared subcategory on %d products.", affected)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subcategoryCmd)
	subcategoryCmd.AddCommand(subcategoryAddCmd)
	subcategoryCmd.AddCommand(subcategoryListCmd)
	subcategoryCmd.AddCommand(subcategoryDeleteCmd)
	subcategoryListCmd.Flags().Int64Var(&subcategoryListCategoryID, "category", 0, "Only show subcategories of this category ID")
}
