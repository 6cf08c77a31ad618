package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taxo/internal/models"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage taxonomy categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		cat, err := appInstance.TaxonomyService.CreateCategory(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return fmt.Errorf("a category with that slug already exists")
			}
			if errors.Is(err, models.ErrValidation) {
				return fmt.Errorf("invalid category name %q: %w", args[0], err)
			}
			return fmt.Errorf("failed to create category: %w", err)
		}

		color.Green("Created category %q (id=%d, slug=%s)", cat.Name, cat.ID, cat.Slug)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their subcategories",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		categories, err := appInstance.TaxonomyStore.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if len(categories) == 0 {
			fmt.Println("No categories defined.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Slug", "Subcategories"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)

		for _, cat := range categories {
			count, err := appInstance.TaxonomyStore.CountSubcategories(cmd.Context(), cat.ID)
			if err != nil {
				return fmt.Errorf("failed to count subcategories for %q: %w", cat.Name, err)
			}
			table.Append([]string{
				fmt.Sprintf("%d", cat.ID),
				cat.Name,
				cat.Slug,
				fmt.Sprintf("%d", count),
			})
		}
		table.Render()
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an empty category and clear it from products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		id, err := parseInt64Arg(args[0], "category id")
		if err != nil {
			return err
		}

		affected, err := appInstance.TaxonomyService.DeleteCategory(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrHasChildren) {
				return fmt.Errorf("category %d still has subcategories; delete them first", id)
			}
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("category %d not found", id)
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}

		color.Green("Deleted category %d.", id)
		if affected > 0 {
			color.Yellow("Cleared category and subcategory on %d products.", affected)
		}
		return nil
	},
}

func parseInt64Arg(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s '%s'", what, arg)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}
