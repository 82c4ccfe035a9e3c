package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/grocery"
	"github.com/ithinkitschris/expense-assistant/internal/recipes"
)

var (
	pantryQuantity     float64
	pantryUnit         string
	pantryType         string
	pantryShowConsumed bool
	pantryRestock      bool

	recipeCuisine    string
	recipeDifficulty string
	recipeMaxMinutes int
	recipeServings   int
	recipeDietary    string
)

var pantryCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Manage pantry items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var pantryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an item to the pantry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		groceryType := pantryType
		if groceryType == "" {
			groceryType = string(services.grocer.Categorize(cmd.Context(), name))
		} else if !constants.IsGroceryType(groceryType) {
			return fmt.Errorf("unknown grocery type %q", groceryType)
		}
		item, err := services.pantry.Add(cmd.Context(), name, pantryQuantity, pantryUnit, groceryType)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s: %.0f %s (%s)\n",
			item.Name, item.Quantity, item.Unit, constants.GroceryTypeDisplayName(item.GroceryType))
		return nil
	},
}

var pantryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pantry items grouped by shelf",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := services.pantry.List(cmd.Context(), pantryShowConsumed, func(name string) string {
			return string(grocery.RuleBased(name))
		})
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Pantry is empty.")
			return nil
		}
		currentType := ""
		for _, item := range items {
			if item.GroceryType != currentType {
				currentType = item.GroceryType
				fmt.Printf("\n%s\n", constants.GroceryTypeDisplayName(currentType))
			}
			status := ""
			if item.IsConsumed {
				status = "  (consumed)"
			}
			fmt.Printf("  #%-4d %s: %.0f %s%s\n", item.ID, item.Name, item.Quantity, item.Unit, status)
		}
		return nil
	},
}

var pantryConsumeCmd = &cobra.Command{
	Use:   "consume <id>",
	Short: "Mark a pantry item as used up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		if err := services.pantry.SetConsumed(cmd.Context(), id, !pantryRestock); err != nil {
			return err
		}
		if pantryRestock {
			fmt.Printf("Restocked #%d\n", id)
		} else {
			fmt.Printf("Consumed #%d\n", id)
		}
		return nil
	},
}

var pantryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a pantry item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		if err := services.pantry.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted #%d\n", id)
		return nil
	},
}

var pantryRecategorizeCmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Re-run categorization over every pantry item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		updated, err := services.pantry.RecategorizeAll(cmd.Context(), func(name string) string {
			return string(services.grocer.Categorize(cmd.Context(), name))
		})
		if err != nil {
			return err
		}
		fmt.Printf("Recategorized %d items\n", updated)
		return nil
	},
}

var recipeCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Suggest a recipe from the current pantry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rec, err := services.recipes.Recommend(cmd.Context(), recipes.Options{
			Cuisine:    recipeCuisine,
			Difficulty: recipeDifficulty,
			MaxMinutes: recipeMaxMinutes,
			Servings:   recipeServings,
			Dietary:    recipeDietary,
		})
		if err != nil {
			return err
		}
		fmt.Println(rec.Text)
		return nil
	},
}

func init() {
	pantryAddCmd.Flags().Float64Var(&pantryQuantity, "quantity", 1, "Quantity to add")
	pantryAddCmd.Flags().StringVar(&pantryUnit, "unit", "pieces", "Unit of measure")
	pantryAddCmd.Flags().StringVar(&pantryType, "type", "", "Grocery type (default: auto-categorize)")
	pantryListCmd.Flags().BoolVar(&pantryShowConsumed, "all", false, "Include consumed items")
	pantryConsumeCmd.Flags().BoolVar(&pantryRestock, "undo", false, "Mark the item as back in stock")

	recipeCmd.Flags().StringVar(&recipeCuisine, "cuisine", "", "Preferred cuisine")
	recipeCmd.Flags().StringVar(&recipeDifficulty, "difficulty", "", "Preferred difficulty")
	recipeCmd.Flags().IntVar(&recipeMaxMinutes, "max-minutes", 0, "Maximum cooking time")
	recipeCmd.Flags().IntVar(&recipeServings, "servings", 0, "Number of servings")
	recipeCmd.Flags().StringVar(&recipeDietary, "dietary", "", "Dietary requirement")

	pantryCmd.AddCommand(pantryAddCmd, pantryListCmd, pantryConsumeCmd, pantryDeleteCmd, pantryRecategorizeCmd)
}
