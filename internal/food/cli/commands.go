package cli

import (
	"fmt"
	"strconv"

	"github.com/abgdnv/foodstock/internal/food/app"
	"github.com/spf13/cobra"
)

// depsFunc returns the dependencies built by the root command's pre-run hook.
type depsFunc func() *app.Dependencies

func newAddCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <stock> <price>",
		Short: "Add a food item under the next free id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := parseInt32(args[1], "stock")
			if err != nil {
				return err
			}
			price, err := parseInt32(args[2], "price")
			if err != nil {
				return err
			}
			added, err := deps().FoodService.Add(cmd.Context(), args[0], stock, price)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added", added)
			return nil
		},
	}
}

func newEditCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <name> <stock> <price>",
		Short: "Overwrite the food item with the given id",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			stock, err := parseInt32(args[2], "stock")
			if err != nil {
				return err
			}
			price, err := parseInt32(args[3], "price")
			if err != nil {
				return err
			}
			edited, err := deps().FoodService.Edit(cmd.Context(), id, args[1], stock, price)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Edited", edited)
			return nil
		},
	}
}

func newListCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all food items ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			foods, err := deps().FoodService.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range foods {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newRemoveCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove the food item with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, ok, err := deps().FoodService.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No record with id %d\n", id)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", removed)
			return nil
		},
	}
}

func newSearchCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find food items whose name contains query, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := deps().FoodService.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records found")
				return nil
			}
			for _, f := range found {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
	}
	return id, nil
}

func parseInt32(arg, name string) (int32, error) {
	v, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, arg)
	}
	return int32(v), nil
}
