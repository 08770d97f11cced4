package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathakanu/myLists/internal/ui"
)

func newListCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage lists",
	}
	cmd.AddCommand(newListAddCommand(deps))
	cmd.AddCommand(newListShowCommand(deps))
	cmd.AddCommand(newListRemoveCommand(deps))
	return cmd
}

func newListAddCommand(deps commandDeps) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a list on a day",
		Example: "  mylists list add Groceries\n" +
			"  mylists list add Weekend trip --date 2024-06-08",
		Args: minArgs("list add", 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				id, err := rt.svc.CreateList(cmd.Context(), strings.Join(args, " "), day)
				if err != nil {
					return err
				}
				ui.OK(deps.out, fmt.Sprintf("created list #%d", id))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "Day as YYYY-MM-DD (default today)")
	return cmd
}

func newListShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a list with all its items",
		Example: "  mylists list show 3",
		Args:    exactArgs("list show", 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				summary, err := rt.svc.List(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(deps.out, ui.RenderList(summary))
				return err
			})
		},
	}
}

func newListRemoveCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a list and its items",
		Example: "  mylists list rm 3",
		Args:    exactArgs("list rm", 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				if err := rt.svc.DeleteList(cmd.Context(), id); err != nil {
					return err
				}
				ui.OK(deps.out, fmt.Sprintf("deleted list #%d", id))
				return nil
			})
		},
	}
}
