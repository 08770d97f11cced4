package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathakanu/myLists/internal/ui"
)

func newItemCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a list",
	}
	cmd.AddCommand(newItemAddCommand(deps))
	cmd.AddCommand(newItemDoneCommand(deps, "done", true))
	cmd.AddCommand(newItemDoneCommand(deps, "undo", false))
	cmd.AddCommand(newItemRemoveCommand(deps))
	return cmd
}

func newItemAddCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "add <listID> <text...>",
		Short:   "Add an item to a list",
		Example: "  mylists item add 3 Milk",
		Args:    minArgs("item add", 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				id, err := rt.svc.AddItem(cmd.Context(), listID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				ui.OK(deps.out, fmt.Sprintf("added item #%d to list #%d", id, listID))
				return nil
			})
		},
	}
}

func newItemDoneCommand(deps commandDeps, name string, done bool) *cobra.Command {
	short := "Check an item off"
	if !done {
		short = "Uncheck an item"
	}
	return &cobra.Command{
		Use:     name + " <id>",
		Short:   short,
		Example: "  mylists item " + name + " 12",
		Args:    exactArgs("item "+name, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				if err := rt.svc.SetItemDone(cmd.Context(), id, done); err != nil {
					return err
				}
				state := "done"
				if !done {
					state = "open"
				}
				ui.OK(deps.out, fmt.Sprintf("item #%d is %s", id, state))
				return nil
			})
		},
	}
}

func newItemRemoveCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an item",
		Example: "  mylists item rm 12",
		Args:    exactArgs("item rm", 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				if err := rt.svc.DeleteItem(cmd.Context(), id); err != nil {
					return err
				}
				ui.OK(deps.out, fmt.Sprintf("deleted item #%d", id))
				return nil
			})
		},
	}
}

func newEditCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "edit <listID>",
		Short:   "Edit a list's items interactively",
		Long:    "Opens a full screen editor: space toggles, a adds, d deletes, / filters, q quits.",
		Example: "  mylists edit 3",
		Args:    exactArgs("edit", 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				return ui.RunEditor(cmd.Context(), rt.svc, id)
			})
		},
	}
}
