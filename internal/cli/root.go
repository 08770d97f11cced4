// Package cli implements the mylists command tree.
package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pathakanu/myLists/internal/config"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalOptions struct {
	DBPath   string
	Notifier string
}

type commandDeps struct {
	out     io.Writer
	build   BuildInfo
	globals *globalOptions
}

// NewRootCommand builds the command tree. Without a subcommand the root shows
// the view named by DEFAULT_VIEW.
func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	globals := &globalOptions{}
	deps := commandDeps{out: out, build: build, globals: globals}

	cmd := &cobra.Command{
		Use:           "mylists",
		Short:         "Date-scheduled lists with daily reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs("mylists"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				if rt.cfg.DefaultView == config.ViewCalendar {
					return showCalendar(cmd.Context(), deps, rt, "", 0)
				}
				return showHome(cmd.Context(), deps, rt)
			})
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	cmd.PersistentFlags().StringVar(&globals.DBPath, "db", "", "SQLite database path (overrides LISTS_DB_PATH)")
	cmd.PersistentFlags().StringVar(&globals.Notifier, "notifier", "", "Notification channel: desktop, whatsapp or log (overrides NOTIFIER)")

	cmd.AddCommand(newHomeCommand(deps))
	cmd.AddCommand(newCalendarCommand(deps))
	cmd.AddCommand(newListCommand(deps))
	cmd.AddCommand(newItemCommand(deps))
	cmd.AddCommand(newEditCommand(deps))
	cmd.AddCommand(newNotifyCommand(deps))
	cmd.AddCommand(newWatchCommand(deps))
	cmd.AddCommand(newVersionCommand(deps))
	return cmd
}

func noArgs(name string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 0 {
			return usageErrorf("%s does not accept positional arguments", name)
		}
		return nil
	}
}

func exactArgs(name string, n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s expects %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}
}

func minArgs(name string, n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("%s expects at least %d argument(s)", name, n)
		}
		return nil
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, usageErrorf("invalid id %q", raw)
	}
	return uint(id), nil
}
