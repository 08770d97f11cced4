package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathakanu/myLists/internal/ui"
)

func newHomeCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "home",
		Short:   "Show today's lists and the ongoing ones",
		Example: "  mylists home",
		Args:    noArgs("home"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				return showHome(cmd.Context(), deps, rt)
			})
		},
	}
}

func newCalendarCommand(deps commandDeps) *cobra.Command {
	var (
		day    string
		radius int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the lists scheduled on a day",
		Example: "  mylists calendar\n" +
			"  mylists calendar --date 2024-06-01 --range 7",
		Args: noArgs("calendar"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if radius < 0 {
				return usageErrorf("--range must not be negative")
			}
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				return showCalendar(cmd.Context(), deps, rt, day, radius)
			})
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "Day to show as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&radius, "range", 0, "Days either side of the selected day (default CALENDAR_RANGE)")
	return cmd
}

func showHome(ctx context.Context, deps commandDeps, rt *runtime) error {
	view, err := rt.svc.Home(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.out, ui.RenderHome(view))
	return err
}

func showCalendar(ctx context.Context, deps commandDeps, rt *runtime, day string, radius int) error {
	if radius == 0 {
		radius = rt.cfg.CalendarRange
	}
	view, err := rt.svc.Calendar(ctx, day, radius)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.out, ui.RenderCalendar(view))
	return err
}
