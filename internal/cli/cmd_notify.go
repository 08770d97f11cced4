package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pathakanu/myLists/internal/reminder"
)

func newNotifyCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "notify",
		Short:   "Send the reminders due today",
		Example: "  mylists notify",
		Args:    noArgs("notify"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				fired, err := rt.gate.Run(cmd.Context(), rt.svc.Today())
				if _, werr := fmt.Fprintf(deps.out, "sent %d reminder(s)\n", fired); werr != nil {
					return werr
				}
				return err
			})
		},
	}
}

func newWatchCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run in the foreground and send reminders as days roll over",
		Long: "Checks for a new calendar day every DAY_POLL_INTERVAL and on NOTIFY_SCHEDULE, " +
			"sending each list's reminder once on its day. Stops on SIGINT or SIGTERM.",
		Example: "  mylists watch",
		Args:    noArgs("watch"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(rt *runtime) error {
				w := rt.watcher()
				if err := w.Start(cmd.Context()); err != nil {
					return fmt.Errorf("watcher start: %w", err)
				}
				rt.logger.Info("watching", "today", w.Today(), "schedule", rt.cfg.NotifySchedule)
				waitForShutdown(cmd.Context(), w, rt.logger)
				return nil
			})
		},
	}
}

func waitForShutdown(ctx context.Context, w *reminder.Watcher, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down...")
	w.Stop()
}
