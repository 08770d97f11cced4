package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pathakanu/myLists/internal/app"
	"github.com/pathakanu/myLists/internal/config"
	"github.com/pathakanu/myLists/internal/database"
	"github.com/pathakanu/myLists/internal/logging"
	"github.com/pathakanu/myLists/internal/notify"
	myopenai "github.com/pathakanu/myLists/internal/openai"
	"github.com/pathakanu/myLists/internal/reminder"
	"github.com/pathakanu/myLists/internal/store"
	"github.com/pathakanu/myLists/internal/twilio"
	"github.com/pathakanu/myLists/internal/ui"
)

const appName = "myLists"

var (
	loadConfigFn  = config.Load
	newDesktopFn  = func() (desktopNotifier, error) { return notify.NewDesktop(appName) }
	newNotifierFn = buildNotifier
)

type desktopNotifier interface {
	notify.Notifier
	io.Closer
}

// runtime is everything a command needs, built from one config load and one
// database handle.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	store    *store.Store
	notifier notify.Notifier
	gate     *reminder.Gate
	svc      *app.Service
	closers  []io.Closer
}

func withRuntime(ctx context.Context, deps commandDeps, fn func(*runtime) error) error {
	rt, err := openRuntime(ctx, deps.globals)
	if err != nil {
		return mapCommandError(err)
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			rt.logger.Warn("shutdown", "error", cerr)
		}
	}()
	return mapCommandError(fn(rt))
}

func openRuntime(ctx context.Context, globals *globalOptions) (*runtime, error) {
	cfg := loadConfigFn()
	if globals != nil {
		if globals.DBPath != "" {
			cfg.DatabasePath = globals.DBPath
			cfg.DatabaseURL = ""
		}
		if globals.Notifier != "" {
			cfg.Notifier = globals.Notifier
		}
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	ui.SetTheme(cfg.Theme)

	db, err := database.New(cfg.DatabaseURL, cfg.DatabasePath, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  store.New(db),
	}
	rt.closers = append(rt.closers, logCloser)

	notifier, closer := newNotifierFn(ctx, cfg, logger)
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}
	rt.notifier = notifier

	rt.gate = reminder.NewGate(rt.store, notifier, newComposer(cfg.OpenAIAPIKey), cfg.NotificationsEnabled, logger)
	rt.svc = app.NewService(rt.store, rt.gate, cfg.LocalTimezone, logger)
	return rt, nil
}

// Close releases the database handle and then the other resources in
// reverse order of acquisition.
func (rt *runtime) Close() error {
	errs := []error{database.Close(rt.db)}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	return errors.Join(errs...)
}

func (rt *runtime) watcher() *reminder.Watcher {
	return reminder.NewWatcher(rt.gate, rt.cfg.LocalTimezone, rt.cfg.NotifySchedule, rt.cfg.DayPollInterval, rt.logger)
}

// newComposer returns nil without an API key so the gate sends the fixed
// body without loading items.
func newComposer(apiKey string) reminder.Composer {
	if apiKey == "" {
		return nil
	}
	return myopenai.New(apiKey)
}

// buildNotifier picks the configured channel and falls back to the log when
// the channel is unreachable or permission is denied.
func buildNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (notify.Notifier, io.Closer) {
	fallback := notify.NewLogNotifier(logger)

	switch cfg.Notifier {
	case config.NotifierLog:
		return fallback, nil
	case config.NotifierWhatsApp:
		client := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, logger)
		wa := notify.NewWhatsApp(client, cfg.WhatsAppRecipient)
		if !granted(ctx, wa, logger) {
			return fallback, nil
		}
		return wa, nil
	case config.NotifierDesktop:
		desktop, err := newDesktopFn()
		if err != nil {
			logger.Warn("desktop notifications unavailable, using log", "error", err)
			return fallback, nil
		}
		if !granted(ctx, desktop, logger) {
			_ = desktop.Close()
			return fallback, nil
		}
		return desktop, desktop
	default:
		logger.Warn("unknown notifier, using log", "notifier", cfg.Notifier)
		return fallback, nil
	}
}

func granted(ctx context.Context, n notify.Notifier, logger *slog.Logger) bool {
	perm, err := n.RequestPermission(ctx)
	if err != nil || perm != notify.PermissionGranted {
		logger.Warn("notification permission denied, using log", "error", err)
		return false
	}
	return true
}
