package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pathakanu/myLists/internal/calendar"
	"github.com/pathakanu/myLists/internal/config"
	"github.com/pathakanu/myLists/internal/database"
	"github.com/pathakanu/myLists/internal/notify"
	"github.com/pathakanu/myLists/internal/store"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	perm notify.Permission
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) RequestPermission(context.Context) (notify.Permission, error) {
	return r.perm, nil
}

func (r *recordingNotifier) Close() error { return nil }

type testEnv struct {
	dbPath   string
	notifier *recordingNotifier
	cfg      *config.Config
}

func setupCLI(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		dbPath:   filepath.Join(t.TempDir(), "lists.db"),
		notifier: &recordingNotifier{perm: notify.PermissionGranted},
	}
	env.cfg = &config.Config{
		DatabasePath:         env.dbPath,
		LocalTimezone:        time.UTC,
		Notifier:             config.NotifierLog,
		NotificationsEnabled: true,
		NotifySchedule:       "0 8 * * *",
		DayPollInterval:      time.Hour,
		Theme:                "light",
		DefaultView:          config.ViewHome,
		CalendarRange:        3,
		LogLevel:             "error",
	}

	prevLoad, prevNotifier := loadConfigFn, newNotifierFn
	t.Cleanup(func() {
		loadConfigFn, newNotifierFn = prevLoad, prevNotifier
	})
	loadConfigFn = func() *config.Config {
		cfg := *env.cfg
		return &cfg
	}
	newNotifierFn = func(context.Context, *config.Config, *slog.Logger) (notify.Notifier, io.Closer) {
		return env.notifier, env.notifier
	}
	return env
}

func (env *testEnv) store(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.New("", env.dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return store.New(db)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args...)
}

func runCLIContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(&out, testBuildInfo())
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func testBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   "1.2.3",
		Commit:    "abc123",
		BuildTime: "2026-02-19T00:00:00Z",
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return withExit.ExitCode()
	}
	return -1
}

func today() string {
	return calendar.Today(time.UTC)
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version=1.2.3")
	require.Contains(t, out, "commit=abc123")

	out, err = runCLI(t, "version", "--json")
	require.NoError(t, err)
	var payload BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "1.2.3", payload.Version)
}

func TestRootHasCommands(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(&out, testBuildInfo())

	for _, path := range [][]string{
		{"home"}, {"calendar"}, {"list", "add"}, {"list", "rm"}, {"list", "show"},
		{"item", "add"}, {"item", "done"}, {"item", "undo"}, {"item", "rm"},
		{"edit"}, {"notify"}, {"watch"}, {"version"},
	} {
		found, _, err := cmd.Find(path)
		require.NoErrorf(t, err, "expected command %v", path)
		require.Equal(t, path[len(path)-1], found.Name())
	}
	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("notifier"))
}

func TestListAndItemLifecycle(t *testing.T) {
	env := setupCLI(t)

	out, err := runCLI(t, "list", "add", "Groceries")
	require.NoError(t, err)
	require.Contains(t, out, "created list #1")

	out, err = runCLI(t, "item", "add", "1", "Whole", "milk")
	require.NoError(t, err)
	require.Contains(t, out, "added item #1 to list #1")

	_, err = runCLI(t, "item", "add", "1", "Eggs")
	require.NoError(t, err)

	_, err = runCLI(t, "item", "done", "1")
	require.NoError(t, err)

	s := env.store(t)
	items, err := s.GetItemsForList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Whole milk", items[0].Text)
	require.True(t, items[0].Done)
	require.False(t, items[1].Done)

	out, err = runCLI(t, "list", "show", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Groceries")
	require.Contains(t, out, "Whole milk")
	require.Contains(t, out, "1/2")

	_, err = runCLI(t, "item", "undo", "1")
	require.NoError(t, err)
	_, err = runCLI(t, "item", "rm", "2")
	require.NoError(t, err)

	items, err = s.GetItemsForList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].Done)

	out, err = runCLI(t, "list", "rm", "1")
	require.NoError(t, err)
	require.Contains(t, out, "deleted list #1")

	_, err = runCLI(t, "list", "show", "1")
	require.Equal(t, ExitCodeNotFound, exitCode(err))
}

func TestCommandsMapErrorsToExitCodes(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "list", "add", "Trip", "--date", "tomorrow")
	require.Equal(t, ExitCodeUsage, exitCode(err))

	_, err = runCLI(t, "item", "done", "abc")
	require.Equal(t, ExitCodeUsage, exitCode(err))

	_, err = runCLI(t, "item", "add", "1")
	require.Equal(t, ExitCodeUsage, exitCode(err))

	_, err = runCLI(t, "item", "add", "42", "Milk")
	require.Equal(t, ExitCodeNotFound, exitCode(err))

	_, err = runCLI(t, "item", "rm", "42")
	require.Equal(t, ExitCodeNotFound, exitCode(err))

	_, err = runCLI(t, "home", "--bogus")
	require.Equal(t, ExitCodeUsage, exitCode(err))
}

func TestStorageUnavailableExitCode(t *testing.T) {
	setupCLI(t)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	_, err := runCLI(t, "--db", filepath.Join(blocker, "lists.db"), "home")
	require.Equal(t, ExitCodeStorageUnavailable, exitCode(err))
	require.ErrorIs(t, err, database.ErrStorageUnavailable)
}

func TestHomeFiresTodaysReminderOnce(t *testing.T) {
	env := setupCLI(t)

	_, err := runCLI(t, "list", "add", "Groceries")
	require.NoError(t, err)
	_, err = runCLI(t, "list", "add", "Later", "--date", "2999-01-01")
	require.NoError(t, err)

	out, err := runCLI(t, "home")
	require.NoError(t, err)
	require.Contains(t, out, "You have 1 list today")
	require.Contains(t, out, "Later")
	require.Len(t, env.notifier.sent, 1)
	require.Equal(t, "Don't forget your tasks for today: Groceries", env.notifier.sent[0].Body)

	out, err = runCLI(t)
	require.NoError(t, err)
	require.Contains(t, out, "Ongoing List")
	require.Len(t, env.notifier.sent, 1)
}

func TestNotifyCommandRespectsSettings(t *testing.T) {
	env := setupCLI(t)
	env.cfg.NotificationsEnabled = false

	_, err := runCLI(t, "list", "add", "Groceries")
	require.NoError(t, err)

	out, err := runCLI(t, "notify")
	require.NoError(t, err)
	require.Contains(t, out, "sent 0 reminder(s)")
	require.Empty(t, env.notifier.sent)

	env.cfg.NotificationsEnabled = true
	out, err = runCLI(t, "notify")
	require.NoError(t, err)
	require.Contains(t, out, "sent 1 reminder(s)")

	out, err = runCLI(t, "notify")
	require.NoError(t, err)
	require.Contains(t, out, "sent 0 reminder(s)")
}

func TestCalendarCommand(t *testing.T) {
	env := setupCLI(t)
	env.cfg.DefaultView = config.ViewCalendar

	_, err := runCLI(t, "list", "add", "Dentist", "--date", "2024-06-03")
	require.NoError(t, err)

	out, err := runCLI(t, "calendar", "--date", "2024-06-03", "--range", "2")
	require.NoError(t, err)
	require.Contains(t, out, "03 June 2024")
	require.Contains(t, out, "Dentist")

	_, err = runCLI(t, "calendar", "--date", "3 June")
	require.Equal(t, ExitCodeUsage, exitCode(err))

	_, err = runCLI(t, "calendar", "--range", "-1")
	require.Equal(t, ExitCodeUsage, exitCode(err))

	out, err = runCLI(t)
	require.NoError(t, err)
	require.Contains(t, out, "My Schedule")
}

func TestWatchRunsGateUntilCancelled(t *testing.T) {
	env := setupCLI(t)

	_, err := runCLI(t, "list", "add", "Groceries")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = runCLIContext(t, ctx, "watch")
	require.NoError(t, err)
	require.Len(t, env.notifier.sent, 1)

	lists, err := env.store(t).GetListsByDate(context.Background(), today())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.True(t, lists[0].Notified)
}

func TestBuildNotifierFallsBackToLog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	prev := newDesktopFn
	t.Cleanup(func() { newDesktopFn = prev })

	newDesktopFn = func() (desktopNotifier, error) { return nil, errors.New("no session bus") }
	n, closer := buildNotifier(ctx, &config.Config{Notifier: config.NotifierDesktop}, logger)
	require.IsType(t, &notify.LogNotifier{}, n)
	require.Nil(t, closer)

	denied := &recordingNotifier{perm: notify.PermissionDenied}
	newDesktopFn = func() (desktopNotifier, error) { return denied, nil }
	n, _ = buildNotifier(ctx, &config.Config{Notifier: config.NotifierDesktop}, logger)
	require.IsType(t, &notify.LogNotifier{}, n)

	granted := &recordingNotifier{perm: notify.PermissionGranted}
	newDesktopFn = func() (desktopNotifier, error) { return granted, nil }
	n, closer = buildNotifier(ctx, &config.Config{Notifier: config.NotifierDesktop}, logger)
	require.Same(t, granted, n)
	require.NotNil(t, closer)

	n, _ = buildNotifier(ctx, &config.Config{Notifier: config.NotifierWhatsApp}, logger)
	require.IsType(t, &notify.LogNotifier{}, n)

	n, _ = buildNotifier(ctx, &config.Config{Notifier: "pigeon"}, logger)
	require.IsType(t, &notify.LogNotifier{}, n)
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	require.Equal(t, uint(12), id)

	for _, raw := range []string{"0", "-1", "x", strings.Repeat("9", 30)} {
		_, err := parseID(raw)
		require.Equalf(t, ExitCodeUsage, exitCode(err), "raw %q", raw)
	}
}

func TestComposerRequiresAPIKey(t *testing.T) {
	require.Nil(t, newComposer(""))
	require.NotNil(t, newComposer("sk-test"))
}
