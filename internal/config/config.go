package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	DatabasePath string
	DatabaseURL  string

	LocalTimezone *time.Location

	Notifier             string
	NotificationsEnabled bool
	NotifySchedule       string
	DayPollInterval      time.Duration

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	WhatsAppRecipient    string
	OpenAIAPIKey         string

	Theme         string
	DefaultView   string
	CalendarRange int

	LogLevel     string
	LogFile      string
	LogMaxSizeMB int
	LogMaxFiles  int
}

const (
	NotifierDesktop  = "desktop"
	NotifierWhatsApp = "whatsapp"
	NotifierLog      = "log"

	ViewHome     = "home"
	ViewCalendar = "calendar"
)

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	defaultView := strings.ToLower(getenvDefault("DEFAULT_VIEW", ViewHome))
	if defaultView != ViewHome && defaultView != ViewCalendar {
		log.Printf("config: unknown DEFAULT_VIEW %q, using %s", defaultView, ViewHome)
		defaultView = ViewHome
	}

	return &Config{
		DatabasePath:         getenvDefault("LISTS_DB_PATH", "lists.db"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		LocalTimezone:        location,
		Notifier:             strings.ToLower(getenvDefault("NOTIFIER", NotifierDesktop)),
		NotificationsEnabled: ParseBoolEnv("NOTIFICATIONS_ENABLED", true),
		NotifySchedule:       getenvDefault("NOTIFY_SCHEDULE", "0 8 * * *"),
		DayPollInterval:      ParseDurationEnv("DAY_POLL_INTERVAL", time.Minute),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		WhatsAppRecipient:    os.Getenv("WHATSAPP_RECIPIENT"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		Theme:                strings.ToLower(getenvDefault("THEME", "light")),
		DefaultView:          defaultView,
		CalendarRange:        ParseIntEnv("CALENDAR_RANGE", 30),
		LogLevel:             getenvDefault("LOG_LEVEL", "info"),
		LogFile:              os.Getenv("LOG_FILE"),
		LogMaxSizeMB:         ParseIntEnv("LOG_MAX_SIZE_MB", 10),
		LogMaxFiles:          ParseIntEnv("LOG_MAX_FILES", 5),
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}

// ParseBoolEnv returns the boolean value for an environment variable or the provided default.
func ParseBoolEnv(key string, def bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as bool: %v", key, value, err)
		return def
	}
	return parsed
}

// ParseDurationEnv returns the duration value for an environment variable or the provided default.
// Non-positive durations are rejected.
func ParseDurationEnv(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		log.Printf("config: unable to parse %s=%q as positive duration: %v", key, value, err)
		return def
	}
	return parsed
}
