package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"LeadBot/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BotToken     string
	CalendarLink string

	HighLevelAPIKey     string
	HighLevelLocationID string
	HighLevelBaseURL    string
	HighLevelTag        string

	SheetWebhookURL string

	FirebaseKeyPath     string
	FirebaseDatabaseURL string

	AuditChatID string
	MetricsAddr string
	VariantFile string
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		BotToken:            strings.TrimSpace(getenv("BOT_TOKEN")),
		CalendarLink:        getenv("CALENDAR_LINK"),
		HighLevelAPIKey:     getenv("GHL_API_KEY"),
		HighLevelLocationID: getenv("GHL_LOCATION_ID"),
		HighLevelBaseURL:    getenv("GHL_BASE_URL"),
		HighLevelTag:        getenv("GHL_TAG"),
		SheetWebhookURL:     getenv("SHEET_WEBHOOK_URL"),
		FirebaseKeyPath:     getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH"),
		FirebaseDatabaseURL: getenv("FIREBASE_DATABASE_URL"),
		AuditChatID:         getenv("AUDIT_CHAT_ID"),
		MetricsAddr:         getenv("METRICS_ADDR"),
		VariantFile:         getenv("FLOW_VARIANT_FILE"),
		HTTPTimeout:         15 * time.Second,
		LogLevel:            getenv("LOG_LEVEL"),
		LogFormat:           getenv("LOG_FORMAT"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}
	if cfg.HighLevelTag == "" {
		cfg.HighLevelTag = "telegram lead"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if raw := getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", raw, err)
		}
		cfg.HTTPTimeout = d
	}
	if (cfg.FirebaseKeyPath == "") != (cfg.FirebaseDatabaseURL == "") {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH and FIREBASE_DATABASE_URL must be set together")
	}
	return cfg, nil
}

// Variant loads the flow variant file on top of the defaults. An empty path
// yields the defaults.
func (c *Config) Variant() (model.Variant, error) {
	v := model.DefaultVariant()
	if c.VariantFile != "" {
		data, err := os.ReadFile(c.VariantFile)
		if err != nil {
			return v, fmt.Errorf("error reading flow variant file: %w", err)
		}
		v, err = ParseVariant(data)
		if err != nil {
			return v, err
		}
	}
	if v.CalendarLink == "" {
		v.CalendarLink = c.CalendarLink
	}
	return v, nil
}

func ParseVariant(data []byte) (model.Variant, error) {
	v := model.DefaultVariant()
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("error parsing flow variant: %w", err)
	}
	switch v.Restart {
	case "":
		v.Restart = model.RestartImmediate
	case model.RestartImmediate, model.RestartConfirm:
	default:
		return v, fmt.Errorf("unknown restart policy %q", v.Restart)
	}
	return v, nil
}
