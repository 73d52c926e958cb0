package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryTime      = 600 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string

	Endpoint          string
	RetryTime         time.Duration // Pause between two polling cycles
	RequestTimeout    time.Duration
	AdvanceCursor     bool   // Move from_date to the API's current_date after each fetch
	HeartbeatCronSpec string // Empty disables the heartbeat job
	LogLevel          string
	Environment       string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing credentials are not an error here: they are reported on every polling cycle
// through CheckTokens. Only malformed optional values make Load fail.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
	}
	var err error

	cfg.Endpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	cfg.RetryTime, err = secondsFromEnv("RETRY_TIME", DefaultRetryTime)
	if err != nil {
		return nil, err
	}

	cfg.RequestTimeout, err = secondsFromEnv("PRACTICUM_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ADVANCE_CURSOR"); v != "" {
		cfg.AdvanceCursor, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ADVANCE_CURSOR: %w", err)
		}
	}

	cfg.HeartbeatCronSpec = strings.TrimSpace(os.Getenv("HEARTBEAT_CRON_SPEC"))

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// CheckTokens reports whether all three credentials are present.
func (c *AppConfig) CheckTokens() bool {
	return len(c.MissingTokens()) == 0
}

// MissingTokens lists the names of empty credential variables.
func (c *AppConfig) MissingTokens() []string {
	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.PracticumToken},
		{"TELEGRAM_TOKEN", c.TelegramToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

func secondsFromEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", name, n)
	}
	return time.Duration(n) * time.Second, nil
}
