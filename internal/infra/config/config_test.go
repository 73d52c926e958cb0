package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PRACTICUM_TOKEN", "practicum")
	t.Setenv("TELEGRAM_TOKEN", "telegram")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
}

func clearOptional(t *testing.T) {
	for _, name := range []string{
		"PRACTICUM_ENDPOINT", "RETRY_TIME", "PRACTICUM_TIMEOUT", "ADVANCE_CURSOR",
		"HEARTBEAT_CRON_SPEC", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "practicum", cfg.PracticumToken)
	assert.Equal(t, "telegram", cfg.TelegramToken)
	assert.Equal(t, "12345", cfg.TelegramChatID)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 600*time.Second, cfg.RetryTime)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.AdvanceCursor)
	assert.Empty(t, cfg.HeartbeatCronSpec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.CheckTokens())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("PRACTICUM_ENDPOINT", "http://localhost:8080/api/")
	t.Setenv("RETRY_TIME", "60")
	t.Setenv("PRACTICUM_TIMEOUT", "5")
	t.Setenv("ADVANCE_CURSOR", "true")
	t.Setenv("HEARTBEAT_CRON_SPEC", " 0 9 * * * ")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/", cfg.Endpoint)
	assert.Equal(t, time.Minute, cfg.RetryTime)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.AdvanceCursor)
	assert.Equal(t, "0 9 * * *", cfg.HeartbeatCronSpec)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_MissingTokensDoNotFail(t *testing.T) {
	clearOptional(t)
	t.Setenv("PRACTICUM_TOKEN", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.CheckTokens())
	assert.Equal(t, []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"}, cfg.MissingTokens())
}

func TestCheckTokens_AnySingleMissing(t *testing.T) {
	full := AppConfig{PracticumToken: "p", TelegramToken: "t", TelegramChatID: "c"}
	require.True(t, full.CheckTokens())

	for _, mutate := range []func(*AppConfig){
		func(c *AppConfig) { c.PracticumToken = "" },
		func(c *AppConfig) { c.TelegramToken = "" },
		func(c *AppConfig) { c.TelegramChatID = "" },
	} {
		cfg := full
		mutate(&cfg)
		assert.False(t, cfg.CheckTokens())
		assert.Len(t, cfg.MissingTokens(), 1)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"RETRY_TIME":        "ten",
		"PRACTICUM_TIMEOUT": "-1",
		"ADVANCE_CURSOR":    "maybe",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			clearOptional(t)
			t.Setenv(name, value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, name)
		})
	}
}
