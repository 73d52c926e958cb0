package logger

import (
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_LevelAndFormatter(t *testing.T) {
	l := logrus.New()
	Configure(l, &config.AppConfig{LogLevel: "debug", Environment: "production"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	Configure(l, &config.AppConfig{LogLevel: "warn", Environment: "development"})
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := logrus.New()
	Configure(l, &config.AppConfig{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestCritical(t *testing.T) {
	l, hook := test.NewNullLogger()
	Critical(l.WithField("component", "poller"), "Bot failure: boom")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Bot failure: boom", entry.Message)
	assert.Equal(t, SeverityCritical, entry.Data["severity"])
	assert.Equal(t, "poller", entry.Data["component"])
}
