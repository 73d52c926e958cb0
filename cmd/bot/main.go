package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, RetryTime: %s", cfg.LogLevel, cfg.Environment, cfg.RetryTime)
	if !cfg.CheckTokens() {
		// Keep running: every polling cycle reports the problem until the environment is fixed.
		logger.Critical(mainLogger, "Missing required environment variables, polling cycles will fail")
	}

	// Without a token the bot stays offline; sends fail and are logged by the notifier.
	online := cfg.TelegramToken != ""
	pref := telebot.Settings{
		Token:   cfg.TelegramToken,
		Offline: !online,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram handler failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}

	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, logger.Component("notifier"))
	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, &http.Client{}, logger.Component("practicum"))
	statusService := app.NewStatusService(cfg, apiClient, notifier, logger.Component("poller"))
	mainLogger.Info("Status service initialized.")

	var heartbeat *scheduler.HeartbeatScheduler
	if cfg.HeartbeatCronSpec != "" {
		heartbeat = scheduler.NewHeartbeatScheduler(statusService, notifier, logger.Component("scheduler"), cfg.HeartbeatCronSpec)
		if err := heartbeat.Start(); err != nil {
			mainLogger.Fatalf("Could not start heartbeat scheduler: %v", err)
		}
	}

	if online {
		telegram.RegisterBotCommands(bot, cfg, statusService, logger.Component("telegram"))
		mainLogger.Info("Bot command handlers registered.")
		// Start bot in a goroutine so it doesn't block the polling loop
		go bot.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mainLogger.Info("Application setup complete. Polling is starting...")
	if err := statusService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Polling loop exited unexpectedly")
	}

	mainLogger.Info("Shutting down application...")
	if heartbeat != nil {
		heartbeat.Stop()
	}
	if online {
		bot.Stop()
	}
	mainLogger.Info("Application shut down gracefully.")
}
