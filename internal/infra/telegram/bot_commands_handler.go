// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"strconv"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StatsProvider exposes polling statistics to the /status command.
type StatsProvider interface {
	Stats() app.Stats
}

const (
	startReply = "Привет! Я слежу за статусом проверки домашних работ и пришлю сообщение, как только он изменится.\n\n`/status` - состояние опроса."
	helpReply  = "Я опрашиваю API Практикума и сообщаю об изменении статуса проверки.\n\n`/status` - состояние опроса.\n`/help` - это сообщение."
)

func RegisterBotCommands(
	b *telebot.Bot,
	cfg *config.AppConfig, // For TelegramChatID
	stats StatsProvider,
	baseLogger *logrus.Entry, // For contextual logging
) {
	cmdLogger := baseLogger.WithField("handler_group", "commands")
	onlyConfiguredChat := configuredChatOnly(cfg.TelegramChatID, cmdLogger)

	b.Handle("/start", func(c telebot.Context) error {
		cmdLogger.WithField("command", "/start").WithField("chat_id", c.Chat().ID).Info("Processing /start command")
		return c.Send(startReply, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}, onlyConfiguredChat)

	b.Handle("/help", func(c telebot.Context) error {
		cmdLogger.WithField("command", "/help").WithField("chat_id", c.Chat().ID).Info("Processing /help command")
		return c.Send(helpReply, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}, onlyConfiguredChat)

	b.Handle("/status", func(c telebot.Context) error {
		cmdLogger.WithField("command", "/status").WithField("chat_id", c.Chat().ID).Info("Processing /status command")
		return c.Send(app.FormatStats(stats.Stats()))
	}, onlyConfiguredChat)
}

// configuredChatOnly drops updates from any chat other than the one notifications go to.
func configuredChatOnly(chatID string, logger *logrus.Entry) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			chat := c.Chat()
			if chat == nil || !isConfiguredChat(chat, chatID) {
				if chat != nil {
					logger.WithField("chat_id", chat.ID).Warn("Ignoring command from unknown chat")
				}
				return nil
			}
			return next(c)
		}
	}
}

func isConfiguredChat(chat *telebot.Chat, chatID string) bool {
	if chatID == "" {
		return false
	}
	if strconv.FormatInt(chat.ID, 10) == chatID {
		return true
	}
	return chat.Username != "" && "@"+chat.Username == chatID
}
