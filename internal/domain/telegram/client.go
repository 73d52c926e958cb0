package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via a Telegram bot.
// The recipient is the chat identifier exactly as configured: a numeric id or an @channel name.
type Client interface {
	SendMessage(recipientChatID string, text string, options *telebot.SendOptions) error
}
