// internal/app/notifier.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier delivers text messages to the single configured chat.
// Delivery failures are logged and never returned to the caller.
type Notifier struct {
	client domainTelegram.Client
	chatID string
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID string, logger *logrus.Entry) *Notifier {
	return &Notifier{client: client, chatID: chatID, logger: logger}
}

// Notify sends text and reports whether Telegram accepted it.
func (n *Notifier) Notify(text string) bool {
	logCtx := n.logger.WithField("chat_id", n.chatID)
	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		logCtx.WithError(fmt.Errorf("%w: %v", homework.ErrNotify, err)).Error("Failed to send message")
		return false
	}
	logCtx.WithField("text", text).Info("Message sent")
	return true
}
