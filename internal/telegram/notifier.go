package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/EvZhi/homework-bot/internal/poller"
)

// Notifier sends plain text messages to one fixed chat.
// It satisfies poller.Sender.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

var _ poller.Sender = (*Notifier)(nil)

// NewNotifier creates a Notifier bound to the given chat.
func NewNotifier(bot *tgbotapi.BotAPI, chatID int64, log *zap.Logger) *Notifier {
	return &Notifier{bot: bot, chatID: chatID, log: log}
}

// Notify sends text to the chat. Delivery failures are logged and swallowed;
// there is no retry and the caller is never informed.
func (n *Notifier) Notify(text string) {
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		n.log.Error("send message failed", zap.Error(err), zap.Int64("chatID", n.chatID))
		return
	}
	n.log.Debug("message sent", zap.Int64("chatID", n.chatID))
}
