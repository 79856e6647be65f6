package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers notifications as Telegram messages to one chat.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSender(bot *tgbotapi.BotAPI, chatID int64) *TelegramSender {
	return &TelegramSender{bot: bot, chatID: chatID}
}

// Ready reports whether a destination chat is configured and the bot
// token is accepted by the API.
func (s *TelegramSender) Ready(_ context.Context) (bool, error) {
	if s.chatID == 0 {
		return false, nil
	}
	if _, err := s.bot.GetMe(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TelegramSender) Deliver(n Notification) error {
	text := n.Title
	if n.Body != "" {
		text = fmt.Sprintf("%s\n%s", n.Title, n.Body)
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	// An empty sound identifier maps to a silent message.
	msg.DisableNotification = n.Sound == ""
	_, err := s.bot.Send(msg)
	return err
}
