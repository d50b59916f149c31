package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/periodcalendar/internal/services"
	"gopkg.in/telebot.v3"
)

// messageSender is the part of *telebot.Bot used for delivery.
type messageSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramSender posts reminders to one Telegram chat.
type TelegramSender struct {
	bot    messageSender
	chatID int64
}

// NewTelegramSender connects a bot for token. The bot is only used to send,
// so no poller is started.
func NewTelegramSender(token string, chatID int64, log *logrus.Logger) (*TelegramSender, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token: token,
		OnError: func(err error, _ telebot.Context) {
			if log != nil {
				log.WithError(err).Error("telegram bot error")
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return newTelegramSender(bot, chatID), nil
}

func newTelegramSender(bot messageSender, chatID int64) *TelegramSender {
	return &TelegramSender{bot: bot, chatID: chatID}
}

func (sender *TelegramSender) Send(ctx context.Context, reminder services.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := sender.bot.Send(&telebot.Chat{ID: sender.chatID}, FormatReminder(reminder), &telebot.SendOptions{
		ParseMode:             telebot.ModeDefault,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatReminder renders the reminder as a two-line plain text message.
func FormatReminder(reminder services.Reminder) string {
	return fmt.Sprintf("%s\n%s (%s)", reminder.Title, reminder.Message, reminder.Date.Format(time.DateOnly))
}
