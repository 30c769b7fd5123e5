package telegram

import (
	"os"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/reelkit/media-assembly/services/notifications"
)

func newBot() (*telebot.Bot, error) {
	pref := telebot.Settings{
		Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	return telebot.NewBot(pref)
}

func SendTelegramMessage(chatID int64, message notifications.Template) (*telebot.Message, error) {
	bot, err := newBot()
	if err != nil {
		return nil, err
	}

	markdown, err := message.RenderMarkdown()
	if err != nil {
		return nil, err
	}

	return bot.Send(&telebot.Chat{
		ID: chatID,
	}, markdown, telebot.ModeMarkdown)
}

func EditTelegramMessage(msg *telebot.Message, message notifications.Template) (*telebot.Message, error) {
	bot, err := newBot()
	if err != nil {
		return nil, err
	}

	markdown, err := message.RenderMarkdown()
	if err != nil {
		return nil, err
	}

	return bot.Edit(msg, markdown, telebot.ModeMarkdown)
}
