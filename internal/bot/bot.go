package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/demetrisperdikos/CalendarApp/config"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/caldav"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/weather"
	"github.com/demetrisperdikos/CalendarApp/internal/service"
)

// Bot is the Telegram command surface over the calendar and the delivery
// channel for fired notifications.
type Bot struct {
	api           *tgbotapi.BotAPI
	cfg           *config.Config
	noteService   *service.NoteService
	weatherClient *weather.Client
	caldavClient  *caldav.Client
}

func New(cfg *config.Config, noteSvc *service.NoteService, weatherClient *weather.Client, caldavClient *caldav.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("Authorized as @%s", api.Self.UserName)

	bot := &Bot{
		api:           api,
		cfg:           cfg,
		noteService:   noteSvc,
		weatherClient: weatherClient,
		caldavClient:  caldavClient,
	}

	bot.setCommands()

	return bot, nil
}

func (b *Bot) setCommands() {
	commands := []tgbotapi.BotCommand{
		{Command: "add", Description: "➕ Add a note to a date"},
		{Command: "note", Description: "📝 Show the note on a date"},
		{Command: "upcoming", Description: "📅 Upcoming events"},
		{Command: "search", Description: "🔍 Search by date or text"},
		{Command: "weather", Description: "🌤 Weather forecast"},
		{Command: "help", Description: "❓ Command reference"},
	}

	cfg := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cfg); err != nil {
		log.Printf("Failed to set commands: %v", err)
	}
}

func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(update)
		}
	}
}

// SendMessage sends to the configured chat. This is the notify.Sender used
// for notification delivery.
func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.cfg.TelegramChatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to %d: %v", chatID, err)
	}
}
