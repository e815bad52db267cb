package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/demetrisperdikos/CalendarApp/config"
	"github.com/demetrisperdikos/CalendarApp/internal/bot"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/caldav"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/weather"
	"github.com/demetrisperdikos/CalendarApp/internal/notes"
	"github.com/demetrisperdikos/CalendarApp/internal/notify"
	"github.com/demetrisperdikos/CalendarApp/internal/scheduler"
	"github.com/demetrisperdikos/CalendarApp/internal/service"
	"github.com/demetrisperdikos/CalendarApp/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer store.Close()

	noteStore := notes.NewStore(store)
	noteStore.Load()

	noteSvc := service.NewNoteService(noteStore, cfg.Timezone)
	weatherClient := weather.NewClient(cfg.WeatherAPIKey)
	caldavClient := caldav.NewClient(cfg.CalDAVURL, cfg.CalDAVUsername, cfg.CalDAVPassword, cfg.CalDAVCalendar)
	noteSvc.SetPublisher(caldavClient)

	var sender notify.Sender = notify.LogSender{}
	var tgBot *bot.Bot
	if cfg.TelegramEnabled() {
		tgBot, err = bot.New(cfg, noteSvc, weatherClient, caldavClient)
		if err != nil {
			log.Fatalf("Failed to init bot: %v", err)
		}
		sender = tgBot
	} else {
		log.Println("Telegram not configured, notifications go to the log")
	}

	queue := notify.NewQueue(sender)
	sched := scheduler.New(noteStore, queue, cfg.Timezone)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	if tgBot != nil {
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	log.Println("CalendarApp started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	cancel()
	sched.Stop()

	log.Println("CalendarApp stopped")
}
