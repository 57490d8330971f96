package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/ai"
	"github.com/example/carebot/internal/bot"
	"github.com/example/carebot/internal/config"
	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/dose"
	"github.com/example/carebot/internal/notify"
	"github.com/example/carebot/internal/repository"
	"github.com/example/carebot/internal/scheduler"
	"github.com/example/carebot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram client: %v", err)
	}

	var aiClient *ai.Client
	if cfg.AIAPIKey != "" {
		aiClient = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	} else {
		log.Println("AI_API_KEY not set, natural-language reminders disabled")
	}

	reminderRepo := repository.NewReminderRepository(db)
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	feedingRepo := repository.NewFeedingRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	stoolRepo := repository.NewStoolRepository(db)

	reminderSvc := service.NewReminderService(reminderRepo, medicationRepo, dose.KeywordExtractor{})

	sched := scheduler.New(
		scheduler.Config{
			Staleness:  cfg.ReminderStaleness,
			FeedingGap: cfg.FeedingGap,
			ReportSpec: cfg.ReportCronSpec,
		},
		notify.NewTelegram(api),
		reminderSvc,
		reminderRepo,
		userRepo,
		childRepo,
		feedingRepo,
		weightRepo,
		stoolRepo,
	)
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler exited: %v", err)
		}
	}()

	b := bot.New(api, db, aiClient, reminderSvc)
	if err := b.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Bot stopped: %v", err)
	}

	// Wait for the scheduler's stop drain so an in-flight tick is never
	// abandoned mid-transition.
	<-schedDone
	log.Println("Shutting down")
}
