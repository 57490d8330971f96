package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/ai"
	"github.com/example/carebot/internal/bot/handlers"
	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/repository"
	"github.com/example/carebot/internal/service"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
}

func New(api *tgbotapi.BotAPI, db *database.DB, aiClient *ai.Client, reminderSvc *service.ReminderService) *Bot {
	repos := &handlers.Repositories{
		User:  repository.NewUserRepository(db),
		Child: repository.NewChildRepository(db),
	}

	return &Bot{
		api:      api,
		handlers: handlers.New(api, repos, reminderSvc, aiClient),
	}
}

func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handlers.HandleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleMessage(ctx, update.Message)
}
