package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/models"
	"github.com/example/carebot/internal/repository"
	"github.com/example/carebot/internal/service"
)

// handleAIMessage runs free text through the reminder parser. Messages that
// are not reminder requests get a gentle pointer to /help.
func (h *Handlers) handleAIMessage(ctx context.Context, msg *tgbotapi.Message) {
	if h.ai == nil {
		h.sendMessage(msg.Chat.ID, "I only understand commands right now, see /help")
		return
	}

	draft, err := h.ai.ParseReminder(ctx, msg.Text)
	if err != nil {
		log.Printf("Failed to parse message with AI: %v", err)
		h.sendMessage(msg.Chat.ID, "I couldn't understand that, try /remind <HH:MM> <text>")
		return
	}
	if draft == nil {
		h.sendMessage(msg.Chat.ID, "I didn't catch a reminder in that. See /help for what I can do.")
		return
	}

	child, err := h.repos.Child.GetFirst(ctx)
	if errors.Is(err, repository.ErrNoChild) {
		h.sendMessage(msg.Chat.ID, "Register your child first: /child <name> <DD.MM.YYYY> <gender>")
		return
	}
	if err != nil {
		log.Printf("Failed to load child profile: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	reminder, err := h.reminders.Create(ctx, child.ChildID, service.Draft{
		Description:    draft.Description,
		RemindAt:       draft.RemindAt,
		RepeatType:     models.RepeatType(draft.RepeatType),
		RepeatInterval: draft.RepeatInterval,
	})
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		h.sendMessage(msg.Chat.ID, "⚠️ "+validationErr.Message)
		return
	}
	if err != nil {
		log.Printf("Failed to create reminder: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("⏰ Reminder set for %s: %s%s",
		reminder.RemindAt.Format("02.01 15:04"), reminder.Description, formatRepeat(reminder)))
}
