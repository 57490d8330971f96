package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/models"
	"github.com/example/carebot/internal/repository"
	"github.com/example/carebot/internal/service"
)

// handleRemind sets a one-time reminder: /remind HH:MM text
func (h *Handlers) handleRemind(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		h.sendMessage(msg.Chat.ID, "Usage: /remind <HH:MM> <text>\nExample: /remind 13:00 give the medicine")
		return
	}

	remindAt, err := parseTimeToday(args[0], time.Now())
	if err != nil {
		h.sendMessage(msg.Chat.ID, "I couldn't read the time, use HH:MM (for example 13:00)")
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
		Description: strings.Join(args[1:], " "),
		RemindAt:    remindAt,
		RepeatType:  models.RepeatOnce,
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

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("⏰ Reminder set for %s: %s",
		reminder.RemindAt.Format("02.01 15:04"), reminder.Description))
}

// handleReminderList shows the pending reminders, soonest first.
func (h *Handlers) handleReminderList(ctx context.Context, msg *tgbotapi.Message) {
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

	reminders, err := h.reminders.ListActive(ctx, child.ChildID)
	if err != nil {
		log.Printf("Failed to list reminders: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	if len(reminders) == 0 {
		h.sendMessage(msg.Chat.ID, "No pending reminders. Set one with /remind or just ask me.")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ *Pending reminders*\n\n")
	for _, reminder := range reminders {
		sb.WriteString(fmt.Sprintf("#%d %s — %s%s\n",
			reminder.ReminderID,
			reminder.RemindAt.Format("02.01 15:04"),
			reminder.Description,
			formatRepeat(reminder)))
	}
	sb.WriteString("\nCancel one with /cancel <id>")
	h.sendMessage(msg.Chat.ID, sb.String())
}

// handleCancel hard-removes a pending reminder: /cancel <id>
func (h *Handlers) handleCancel(ctx context.Context, msg *tgbotapi.Message) {
	reminderID, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Usage: /cancel <id>, see /reminders for the ids")
		return
	}

	err = h.reminders.Cancel(ctx, reminderID)
	if errors.Is(err, service.ErrAlreadyResolved) {
		h.sendMessage(msg.Chat.ID, "That reminder is not pending anymore")
		return
	}
	if err != nil {
		log.Printf("Failed to cancel reminder %d: %v", reminderID, err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 Reminder #%d cancelled", reminderID))
}

func formatRepeat(reminder *models.Reminder) string {
	if !reminder.IsRepeating() {
		return ""
	}

	unit := map[models.RepeatType]string{
		models.RepeatHourly:  "hour",
		models.RepeatDaily:   "day",
		models.RepeatWeekly:  "week",
		models.RepeatMonthly: "month",
	}[reminder.RepeatType]

	if reminder.RepeatInterval == 1 {
		return fmt.Sprintf(" (every %s)", unit)
	}
	return fmt.Sprintf(" (every %d %ss)", reminder.RepeatInterval, unit)
}

// parseTimeToday resolves HH:MM against today; a time already past rolls to
// tomorrow.
func parseTimeToday(value string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, err
	}

	result := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !result.After(now) {
		result = result.AddDate(0, 0, 1)
	}
	return result, nil
}
