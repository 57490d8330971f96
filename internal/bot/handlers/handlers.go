package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/ai"
	"github.com/example/carebot/internal/repository"
	"github.com/example/carebot/internal/service"
)

type Repositories struct {
	User  *repository.UserRepository
	Child *repository.ChildRepository
}

type Handlers struct {
	api       *tgbotapi.BotAPI
	repos     *Repositories
	reminders *service.ReminderService
	ai        *ai.Client
}

func New(api *tgbotapi.BotAPI, repos *Repositories, reminders *service.ReminderService, aiClient *ai.Client) *Handlers {
	return &Handlers{
		api:       api,
		repos:     repos,
		reminders: reminders,
		ai:        aiClient,
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	// Ensure user exists
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "child":
		h.handleChild(ctx, msg)
	case "remind":
		h.handleRemind(ctx, msg)
	case "reminders":
		h.handleReminderList(ctx, msg)
	case "cancel":
		h.handleCancel(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command, use /help to see what I can do")
	}
}

func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Ensure user exists
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	h.handleAIMessage(ctx, msg)
}

// HandleCallbackQuery processes the Done/Skip buttons attached to delivered
// reminders. Unknown or already-resolved ids get a neutral acknowledgment:
// button taps race with the scanner and with other caregivers.
func (h *Handlers) HandleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	parts := strings.SplitN(callback.Data, ":", 2)
	if len(parts) != 2 {
		h.answerCallback(callback.ID, "")
		return
	}

	reminderID, err := strconv.Atoi(parts[1])
	if err != nil {
		h.answerCallback(callback.ID, "")
		return
	}

	switch parts[0] {
	case "remcomplete":
		h.handleComplete(ctx, callback, reminderID)
	case "remskip":
		h.handleSkip(ctx, callback, reminderID)
	default:
		h.answerCallback(callback.ID, "")
	}
}

func (h *Handlers) handleComplete(ctx context.Context, callback *tgbotapi.CallbackQuery, reminderID int) {
	_, doseInfo, err := h.reminders.Complete(ctx, reminderID)
	if errors.Is(err, service.ErrAlreadyResolved) {
		h.answerCallback(callback.ID, "Already handled")
		return
	}
	if err != nil {
		log.Printf("Failed to complete reminder %d: %v", reminderID, err)
		h.answerCallback(callback.ID, "Something went wrong, try again")
		return
	}

	h.answerCallback(callback.ID, "✅ Marked as done")

	if doseInfo != nil {
		h.sendMessage(callback.Message.Chat.ID,
			fmt.Sprintf("✅ Dose of %s (%s) recorded automatically", doseInfo.Name, doseInfo.Dosage))
	}
}

func (h *Handlers) handleSkip(ctx context.Context, callback *tgbotapi.CallbackQuery, reminderID int) {
	_, err := h.reminders.Skip(ctx, reminderID)
	if errors.Is(err, service.ErrAlreadyResolved) {
		h.answerCallback(callback.ID, "Already handled")
		return
	}
	if err != nil {
		log.Printf("Failed to skip reminder %d: %v", reminderID, err)
		h.answerCallback(callback.ID, "Something went wrong, try again")
		return
	}

	h.answerCallback(callback.ID, "⏭ Skipped")
}

func (h *Handlers) answerCallback(callbackID, text string) {
	answer := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.api.Request(answer); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handlers) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	text := fmt.Sprintf(`👋 Hi %s!

I help your family keep track of child care reminders.

• "/remind 13:00 give the medicine" sets a one-time reminder
• Or just tell me: "remind me every day at 9:00 about vitamin D"
• Due reminders go to every caregiver with Done/Skip buttons

Start with /child to register your child, then /help for all commands.`, msg.From.FirstName)
	h.sendMessage(msg.Chat.ID, text)
}

func (h *Handlers) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	text := `📖 *Commands*

/child <name> <DD.MM.YYYY> <gender> - register the child profile
/child - show the registered profile

/remind <HH:MM> <text> - one-time reminder for today (or tomorrow if past)
/reminders - list pending reminders
/cancel <id> - cancel a pending reminder

💬 You can also use plain language:
• "remind me tomorrow at 10:00 about the checkup"
• "remind me every 6 hours to give nurofen syrup 5 ml"`
	h.sendMessage(msg.Chat.ID, text)
}
