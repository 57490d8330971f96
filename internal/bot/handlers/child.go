package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/carebot/internal/models"
	"github.com/example/carebot/internal/repository"
)

// handleChild registers or shows the household's child profile.
// /child <name> <DD.MM.YYYY> <gender> registers, bare /child shows.
func (h *Handlers) handleChild(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		h.showChild(ctx, msg)
		return
	}

	if len(args) != 3 {
		h.sendMessage(msg.Chat.ID, "Usage: /child <name> <DD.MM.YYYY> <gender>\nExample: /child Emma 15.06.2023 girl")
		return
	}

	birthDate, err := time.Parse("02.01.2006", args[1])
	if err != nil {
		h.sendMessage(msg.Chat.ID, "I couldn't read the birth date, use DD.MM.YYYY (for example 15.06.2023)")
		return
	}

	if _, err := h.repos.Child.GetFirst(ctx); err == nil {
		h.sendMessage(msg.Chat.ID, "A child profile is already registered, use /child to see it")
		return
	} else if !errors.Is(err, repository.ErrNoChild) {
		log.Printf("Failed to check child profile: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	child := &models.Child{
		Name:      args[0],
		BirthDate: birthDate,
		Gender:    strings.ToLower(args[2]),
	}
	if err := h.repos.Child.Create(ctx, child); err != nil {
		log.Printf("Failed to create child profile: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("👶 Registered %s, born %s. Now set a reminder with /remind or just ask me.",
		child.Name, child.BirthDate.Format("02.01.2006")))
}

func (h *Handlers) showChild(ctx context.Context, msg *tgbotapi.Message) {
	child, err := h.repos.Child.GetFirst(ctx)
	if errors.Is(err, repository.ErrNoChild) {
		h.sendMessage(msg.Chat.ID, "No child registered yet: /child <name> <DD.MM.YYYY> <gender>")
		return
	}
	if err != nil {
		log.Printf("Failed to load child profile: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("👶 *%s*\nBorn: %s\nAge: %s",
		child.Name, child.BirthDate.Format("02.01.2006"), formatAge(child.BirthDate, time.Now())))
}

// formatAge renders an age the way caregivers phrase it: days under a month,
// months under two years, then years and months.
func formatAge(birthDate, now time.Time) string {
	months := (now.Year()-birthDate.Year())*12 + int(now.Month()) - int(birthDate.Month())
	if now.Day() < birthDate.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}

	switch {
	case months < 1:
		days := int(now.Sub(birthDate).Hours() / 24)
		return fmt.Sprintf("%d days", days)
	case months < 24:
		return fmt.Sprintf("%d months", months)
	default:
		if months%12 == 0 {
			return fmt.Sprintf("%d years", months/12)
		}
		return fmt.Sprintf("%d years %d months", months/12, months%12)
	}
}
