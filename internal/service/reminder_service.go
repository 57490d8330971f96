package service

import (
	"context"
	"errors"
	"log"
	"time"
	"unicode/utf8"

	"github.com/example/carebot/internal/dose"
	"github.com/example/carebot/internal/models"
	"github.com/example/carebot/internal/recurrence"
	"github.com/example/carebot/internal/repository"
)

// ReminderStore is the slice of the reminder repository the lifecycle
// controller depends on.
type ReminderStore interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, reminderID int) (*models.Reminder, error)
	TransitionStatus(ctx context.Context, reminderID int, from []models.ReminderStatus, to models.ReminderStatus) (bool, error)
	ListActiveByChild(ctx context.Context, childID int) ([]*models.Reminder, error)
	Delete(ctx context.Context, reminderID int) error
}

// DoseRecorder persists medication doses produced by the dose hook.
type DoseRecorder interface {
	Create(ctx context.Context, medication *models.Medication) error
}

// Draft is a validated-on-entry reminder request, either from a command or
// from the natural-language parser.
type Draft struct {
	Description    string
	RemindAt       time.Time
	RepeatType     models.RepeatType
	RepeatInterval int
}

// ReminderService owns the reminder lifecycle: draft validation, the
// active/sent/completed/skipped state machine and successor spawning for
// repeating reminders. It is the sole writer of successor rows, which keeps
// every recurrence chain linear.
type ReminderService struct {
	store       ReminderStore
	medications DoseRecorder
	extractor   dose.Extractor
	now         func() time.Time
}

func NewReminderService(store ReminderStore, medications DoseRecorder, extractor dose.Extractor) *ReminderService {
	return &ReminderService{
		store:       store,
		medications: medications,
		extractor:   extractor,
		now:         time.Now,
	}
}

// Create validates a draft and persists it as an active reminder. A once
// reminder must be strictly in the future; a repeating reminder with a past
// first occurrence is advanced to its next future occurrence so the chain
// stays phase-aligned with the requested time-of-day.
func (s *ReminderService) Create(ctx context.Context, childID int, draft Draft) (*models.Reminder, error) {
	if utf8.RuneCountInString(draft.Description) < 3 {
		return nil, validationErrorf("description must be at least 3 characters")
	}
	if !models.ValidRepeatType(string(draft.RepeatType)) {
		return nil, validationErrorf("unsupported repeat type")
	}

	interval := draft.RepeatInterval
	if draft.RepeatType == models.RepeatOnce {
		interval = 1
	} else if interval < 1 {
		return nil, validationErrorf("repeat interval must be at least 1")
	}

	now := s.now()
	remindAt := draft.RemindAt
	if !remindAt.After(now) {
		if draft.RepeatType == models.RepeatOnce {
			return nil, validationErrorf("reminder time must be in the future")
		}
		advanced, err := recurrence.NextAfter(remindAt, now, draft.RepeatType, interval)
		if err != nil {
			return nil, err
		}
		remindAt = advanced
	}

	reminder := &models.Reminder{
		ChildID:        childID,
		Description:    draft.Description,
		RemindAt:       remindAt,
		Status:         models.ReminderActive,
		RepeatType:     draft.RepeatType,
		RepeatInterval: interval,
	}
	if err := s.store.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// MarkDispatched transitions active -> sent after the scanner fanned the
// reminder out. For repeating reminders the successor is spawned here, at
// delivery time, so the chain never stalls on an unresponsive recipient.
// Returns false when another tick already claimed the reminder.
func (s *ReminderService) MarkDispatched(ctx context.Context, reminder *models.Reminder) (bool, error) {
	claimed, err := s.store.TransitionStatus(ctx, reminder.ReminderID,
		[]models.ReminderStatus{models.ReminderActive}, models.ReminderSent)
	if err != nil || !claimed {
		return false, err
	}

	if reminder.IsRepeating() {
		if err := s.spawnSuccessor(ctx, reminder); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Complete marks a reminder completed and, when its description looks like a
// medication dose, records the dose. The returned Info is non-nil when a
// dose was recorded.
func (s *ReminderService) Complete(ctx context.Context, reminderID int) (*models.Reminder, *dose.Info, error) {
	reminder, err := s.resolve(ctx, reminderID, models.ReminderCompleted)
	if err != nil {
		return nil, nil, err
	}

	info := s.recordDose(ctx, reminder)
	return reminder, info, nil
}

// Skip marks a reminder skipped. No dose is recorded.
func (s *ReminderService) Skip(ctx context.Context, reminderID int) (*models.Reminder, error) {
	reminder, err := s.resolve(ctx, reminderID, models.ReminderSkipped)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// resolve moves a reminder to a terminal status. The successor spawns only
// when the reminder is still active, i.e. the scanner has not dispatched it
// yet; after sent, the successor already exists and complete/skip are purely
// informational. The two conditional updates make duplicate callbacks and
// scanner races collapse to ErrAlreadyResolved instead of double-spawning.
func (s *ReminderService) resolve(ctx context.Context, reminderID int, to models.ReminderStatus) (*models.Reminder, error) {
	reminder, err := s.store.GetByID(ctx, reminderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAlreadyResolved
	}
	if err != nil {
		return nil, err
	}

	fromActive, err := s.store.TransitionStatus(ctx, reminderID,
		[]models.ReminderStatus{models.ReminderActive}, to)
	if err != nil {
		return nil, err
	}

	if !fromActive {
		fromSent, err := s.store.TransitionStatus(ctx, reminderID,
			[]models.ReminderStatus{models.ReminderSent}, to)
		if err != nil {
			return nil, err
		}
		if !fromSent {
			return nil, ErrAlreadyResolved
		}
		return reminder, nil
	}

	if reminder.IsRepeating() {
		if err := s.spawnSuccessor(ctx, reminder); err != nil {
			return nil, err
		}
	}
	return reminder, nil
}

// spawnSuccessor inserts the next occurrence of a repeating reminder. The
// base time is the predecessor's original remind_at, not the interaction
// time, so a late completion does not drift the chain.
func (s *ReminderService) spawnSuccessor(ctx context.Context, reminder *models.Reminder) error {
	next, err := recurrence.Next(reminder.RemindAt, reminder.RepeatType, reminder.RepeatInterval)
	if err != nil {
		return err
	}

	successor := &models.Reminder{
		ChildID:        reminder.ChildID,
		Description:    reminder.Description,
		RemindAt:       next,
		Status:         models.ReminderActive,
		RepeatType:     reminder.RepeatType,
		RepeatInterval: reminder.RepeatInterval,
	}
	return s.store.Create(ctx, successor)
}

// recordDose runs the derived side-effect hook. It executes after the status
// transition is committed and is fully best-effort: extraction misses and
// storage errors are logged and swallowed, never failing the completion.
func (s *ReminderService) recordDose(ctx context.Context, reminder *models.Reminder) *dose.Info {
	if s.extractor == nil || s.medications == nil {
		return nil
	}

	info, ok := s.extractor.Extract(reminder.Description)
	if !ok {
		return nil
	}

	medication := &models.Medication{
		ChildID:   reminder.ChildID,
		Name:      info.Name,
		Dosage:    info.Dosage,
		Timestamp: s.now(),
	}
	if err := s.medications.Create(ctx, medication); err != nil {
		log.Printf("Failed to record dose for reminder %d: %v", reminder.ReminderID, err)
		return nil
	}
	return &info
}

// Cancel hard-deletes a pending reminder. Resolved reminders stay for audit;
// cancelling an active repeating reminder ends its chain because the
// successor is only spawned on dispatch or resolution.
func (s *ReminderService) Cancel(ctx context.Context, reminderID int) error {
	reminder, err := s.store.GetByID(ctx, reminderID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAlreadyResolved
	}
	if err != nil {
		return err
	}
	if reminder.Status != models.ReminderActive {
		return ErrAlreadyResolved
	}
	return s.store.Delete(ctx, reminderID)
}

// ListActive returns the child's pending reminders, soonest first.
func (s *ReminderService) ListActive(ctx context.Context, childID int) ([]*models.Reminder, error) {
	return s.store.ListActiveByChild(ctx, childID)
}
