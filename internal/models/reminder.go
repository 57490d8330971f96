package models

import "time"

type ReminderStatus string

const (
	ReminderActive    ReminderStatus = "active"
	ReminderSent      ReminderStatus = "sent"
	ReminderCompleted ReminderStatus = "completed"
	ReminderSkipped   ReminderStatus = "skipped"
)

type RepeatType string

const (
	RepeatOnce    RepeatType = "once"
	RepeatHourly  RepeatType = "hourly"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

// Reminder is one occurrence in a recurrence chain. Repeating reminders are
// never rescheduled in place: the row is frozen at a terminal status and a
// successor row carries the next occurrence.
type Reminder struct {
	ReminderID     int            `json:"reminder_id"`
	ChildID        int            `json:"child_id"`
	Description    string         `json:"description"`
	RemindAt       time.Time      `json:"remind_at"`
	Status         ReminderStatus `json:"status"`
	RepeatType     RepeatType     `json:"repeat_type"`
	RepeatInterval int            `json:"repeat_interval"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// IsRepeating returns true if this reminder spawns successors.
func (r *Reminder) IsRepeating() bool {
	return r.RepeatType != RepeatOnce && r.RepeatType != ""
}

// ValidRepeatType reports whether s is one of the supported repeat types.
func ValidRepeatType(s string) bool {
	switch RepeatType(s) {
	case RepeatOnce, RepeatHourly, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}
