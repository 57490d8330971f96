package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

// ErrNotFound is returned when a reminder id does not exist. Callers racing
// with the scanner treat it as "already handled elsewhere", not a failure.
var ErrNotFound = errors.New("reminder not found")

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `reminder_id, child_id, description, remind_at, status, repeat_type, repeat_interval, created_at, updated_at`

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (child_id, description, remind_at, status, repeat_type, repeat_interval)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING reminder_id, created_at, updated_at`,
		reminder.ChildID, reminder.Description, reminder.RemindAt, reminder.Status,
		reminder.RepeatType, reminder.RepeatInterval,
	).Scan(&reminder.ReminderID, &reminder.CreatedAt, &reminder.UpdatedAt)
}

func (r *ReminderRepository) GetByID(ctx context.Context, reminderID int) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE reminder_id = $1`,
		reminderID,
	).Scan(&reminder.ReminderID, &reminder.ChildID, &reminder.Description, &reminder.RemindAt,
		&reminder.Status, &reminder.RepeatType, &reminder.RepeatInterval, &reminder.CreatedAt, &reminder.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// ListDue returns active reminders with remind_at in (notBefore, notAfter].
// The lower bound is the scanner's staleness window: reminders that became
// due earlier than notBefore are never selected again.
func (r *ReminderRepository) ListDue(ctx context.Context, notBefore, notAfter time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 WHERE status = $1 AND remind_at > $2 AND remind_at <= $3
		 ORDER BY remind_at ASC`,
		models.ReminderActive, notBefore, notAfter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

func (r *ReminderRepository) ListActiveByChild(ctx context.Context, childID int) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 WHERE child_id = $1 AND status = $2
		 ORDER BY remind_at ASC`,
		childID, models.ReminderActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

// TransitionStatus moves a reminder from any of the from statuses to the to
// status in a single conditional UPDATE. It returns false when the row was
// already outside the from set; duplicate callbacks and scanner races collapse
// to a no-op instead of an error.
func (r *ReminderRepository) TransitionStatus(ctx context.Context, reminderID int, from []models.ReminderStatus, to models.ReminderStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE reminder_id = $2 AND status = ANY($3)`,
		to, reminderID, from,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE reminder_id = $1`,
		reminderID,
	)
	return err
}

func scanReminders(rows pgx.Rows) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ReminderID, &reminder.ChildID, &reminder.Description, &reminder.RemindAt,
			&reminder.Status, &reminder.RepeatType, &reminder.RepeatInterval, &reminder.CreatedAt, &reminder.UpdatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
