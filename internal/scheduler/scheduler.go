// Package scheduler owns the process-wide timer: the minute reminder scan,
// the feeding-gap nudge and the daily report. One Scheduler is constructed
// at startup and handed its collaborators explicitly; there is no ambient
// global state.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/carebot/internal/models"
	"github.com/example/carebot/internal/notify"
	"github.com/example/carebot/internal/service"
)

type ReminderSource interface {
	ListDue(ctx context.Context, notBefore, notAfter time.Time) ([]*models.Reminder, error)
}

type UserSource interface {
	ListActive(ctx context.Context) ([]*models.User, error)
}

type ChildSource interface {
	GetByID(ctx context.Context, childID int) (*models.Child, error)
	GetFirst(ctx context.Context) (*models.Child, error)
}

type FeedingSource interface {
	GetLast(ctx context.Context) (*models.Feeding, error)
	ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Feeding, error)
}

type WeightSource interface {
	ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Weight, error)
}

type StoolSource interface {
	ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Stool, error)
}

// Config carries the scheduler's tunables.
type Config struct {
	// Staleness bounds how far past due a reminder may be and still be
	// delivered. Reminders that became due earlier than the window (for
	// example while the process was down) are dropped, not retried.
	Staleness time.Duration
	// FeedingGap is the silence after the last feeding that triggers a
	// nudge.
	FeedingGap time.Duration
	// ReportSpec is the cron spec for the daily report.
	ReportSpec string
}

type Scheduler struct {
	cron      *cron.Cron
	cfg       Config
	sender    notify.Messenger
	svc       *service.ReminderService
	reminders ReminderSource
	users     UserSource
	children  ChildSource
	feedings  FeedingSource
	weights   WeightSource
	stools    StoolSource
	now       func() time.Time
}

// tickSerializer makes an overlapping tick wait for the previous one instead
// of dropping it. A dropped minute would silently lose every reminder that
// came due inside the staleness window during that minute.
var tickSerializer = cron.DelayIfStillRunning(cron.DefaultLogger)

func New(
	cfg Config,
	sender notify.Messenger,
	svc *service.ReminderService,
	reminders ReminderSource,
	users UserSource,
	children ChildSource,
	feedings FeedingSource,
	weights WeightSource,
	stools StoolSource,
) *Scheduler {
	c := cron.New(cron.WithChain(tickSerializer))

	return &Scheduler{
		cron:      c,
		cfg:       cfg,
		sender:    sender,
		svc:       svc,
		reminders: reminders,
		users:     users,
		children:  children,
		feedings:  feedings,
		weights:   weights,
		stools:    stools,
		now:       time.Now,
	}
}

// Start registers the jobs and blocks until ctx is cancelled, then waits for
// any in-flight job to finish so no reminder is abandoned mid-transition.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("* * * * *", func() { s.checkReminders(ctx) }); err != nil {
		return fmt.Errorf("add reminder check: %w", err)
	}
	if _, err := s.cron.AddFunc("*/30 * * * *", func() { s.checkFeedingGap(ctx) }); err != nil {
		return fmt.Errorf("add feeding gap check: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.ReportSpec, func() { s.dailyReport(ctx) }); err != nil {
		return fmt.Errorf("add daily report: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (staleness %s, feeding gap %s, report %q)",
		s.cfg.Staleness, s.cfg.FeedingGap, s.cfg.ReportSpec)

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Println("Scheduler stopped")
	return nil
}

// checkReminders is one scanner tick: select active reminders due within the
// staleness window, claim each one (active -> sent, successor spawned for
// repeating rules), then fan it out to every active caregiver. Claiming
// before dispatch means an overlapping tick can never double-send.
func (s *Scheduler) checkReminders(ctx context.Context) {
	// Shutdown cancels the parent context while a tick may be between the
	// sent claim and the successor insert; the tick finishes on a detached
	// context and Start's cron drain bounds how long that takes.
	ctx = context.WithoutCancel(ctx)

	now := s.now()

	reminders, err := s.reminders.ListDue(ctx, now.Add(-s.cfg.Staleness), now)
	if err != nil {
		log.Printf("Failed to get due reminders: %v", err)
		return
	}
	if len(reminders) == 0 {
		return
	}

	users, err := s.users.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to get active users: %v", err)
		return
	}
	if len(users) == 0 {
		log.Println("No active users to deliver reminders to")
		return
	}

	for _, reminder := range reminders {
		claimed, err := s.svc.MarkDispatched(ctx, reminder)
		if err != nil {
			if claimed {
				// The row is already sent; without the successor the
				// recurrence chain ends here.
				log.Printf("Reminder %d claimed but successor not spawned, chain stalled: %v", reminder.ReminderID, err)
			} else {
				log.Printf("Failed to dispatch reminder %d: %v", reminder.ReminderID, err)
			}
		}
		if !claimed {
			continue
		}
		s.deliver(ctx, reminder, users)
	}
}

// deliver fans one reminder out. Per-recipient failures are logged and do
// not block the remaining recipients.
func (s *Scheduler) deliver(ctx context.Context, reminder *models.Reminder, users []*models.User) {
	childName := ""
	if child, err := s.children.GetByID(ctx, reminder.ChildID); err == nil {
		childName = child.Name
	} else {
		log.Printf("Failed to get child %d for reminder %d: %v", reminder.ChildID, reminder.ReminderID, err)
	}

	text := fmt.Sprintf("⏰ *Reminder for %s*\n\n%s", childName, reminder.Description)
	actions := []notify.Action{
		{Label: "✅ Done", Data: fmt.Sprintf("remcomplete:%d", reminder.ReminderID)},
		{Label: "⏭ Skip", Data: fmt.Sprintf("remskip:%d", reminder.ReminderID)},
	}

	for _, user := range users {
		if err := s.sender.Send(user.UserID, text, actions); err != nil {
			log.Printf("Failed to send reminder %d to user %d: %v", reminder.ReminderID, user.UserID, err)
			continue
		}
		log.Printf("Sent reminder %d to user %d", reminder.ReminderID, user.UserID)
	}
}

// checkFeedingGap nudges caregivers when the last recorded feeding is older
// than the configured gap.
func (s *Scheduler) checkFeedingGap(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	last, err := s.feedings.GetLast(ctx)
	if err != nil {
		log.Printf("Failed to get last feeding: %v", err)
		return
	}
	if last == nil {
		return
	}

	now := s.now()
	if now.Sub(last.Timestamp) <= s.cfg.FeedingGap {
		return
	}

	users, err := s.users.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to get active users for feeding nudge: %v", err)
		return
	}

	childName := ""
	if child, err := s.children.GetByID(ctx, last.ChildID); err == nil {
		childName = child.Name
	}

	text := fmt.Sprintf("⚠️ *Feeding reminder*\n\nMore than %s since %s's last feeding (at %s).",
		formatHours(s.cfg.FeedingGap), childName, last.Timestamp.Format("15:04"))

	for _, user := range users {
		if err := s.sender.Send(user.UserID, text, nil); err != nil {
			log.Printf("Failed to send feeding nudge to user %d: %v", user.UserID, err)
		}
	}
}

// dailyReport summarizes yesterday's feedings, stools and weights.
func (s *Scheduler) dailyReport(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	child, err := s.children.GetFirst(ctx)
	if err != nil {
		log.Printf("Failed to get child for daily report: %v", err)
		return
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	feedings, err := s.feedings.ListBetween(ctx, child.ChildID, yesterday, today)
	if err != nil {
		log.Printf("Failed to get feedings for daily report: %v", err)
	}
	stools, err := s.stools.ListBetween(ctx, child.ChildID, yesterday, today)
	if err != nil {
		log.Printf("Failed to get stools for daily report: %v", err)
	}
	weights, err := s.weights.ListBetween(ctx, child.ChildID, yesterday, today)
	if err != nil {
		log.Printf("Failed to get weights for daily report: %v", err)
	}

	text := s.buildDailyReportText(yesterday, feedings, stools, weights)

	users, err := s.users.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to get active users for daily report: %v", err)
		return
	}
	for _, user := range users {
		if err := s.sender.Send(user.UserID, text, nil); err != nil {
			log.Printf("Failed to send daily report to user %d: %v", user.UserID, err)
		}
	}
	log.Printf("Sent daily report to %d users", len(users))
}

func (s *Scheduler) buildDailyReportText(day time.Time, feedings []*models.Feeding, stools []*models.Stool, weights []*models.Weight) string {
	text := fmt.Sprintf("📊 *Report for %s*\n\n", day.Format("02.01.2006"))

	text += fmt.Sprintf("🍼 *Feedings:* %d\n", len(feedings))
	if len(feedings) > 0 {
		total := 0.0
		for _, feeding := range feedings {
			total += feeding.Amount
		}
		text += fmt.Sprintf("Total: %.0f ml\n", total)
		text += fmt.Sprintf("Average: %.1f ml\n\n", total/float64(len(feedings)))
	} else {
		text += "No data\n\n"
	}

	text += fmt.Sprintf("💩 *Stools:* %d\n", len(stools))
	if len(stools) > 0 {
		for _, stool := range stools {
			text += fmt.Sprintf("- %s: %s\n", stool.Timestamp.Format("15:04"), stool.Description)
		}
		text += "\n"
	} else {
		text += "No data\n\n"
	}

	text += "⚖️ *Weight:*\n"
	if len(weights) > 0 {
		for _, weight := range weights {
			text += fmt.Sprintf("- %s: %.2f kg\n", weight.Timestamp.Format("15:04"), weight.Weight)
		}
	} else {
		text += "No data\n"
	}

	return text
}

func formatHours(d time.Duration) string {
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
