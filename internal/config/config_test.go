package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/carebot")
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReminderStaleness != time.Minute {
		t.Fatalf("expected default staleness 1m, got %s", cfg.ReminderStaleness)
	}
	if cfg.FeedingGap != 3*time.Hour {
		t.Fatalf("expected default feeding gap 3h, got %s", cfg.FeedingGap)
	}
	if cfg.ReportCronSpec != "0 9 * * *" {
		t.Fatalf("expected default report spec, got %q", cfg.ReportCronSpec)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REMINDER_STALENESS", "2m")
	t.Setenv("FEEDING_GAP", "4h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReminderStaleness != 2*time.Minute {
		t.Fatalf("expected staleness 2m, got %s", cfg.ReminderStaleness)
	}
	if cfg.FeedingGap != 4*time.Hour {
		t.Fatalf("expected feeding gap 4h, got %s", cfg.FeedingGap)
	}
}
