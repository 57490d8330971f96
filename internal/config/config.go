package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI   string `env:"DATABASE_URI"`
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	AIAPIKey  string `env:"AI_API_KEY"`
	AIBaseURL string `env:"AI_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AIModel   string `env:"AI_MODEL" envDefault:"openai/gpt-4o-mini"`

	// ReminderStaleness bounds how far past due a reminder may be and
	// still be delivered.
	ReminderStaleness time.Duration `env:"REMINDER_STALENESS" envDefault:"1m"`
	FeedingGap        time.Duration `env:"FEEDING_GAP" envDefault:"3h"`
	ReportCronSpec    string        `env:"REPORT_CRON" envDefault:"0 9 * * *"`
}

func Load() (*Config, error) {
	// .env file is optional in production
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
