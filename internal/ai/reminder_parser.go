// Package ai turns free-text caregiver messages into structured reminder
// drafts. The language model is a black box: it either returns a normalized
// draft or nothing, and the rest of the system never interprets free text.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
	now    func() time.Time
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
		now:    time.Now,
	}
}

// ReminderDraft is the parser's normalized output.
type ReminderDraft struct {
	Description    string
	RemindAt       time.Time
	RepeatType     string
	RepeatInterval int
}

// rawDraft is the model's JSON response before datetime normalization.
type rawDraft struct {
	Description    string `json:"description"`
	Time           string `json:"time"` // HH:MM, may be empty
	Date           string `json:"date"` // DD.MM.YYYY, may be empty
	RepeatType     string `json:"repeat_type"`
	RepeatInterval int    `json:"repeat_interval"`
	IsReminder     bool   `json:"is_reminder"`
}

const systemPromptTemplate = `You recognize reminder requests in short messages from a caregiver tracking a child.

Current time: %s

Return JSON with these fields:
- description: what to be reminded about, without the time expression
- time: reminder time as HH:MM, or "" if not given
- date: reminder date as DD.MM.YYYY, or "" if not given
- repeat_type: one of once, hourly, daily, weekly, monthly
- repeat_interval: positive integer ("every 3 days" -> daily with interval 3)
- is_reminder: true only if the message asks to create a reminder

Resolve relative expressions ("tomorrow", "in 2 hours") against the current time.

Examples:
"remind me to give the medicine at 13:00" -> {"description": "give the medicine", "time": "13:00", "date": "", "repeat_type": "once", "repeat_interval": 1, "is_reminder": true}
"remind me every day at 9:00 about vitamin D" -> {"description": "vitamin D", "time": "09:00", "date": "", "repeat_type": "daily", "repeat_interval": 1, "is_reminder": true}`

var draftSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"description": {"type": "string"},
		"time": {"type": "string"},
		"date": {"type": "string"},
		"repeat_type": {
			"type": "string",
			"enum": ["once", "hourly", "daily", "weekly", "monthly"]
		},
		"repeat_interval": {"type": "integer", "minimum": 1},
		"is_reminder": {"type": "boolean"}
	},
	"required": ["description", "time", "date", "repeat_type", "repeat_interval", "is_reminder"],
	"additionalProperties": false
}`)

// ParseReminder returns a draft when text asks for a reminder, or nil when
// it does not. A cheap keyword prefilter runs before any API call.
func (c *Client) ParseReminder(ctx context.Context, text string) (*ReminderDraft, error) {
	if !isReminderRequest(text) {
		return nil, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptTemplate, c.now().Format("2006-01-02 15:04 (Monday)")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "reminder_draft",
				Schema: draftSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	raw, err := extractDraft(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if raw == nil || !raw.IsReminder {
		return nil, nil
	}

	return normalizeDraft(raw, c.now()), nil
}

// reminder-flavored keywords; a message without any of them never reaches
// the API.
var reminderKeywords = []string{
	"remind", "reminder", "notify", "notification",
	"every day", "every week", "every month", "every hour",
	"daily", "weekly", "monthly", "hourly",
}

func isReminderRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range reminderKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractDraft tolerates models that wrap the JSON in prose.
func extractDraft(content string) (*rawDraft, error) {
	payload := content
	if match := jsonPattern.FindString(content); match != "" {
		payload = match
	}

	draft := &rawDraft{}
	if err := json.Unmarshal([]byte(payload), draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return draft, nil
}

// normalizeDraft fills missing date/time: no date means today, no time means
// the next full hour.
func normalizeDraft(raw *rawDraft, now time.Time) *ReminderDraft {
	day := now
	if raw.Date != "" {
		if parsed, err := time.ParseInLocation("02.01.2006", raw.Date, now.Location()); err == nil {
			day = parsed
		}
	}

	var hour, minute int
	parsedTime := false
	if raw.Time != "" {
		if parsed, err := time.Parse("15:04", raw.Time); err == nil {
			hour, minute = parsed.Hour(), parsed.Minute()
			parsedTime = true
		}
	}
	if !parsedTime {
		next := nextFullHour(now)
		if raw.Date == "" {
			day = next // midnight rollover moves the default to tomorrow
		}
		hour, minute = next.Hour(), 0
	}

	interval := raw.RepeatInterval
	if interval < 1 {
		interval = 1
	}

	return &ReminderDraft{
		Description:    strings.TrimSpace(raw.Description),
		RemindAt:       time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()),
		RepeatType:     raw.RepeatType,
		RepeatInterval: interval,
	}
}

func nextFullHour(now time.Time) time.Time {
	t := now.Add(time.Hour)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
