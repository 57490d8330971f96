package ai

import (
	"testing"
	"time"
)

func TestIsReminderRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want bool
	}{
		{"remind me to give the medicine at 13:00", true},
		{"set a reminder for the checkup", true},
		{"notify me every day at 9:00", true},
		{"weekly vitamin D please", true},
		{"the baby ate 120 ml", false},
		{"what was yesterday's weight?", false},
	}

	for _, testCase := range cases {
		if got := isReminderRequest(testCase.text); got != testCase.want {
			t.Fatalf("isReminderRequest(%q) = %v, want %v", testCase.text, got, testCase.want)
		}
	}
}

func TestExtractDraftToleratesWrappedJSON(t *testing.T) {
	t.Parallel()

	content := "Sure! Here is the result:\n{\"description\": \"give the medicine\", \"time\": \"13:00\", \"date\": \"\", \"repeat_type\": \"once\", \"repeat_interval\": 1, \"is_reminder\": true}\nLet me know."
	draft, err := extractDraft(content)
	if err != nil {
		t.Fatalf("extractDraft returned error: %v", err)
	}
	if draft.Description != "give the medicine" || draft.Time != "13:00" || !draft.IsReminder {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestExtractDraftRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := extractDraft("not json at all"); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
}

func TestNormalizeDraft(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  rawDraft
		want time.Time
	}{
		{
			name: "explicit date and time",
			raw:  rawDraft{Time: "13:00", Date: "12.03.2024"},
			want: time.Date(2024, 3, 12, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "time only defaults to today",
			raw:  rawDraft{Time: "13:00"},
			want: time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "no time defaults to next full hour",
			raw:  rawDraft{},
			want: time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC),
		},
		{
			name: "date only gets next full hour",
			raw:  rawDraft{Date: "12.03.2024"},
			want: time.Date(2024, 3, 12, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			draft := normalizeDraft(&testCase.raw, now)
			if !draft.RemindAt.Equal(testCase.want) {
				t.Fatalf("expected remind_at %s, got %s", testCase.want, draft.RemindAt)
			}
		})
	}
}

func TestNormalizeDraftRollsOverMidnight(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	draft := normalizeDraft(&rawDraft{}, now)

	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !draft.RemindAt.Equal(want) {
		t.Fatalf("expected remind_at %s, got %s", want, draft.RemindAt)
	}
}

func TestNormalizeDraftClampsInterval(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	draft := normalizeDraft(&rawDraft{RepeatType: "daily", RepeatInterval: 0, Time: "09:00"}, now)
	if draft.RepeatInterval != 1 {
		t.Fatalf("expected interval clamped to 1, got %d", draft.RepeatInterval)
	}
}
