package handlers

import (
	"testing"
	"time"

	"github.com/example/carebot/internal/models"
)

func TestParseTimeToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "future time stays today",
			value: "13:00",
			want:  time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "past time rolls to tomorrow",
			value: "09:00",
			want:  time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "current minute rolls to tomorrow",
			value: "10:30",
			want:  time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage rejected",
			value:   "13h00",
			wantErr: true,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseTimeToday(testCase.value, now)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeToday returned error: %v", err)
			}
			if !got.Equal(testCase.want) {
				t.Fatalf("expected %s, got %s", testCase.want, got)
			}
		})
	}
}

func TestFormatRepeat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		reminder *models.Reminder
		want     string
	}{
		{
			name:     "once has no suffix",
			reminder: &models.Reminder{RepeatType: models.RepeatOnce, RepeatInterval: 1},
			want:     "",
		},
		{
			name:     "daily interval one",
			reminder: &models.Reminder{RepeatType: models.RepeatDaily, RepeatInterval: 1},
			want:     " (every day)",
		},
		{
			name:     "hourly interval six",
			reminder: &models.Reminder{RepeatType: models.RepeatHourly, RepeatInterval: 6},
			want:     " (every 6 hours)",
		},
		{
			name:     "monthly interval three",
			reminder: &models.Reminder{RepeatType: models.RepeatMonthly, RepeatInterval: 3},
			want:     " (every 3 months)",
		},
	}

	for _, testCase := range cases {
		if got := formatRepeat(testCase.reminder); got != testCase.want {
			t.Fatalf("%s: expected %q, got %q", testCase.name, testCase.want, got)
		}
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		birthDate time.Time
		want      string
	}{
		{
			name:      "newborn counted in days",
			birthDate: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
			want:      "14 days",
		},
		{
			name:      "infant counted in months",
			birthDate: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			want:      "8 months",
		},
		{
			name:      "toddler in years and months",
			birthDate: time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC),
			want:      "2 years 3 months",
		},
		{
			name:      "exact years",
			birthDate: time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC),
			want:      "3 years",
		},
	}

	for _, testCase := range cases {
		if got := formatAge(testCase.birthDate, now); got != testCase.want {
			t.Fatalf("%s: expected %q, got %q", testCase.name, testCase.want, got)
		}
	}
}
