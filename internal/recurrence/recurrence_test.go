package recurrence

import (
	"testing"
	"time"

	"github.com/example/carebot/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return parsed
}

func TestNext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		base       string
		repeatType models.RepeatType
		interval   int
		want       string
	}{
		{name: "hourly", base: "2024-03-10 22:30", repeatType: models.RepeatHourly, interval: 1, want: "2024-03-10 23:30"},
		{name: "hourly crosses midnight", base: "2024-03-10 23:30", repeatType: models.RepeatHourly, interval: 3, want: "2024-03-11 02:30"},
		{name: "daily", base: "2024-03-10 09:00", repeatType: models.RepeatDaily, interval: 1, want: "2024-03-11 09:00"},
		{name: "daily with interval", base: "2024-03-10 09:00", repeatType: models.RepeatDaily, interval: 3, want: "2024-03-13 09:00"},
		{name: "daily crosses month", base: "2024-02-28 08:15", repeatType: models.RepeatDaily, interval: 2, want: "2024-03-01 08:15"},
		{name: "weekly", base: "2024-03-10 09:00", repeatType: models.RepeatWeekly, interval: 1, want: "2024-03-17 09:00"},
		{name: "weekly with interval", base: "2024-03-10 09:00", repeatType: models.RepeatWeekly, interval: 2, want: "2024-03-24 09:00"},
		{name: "monthly", base: "2024-03-15 13:00", repeatType: models.RepeatMonthly, interval: 1, want: "2024-04-15 13:00"},
		{name: "monthly year carry", base: "2024-11-15 13:00", repeatType: models.RepeatMonthly, interval: 3, want: "2025-02-15 13:00"},
		{name: "monthly december to january", base: "2024-12-05 07:45", repeatType: models.RepeatMonthly, interval: 1, want: "2025-01-05 07:45"},
		{name: "monthly clamps to leap february", base: "2024-01-31 09:00", repeatType: models.RepeatMonthly, interval: 1, want: "2024-02-29 09:00"},
		{name: "monthly clamps to short february", base: "2023-01-31 09:00", repeatType: models.RepeatMonthly, interval: 1, want: "2023-02-28 09:00"},
		{name: "monthly clamps to 30 day month", base: "2024-03-31 09:00", repeatType: models.RepeatMonthly, interval: 1, want: "2024-04-30 09:00"},
		{name: "interval below one treated as one", base: "2024-03-10 09:00", repeatType: models.RepeatDaily, interval: 0, want: "2024-03-11 09:00"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			base := mustTime(t, testCase.base)
			got, err := Next(base, testCase.repeatType, testCase.interval)
			if err != nil {
				t.Fatalf("Next returned error: %v", err)
			}
			if want := mustTime(t, testCase.want); !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestNextRejectsOnce(t *testing.T) {
	t.Parallel()

	if _, err := Next(mustTime(t, "2024-03-10 09:00"), models.RepeatOnce, 1); err == nil {
		t.Fatal("expected error for once repeat type")
	}
}

func TestNextRejectsUnknownType(t *testing.T) {
	t.Parallel()

	if _, err := Next(mustTime(t, "2024-03-10 09:00"), models.RepeatType("yearly"), 1); err == nil {
		t.Fatal("expected error for unknown repeat type")
	}
}

// Next must be strictly increasing and deterministic for every repeating
// type, interval and base, independent of wall-clock time.
func TestNextStrictlyAfterAndDeterministic(t *testing.T) {
	t.Parallel()

	repeatTypes := []models.RepeatType{
		models.RepeatHourly,
		models.RepeatDaily,
		models.RepeatWeekly,
		models.RepeatMonthly,
	}
	bases := []string{
		"2023-01-01 00:00",
		"2023-02-28 23:59",
		"2024-01-31 09:00",
		"2024-02-29 12:00",
		"2024-06-15 18:30",
		"2024-12-31 23:00",
	}

	for _, repeatType := range repeatTypes {
		for _, baseStr := range bases {
			for interval := 1; interval <= 13; interval++ {
				base := mustTime(t, baseStr)

				first, err := Next(base, repeatType, interval)
				if err != nil {
					t.Fatalf("Next(%s, %s, %d) returned error: %v", baseStr, repeatType, interval, err)
				}
				if !first.After(base) {
					t.Fatalf("Next(%s, %s, %d) = %s is not after base", baseStr, repeatType, interval, first)
				}

				second, err := Next(base, repeatType, interval)
				if err != nil {
					t.Fatalf("Next(%s, %s, %d) returned error on repeat call: %v", baseStr, repeatType, interval, err)
				}
				if !first.Equal(second) {
					t.Fatalf("Next(%s, %s, %d) not deterministic: %s vs %s", baseStr, repeatType, interval, first, second)
				}
			}
		}
	}
}

func TestNextAfter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		base       string
		ref        string
		repeatType models.RepeatType
		interval   int
		want       string
	}{
		{
			name: "future base unchanged",
			base: "2024-03-12 09:00", ref: "2024-03-10 10:00",
			repeatType: models.RepeatDaily, interval: 1,
			want: "2024-03-12 09:00",
		},
		{
			name: "past daily advances to tomorrow",
			base: "2024-03-10 09:00", ref: "2024-03-10 10:00",
			repeatType: models.RepeatDaily, interval: 1,
			want: "2024-03-11 09:00",
		},
		{
			name: "long outage keeps phase",
			base: "2024-03-01 09:00", ref: "2024-03-10 10:00",
			repeatType: models.RepeatDaily, interval: 3,
			want: "2024-03-13 09:00",
		},
		{
			name: "base equal to ref advances",
			base: "2024-03-10 09:00", ref: "2024-03-10 09:00",
			repeatType: models.RepeatHourly, interval: 2,
			want: "2024-03-10 11:00",
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextAfter(mustTime(t, testCase.base), mustTime(t, testCase.ref), testCase.repeatType, testCase.interval)
			if err != nil {
				t.Fatalf("NextAfter returned error: %v", err)
			}
			if want := mustTime(t, testCase.want); !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}
