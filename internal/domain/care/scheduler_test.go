package care

import (
	"reflect"
	"testing"
	"time"

	"planter-care/internal/domain/plants"
)

func weeklyPlant(id string, acquired time.Time, lastWatered *time.Time) plants.Plant {
	return plants.Plant{
		ID:            id,
		OwnerUserID:   "owner-1",
		AcquiredAt:    acquired,
		LastWateredAt: lastWatered,
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
		Health: plants.HealthGood,
	}
}

func TestClassify_Windows(t *testing.T) {
	w := DefaultWindows() // lookahead 48h, grace 12h
	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		now      time.Time
		wantOK   bool
		want     DueStatus
		wantDays int
	}{
		{"far before lookahead", due.Add(-72 * time.Hour), false, "", 0},
		{"inside lookahead", due.Add(-14 * time.Hour), true, DueUpcoming, 0},
		{"exactly due", due, true, DueDue, 0},
		{"inside grace", due.Add(11 * time.Hour), true, DueDue, 0},
		{"past grace same day", due.Add(13 * time.Hour), true, DueOverdue, 0},
		{"one day late", due.Add(34 * time.Hour), true, DueOverdue, 1},
		{"three days late", due.Add(3*24*time.Hour + time.Hour), true, DueOverdue, 3},
	}

	for _, tc := range cases {
		status, days, ok := Classify(due, tc.now, w)
		if ok != tc.wantOK {
			t.Fatalf("%s: expected ok=%v, got %v", tc.name, tc.wantOK, ok)
		}
		if status != tc.want {
			t.Fatalf("%s: expected status %q, got %q", tc.name, tc.want, status)
		}
		if days != tc.wantDays {
			t.Fatalf("%s: expected daysOverdue=%d, got %d", tc.name, tc.wantDays, days)
		}
	}
}

func TestDueStates_WeeklyWateredEightDaysAgo_Overdue(t *testing.T) {
	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	p := weeklyPlant("plant-1", last.AddDate(0, 0, -5), timePtr(last))

	states := DueStates(p, now, time.UTC, DefaultWindows())
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	st := states[0]
	if st.Activity != ActivityWatering {
		t.Fatalf("expected watering, got %s", st.Activity)
	}
	if st.Status != DueOverdue {
		t.Fatalf("expected overdue, got %s", st.Status)
	}
	if st.DaysOverdue != 1 {
		t.Fatalf("expected 1 day overdue, got %d", st.DaysOverdue)
	}
}

func TestDueStates_DueTomorrow_Upcoming(t *testing.T) {
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyEvery3Days,
		},
	}
	// vence el 8 a medianoche; consultado el 7 => upcoming
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	states := DueStates(p, now, time.UTC, DefaultWindows())
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if states[0].Status != DueUpcoming {
		t.Fatalf("expected upcoming, got %s", states[0].Status)
	}
}

func TestDueStates_InvalidConfigProducesNoReminder(t *testing.T) {
	p := plants.Plant{
		ID:         "plant-1",
		AcquiredAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyCustom, // sin IntervalDays
		},
	}
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	states := DueStates(p, now, time.UTC, DefaultWindows())
	if len(states) != 0 {
		t.Fatalf("expected no states for invalid config, got %d", len(states))
	}
}

func TestDueStates_AsNeeded_NoReminder(t *testing.T) {
	p := plants.Plant{
		ID:         "plant-1",
		AcquiredAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyAsNeeded,
		},
	}
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	if states := DueStates(p, now, time.UTC, DefaultWindows()); len(states) != 0 {
		t.Fatalf("expected no states for as_needed, got %d", len(states))
	}
}

func TestListReminders_OrderByUrgency(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	acquired := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// overdue (regada hace 8 días), due (vence hoy), upcoming (vence mañana)
	overduePlant := weeklyPlant("plant-overdue", acquired, timePtr(now.AddDate(0, 0, -8)))
	duePlant := weeklyPlant("plant-due", acquired, timePtr(now.AddDate(0, 0, -7).Add(-10*time.Hour)))
	upcomingPlant := weeklyPlant("plant-upcoming", acquired, timePtr(now.AddDate(0, 0, -6)))

	out := ListReminders([]plants.Plant{upcomingPlant, duePlant, overduePlant}, now, time.UTC, DefaultWindows())
	if len(out) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(out))
	}

	if out[0].PlantID != "plant-overdue" || out[0].Status != DueOverdue {
		t.Fatalf("expected overdue first, got %+v", out[0])
	}
	if out[1].PlantID != "plant-due" || out[1].Status != DueDue {
		t.Fatalf("expected due second, got %+v", out[1])
	}
	if out[2].PlantID != "plant-upcoming" || out[2].Status != DueUpcoming {
		t.Fatalf("expected upcoming last, got %+v", out[2])
	}
}

func TestListReminders_PureAndIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	acquired := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	items := []plants.Plant{
		weeklyPlant("plant-a", acquired, timePtr(now.AddDate(0, 0, -8))),
		weeklyPlant("plant-b", acquired, timePtr(now.AddDate(0, 0, -6))),
	}

	first := ListReminders(items, now, time.UTC, DefaultWindows())
	second := ListReminders(items, now, time.UTC, DefaultWindows())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output on repeat call:\n%+v\n%+v", first, second)
	}
}
