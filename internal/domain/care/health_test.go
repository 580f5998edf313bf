package care

import (
	"testing"
	"time"

	"planter-care/internal/domain/plants"
)

func TestEvaluateHealth_NoSignals_Good(t *testing.T) {
	p := plants.Plant{
		ID:         "plant-1",
		AcquiredAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	got := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows())
	if got != plants.HealthGood {
		t.Fatalf("expected good without signals, got %s", got)
	}
}

func TestEvaluateHealth_AllCurrent_Excellent(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -1)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	got := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows())
	if got != plants.HealthExcellent {
		t.Fatalf("expected excellent with everything current, got %s", got)
	}
}

func TestEvaluateHealth_OneOverdue_DegradesOneLevel(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -10)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	got := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows())
	if got != plants.HealthGood {
		t.Fatalf("expected good with one overdue, got %s", got)
	}
}

func TestEvaluateHealth_BothOverdue_DegradesTwoLevels(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:               "plant-1",
		AcquiredAt:       time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt:    timePtr(now.AddDate(0, 0, -10)),
		LastFertilizedAt: timePtr(now.AddDate(0, 0, -40)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
		FertilizingReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyMonthly,
		},
	}

	got := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows())
	if got != plants.HealthFair {
		t.Fatalf("expected fair with both overdue, got %s", got)
	}
}

func TestEvaluateHealth_RecentProblemObserved_ExtraDegrade(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -1)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	history := []LogEntry{
		{
			ID:              "log-1",
			PlantID:         "plant-1",
			Activity:        ActivityInspection,
			PerformedAt:     now.AddDate(0, 0, -2),
			ProblemObserved: true,
		},
	}

	got := EvaluateHealth(p, history, now, time.UTC, DefaultWindows())
	if got != plants.HealthGood {
		t.Fatalf("expected good (excellent - problem), got %s", got)
	}
}

func TestEvaluateHealth_ProblemResolvedByNewerInspection(t *testing.T) {
	// la señal es la inspección MÁS reciente: una posterior sin problema
	// anula la anterior con problema.
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -1)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	history := []LogEntry{
		{
			ID:              "log-1",
			Activity:        ActivityInspection,
			PerformedAt:     now.AddDate(0, 0, -3),
			ProblemObserved: true,
		},
		{
			ID:              "log-2",
			Activity:        ActivityInspection,
			PerformedAt:     now.AddDate(0, 0, -1),
			ProblemObserved: false,
		},
	}

	got := EvaluateHealth(p, history, now, time.UTC, DefaultWindows())
	if got != plants.HealthExcellent {
		t.Fatalf("expected excellent after clean re-inspection, got %s", got)
	}
}

func TestEvaluateHealth_OldProblemOutsideWindow_Ignored(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -1)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly, // ventana de señal: 7 días
		},
	}

	history := []LogEntry{
		{
			ID:              "log-1",
			Activity:        ActivityPestTreatment,
			PerformedAt:     now.AddDate(0, 0, -20),
			ProblemObserved: true,
		},
	}

	got := EvaluateHealth(p, history, now, time.UTC, DefaultWindows())
	if got != plants.HealthExcellent {
		t.Fatalf("expected excellent, old problem outside window, got %s", got)
	}
}

func TestEvaluateHealth_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := plants.Plant{
		ID:            "plant-1",
		AcquiredAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		LastWateredAt: timePtr(now.AddDate(0, 0, -10)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	first := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows())
	for i := 0; i < 5; i++ {
		if got := EvaluateHealth(p, nil, now, time.UTC, DefaultWindows()); got != first {
			t.Fatalf("evaluation not deterministic: %s vs %s", first, got)
		}
	}
}
