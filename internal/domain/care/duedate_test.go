package care

import (
	"errors"
	"testing"
	"time"

	"planter-care/internal/domain/plants"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestNextDue_AnchorsOnLastDone(t *testing.T) {
	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	cfg := plants.ReminderConfig{Enabled: true, Frequency: plants.FrequencyWeekly}

	due, err := NextDue(timePtr(last), acquired, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestNextDue_NeverDone_AnchorsOnAcquisition(t *testing.T) {
	acquired := time.Date(2026, 3, 1, 23, 45, 0, 0, time.UTC)
	cfg := plants.ReminderConfig{Enabled: true, Frequency: plants.FrequencyEvery3Days}

	due, err := NextDue(nil, acquired, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestNextDue_DisabledOrAsNeeded_NoDue(t *testing.T) {
	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for name, cfg := range map[string]plants.ReminderConfig{
		"disabled":  {Enabled: false, Frequency: plants.FrequencyDaily},
		"as_needed": {Enabled: true, Frequency: plants.FrequencyAsNeeded},
		"zero":      {},
	} {
		due, err := NextDue(nil, acquired, cfg, time.UTC)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if due != nil {
			t.Fatalf("%s: expected nil due, got %v", name, due)
		}
	}
}

func TestNextDue_InvalidConfig(t *testing.T) {
	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := plants.ReminderConfig{Enabled: true, Frequency: plants.FrequencyCustom, IntervalDays: 0}

	_, err := NextDue(nil, acquired, cfg, time.UTC)
	if !errors.Is(err, plants.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNextDue_DayOfWeek_AdvancesForwardOnly(t *testing.T) {
	// ancla lunes 2026-03-09, weekly => naive lunes 16; con DayOfWeek=5
	// (viernes) avanza al viernes 20, nunca retrocede al 13.
	last := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	cfg := plants.ReminderConfig{
		Enabled:   true,
		Frequency: plants.FrequencyWeekly,
		DayOfWeek: intPtr(5),
	}

	due, err := NextDue(timePtr(last), last, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
	if due.Weekday() != time.Friday {
		t.Fatalf("expected Friday, got %v", due.Weekday())
	}
}

func TestNextDue_DayOfWeek_KeepsMatchingDay(t *testing.T) {
	// naive cae justo en el día pedido: no avanza de más.
	last := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC) // lunes
	cfg := plants.ReminderConfig{
		Enabled:   true,
		Frequency: plants.FrequencyWeekly,
		DayOfWeek: intPtr(1), // lunes
	}

	due, err := NextDue(timePtr(last), last, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestNextDue_TimeOfDay(t *testing.T) {
	last := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	cfg := plants.ReminderConfig{
		Enabled:   true,
		Frequency: plants.FrequencyEvery2Days,
		TimeOfDay: "09:30",
	}

	due, err := NextDue(timePtr(last), last, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC)
	if due == nil || !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestNextDue_CivilDays_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// El 8 de marzo de 2026 hay salto de horario de verano en NY. Regada el
	// 6, cada 3 días vence el 9 a medianoche local: la suma es de días
	// civiles, no de 72 horas exactas.
	last := time.Date(2026, 3, 6, 10, 0, 0, 0, loc)
	cfg := plants.ReminderConfig{Enabled: true, Frequency: plants.FrequencyEvery3Days}

	due, err := NextDue(timePtr(last), last, cfg, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due == nil {
		t.Fatal("expected due date")
	}
	y, m, d := due.Date()
	if y != 2026 || m != time.March || d != 9 {
		t.Fatalf("expected civil date 2026-03-09, got %v", due)
	}
	if due.Hour() != 0 || due.Minute() != 0 {
		t.Fatalf("expected local midnight, got %v", due)
	}
}

func TestNextDue_BackfillNeverMovesDueBackward(t *testing.T) {
	// El max monotónico vive en el procesador de logs, pero NextDue con el
	// último riego más reciente siempre da un vencimiento >= que con uno
	// más viejo: misma dirección de monotonía.
	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := plants.ReminderConfig{Enabled: true, Frequency: plants.FrequencyWeekly}

	older := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)

	dueOlder, err := NextDue(timePtr(older), acquired, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dueNewer, err := NextDue(timePtr(newer), acquired, cfg, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dueNewer.Before(*dueOlder) {
		t.Fatalf("due moved backward: %v < %v", dueNewer, dueOlder)
	}
}
