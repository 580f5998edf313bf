package care

import (
	"context"
	"errors"
	"testing"
	"time"

	"planter-care/internal/domain/plants"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testPlantRepo struct {
	byID map[string]plants.Plant
}

func newTestPlantRepo() *testPlantRepo {
	return &testPlantRepo{byID: map[string]plants.Plant{}}
}

func (r *testPlantRepo) Create(ctx context.Context, p plants.Plant) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testPlantRepo) Update(ctx context.Context, p plants.Plant) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testPlantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testPlantRepo) GetByID(ctx context.Context, id string) (plants.Plant, error) {
	p, ok := r.byID[id]
	if !ok {
		return plants.Plant{}, errRepoNotFound
	}
	return p, nil
}

func (r *testPlantRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]plants.Plant, error) {
	out := make([]plants.Plant, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testPlantRepo) ListOwners(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range r.byID {
		if _, ok := seen[p.OwnerUserID]; ok {
			continue
		}
		seen[p.OwnerUserID] = struct{}{}
		out = append(out, p.OwnerUserID)
	}
	return out, nil
}

type testLogRepo struct {
	entries []LogEntry
}

func newTestLogRepo() *testLogRepo {
	return &testLogRepo{}
}

func (r *testLogRepo) Create(ctx context.Context, e LogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testLogRepo) GetByID(ctx context.Context, id string) (LogEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return LogEntry{}, errRepoNotFound
}

func (r *testLogRepo) ListByPlant(ctx context.Context, plantID string, filter ListFilter) ([]LogEntry, error) {
	out := make([]LogEntry, 0)
	for _, e := range r.entries {
		if e.PlantID == plantID {
			out = append(out, e)
		}
	}
	return out, nil
}

// -------------------------
// Helpers
// -------------------------

func newTestService(t *testing.T, now time.Time) (*Service, *testPlantRepo, *testLogRepo) {
	t.Helper()
	plantRepo := newTestPlantRepo()
	logRepo := newTestLogRepo()
	svc := NewService(plantRepo, logRepo, DefaultWindows(), time.UTC)
	svc.now = func() time.Time { return now }
	return svc, plantRepo, logRepo
}

func seedPlant(repo *testPlantRepo, id string, acquired time.Time) {
	repo.byID[id] = plants.Plant{
		ID:          id,
		OwnerUserID: "owner-1",
		AcquiredAt:  acquired,
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
		Health: plants.HealthGood,
	}
}

// -------------------------
// Tests
// -------------------------

func TestLogCare_Watering_UpdatesLastWateredAndSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, logRepo := newTestService(t, now)

	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-1", acquired)

	performed := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	entry, updated, err := svc.LogCare(context.Background(), "plant-1", LogInput{
		Activity:    ActivityWatering,
		PerformedAt: performed,
		Notes:       "  suelo seco  ",
	})
	if err != nil {
		t.Fatalf("LogCare returned error: %v", err)
	}

	if updated.LastWateredAt == nil || !updated.LastWateredAt.Equal(performed) {
		t.Fatalf("expected LastWateredAt=%v, got %v", performed, updated.LastWateredAt)
	}
	if entry.Notes != "suelo seco" {
		t.Fatalf("expected trimmed notes, got %q", entry.Notes)
	}
	if entry.RecordedAt != now {
		t.Fatalf("expected RecordedAt=now")
	}

	// snapshot del próximo vencimiento: 7 días civiles desde el riego
	wantNext := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if entry.NextScheduledAt == nil || !entry.NextScheduledAt.Equal(wantNext) {
		t.Fatalf("expected NextScheduledAt=%v, got %v", wantNext, entry.NextScheduledAt)
	}

	if len(logRepo.entries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(logRepo.entries))
	}
}

func TestLogCare_RejectsFutureAndPreAcquisition(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, _ := newTestService(t, now)

	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-1", acquired)

	// futuro
	_, _, err := svc.LogCare(context.Background(), "plant-1", LogInput{
		Activity:    ActivityWatering,
		PerformedAt: now.Add(time.Hour),
	})
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp for future log, got %v", err)
	}

	// antes de la adquisición
	_, _, err = svc.LogCare(context.Background(), "plant-1", LogInput{
		Activity:    ActivityWatering,
		PerformedAt: acquired.Add(-time.Hour),
	})
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp for pre-acquisition log, got %v", err)
	}
}

func TestLogCare_DuplicateIsIdempotentOnPlantState(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, logRepo := newTestService(t, now)

	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-1", acquired)

	performed := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)
	in := LogInput{Activity: ActivityWatering, PerformedAt: performed}

	_, first, err := svc.LogCare(context.Background(), "plant-1", in)
	if err != nil {
		t.Fatalf("LogCare #1 error: %v", err)
	}
	_, second, err := svc.LogCare(context.Background(), "plant-1", in)
	if err != nil {
		t.Fatalf("LogCare #2 error: %v", err)
	}

	// el historial crece (append-only), pero el estado derivado no cambia
	if len(logRepo.entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(logRepo.entries))
	}
	if !second.LastWateredAt.Equal(*first.LastWateredAt) {
		t.Fatalf("duplicate changed LastWateredAt: %v vs %v", first.LastWateredAt, second.LastWateredAt)
	}
	if second.Health != first.Health {
		t.Fatalf("duplicate changed health: %s vs %s", first.Health, second.Health)
	}
}

func TestLogCare_BackfillIsCommutative(t *testing.T) {
	// Registrar T1 (viejo) y T2 (reciente) en cualquier orden deja
	// LastWateredAt = T2.
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t1 := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)

	run := func(order []time.Time) *time.Time {
		svc, plantRepo, _ := newTestService(t, now)
		seedPlant(plantRepo, "plant-1", acquired)

		for _, ts := range order {
			if _, _, err := svc.LogCare(context.Background(), "plant-1", LogInput{
				Activity:    ActivityWatering,
				PerformedAt: ts,
			}); err != nil {
				t.Fatalf("LogCare(%v) error: %v", ts, err)
			}
		}
		p, _ := plantRepo.GetByID(context.Background(), "plant-1")
		return p.LastWateredAt
	}

	forward := run([]time.Time{t1, t2})
	backward := run([]time.Time{t2, t1})

	if forward == nil || backward == nil {
		t.Fatal("expected LastWateredAt set in both runs")
	}
	if !forward.Equal(t2) || !backward.Equal(t2) {
		t.Fatalf("expected LastWateredAt=%v both ways, got %v / %v", t2, forward, backward)
	}
}

func TestLogCare_NonScheduledActivityDoesNotTouchLastDates(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, _ := newTestService(t, now)

	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-1", acquired)

	entry, updated, err := svc.LogCare(context.Background(), "plant-1", LogInput{
		Activity:    ActivityPruning,
		PerformedAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("LogCare error: %v", err)
	}
	if updated.LastWateredAt != nil || updated.LastFertilizedAt != nil {
		t.Fatalf("pruning must not touch last care dates")
	}
	if entry.NextScheduledAt != nil {
		t.Fatalf("pruning must not produce a schedule snapshot")
	}
}

func TestLogCare_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, _ := newTestService(t, now)
	seedPlant(plantRepo, "plant-1", now.AddDate(0, 0, -5))

	cases := map[string]LogInput{
		"unknown activity": {Activity: "sing_to_it", PerformedAt: now},
		"zero time":        {Activity: ActivityWatering},
	}
	for name, in := range cases {
		if _, _, err := svc.LogCare(context.Background(), "plant-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestHealth_OnDemandDoesNotPersist(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, _ := newTestService(t, now)

	acquired := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-1", acquired)

	// nunca regada, semanal: muy vencida al consultar
	h, err := svc.Health(context.Background(), "plant-1", now, time.UTC)
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if h != plants.HealthGood {
		t.Fatalf("expected good (excellent - 1 overdue), got %s", h)
	}

	stored, _ := plantRepo.GetByID(context.Background(), "plant-1")
	if stored.Health != plants.HealthGood {
		t.Fatalf("on-demand health must not change stored value, got %s", stored.Health)
	}
}

func TestReminders_SortedForOwner(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc, plantRepo, _ := newTestService(t, now)

	acquired := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	seedPlant(plantRepo, "plant-a", acquired) // nunca regada: overdue enorme
	plantRepo.byID["plant-b"] = plants.Plant{
		ID:            "plant-b",
		OwnerUserID:   "owner-1",
		AcquiredAt:    acquired,
		LastWateredAt: timePtr(now.AddDate(0, 0, -6)),
		WateringReminder: plants.ReminderConfig{
			Enabled:   true,
			Frequency: plants.FrequencyWeekly,
		},
	}

	out, err := svc.Reminders(context.Background(), "owner-1", now, time.UTC)
	if err != nil {
		t.Fatalf("Reminders error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(out))
	}
	if out[0].PlantID != "plant-a" || out[0].Status != DueOverdue {
		t.Fatalf("expected plant-a overdue first, got %+v", out[0])
	}
	if out[1].PlantID != "plant-b" || out[1].Status != DueUpcoming {
		t.Fatalf("expected plant-b upcoming second, got %+v", out[1])
	}
}
