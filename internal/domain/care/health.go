package care

import (
	"time"

	"planter-care/internal/domain/plants"
)

// EvaluateHealth deriva el estado de salud de una planta a partir de la
// recencia y regularidad de sus cuidados. Es una función total y
// determinista: siempre produce un estado, nunca falla, y se recalcula
// completa en vez de parchar el valor guardado (no hay drift posible entre
// el estado almacenado y sus insumos derivables).
//
// Reglas:
//   - arranca en excellent y baja un nivel por cada recordatorio activo
//     vencido (overdue), con tope en critical;
//   - baja un nivel extra si la inspección o tratamiento más reciente dentro
//     de la ventana del intervalo resuelto más largo trae ProblemObserved;
//   - sin recordatorios habilitados y sin historial: good (falta de
//     información no se lee como falla).
func EvaluateHealth(p plants.Plant, history []LogEntry, now time.Time, loc *time.Location, w Windows) plants.HealthStatus {
	if !p.WateringReminder.Enabled && !p.FertilizingReminder.Enabled && len(history) == 0 {
		return plants.HealthGood
	}

	overdue := 0
	maxInterval := 0

	consider := func(last *time.Time, cfg plants.ReminderConfig) {
		if !cfg.Enabled {
			return
		}
		if interval, ok, err := ResolveIntervalDays(cfg.Frequency, cfg.IntervalDays); err == nil && ok && interval > maxInterval {
			maxInterval = interval
		}
		due, err := NextDue(last, p.AcquiredAt, cfg, loc)
		if err != nil || due == nil {
			// config inválido o as_needed: no cuenta como vencido
			return
		}
		if status, _, ok := Classify(*due, now, w); ok && status == DueOverdue {
			overdue++
		}
	}

	consider(p.LastWateredAt, p.WateringReminder)
	consider(p.LastFertilizedAt, p.FertilizingReminder)

	status := plants.HealthExcellent
	for i := 0; i < overdue; i++ {
		status = status.Degrade()
	}

	if maxInterval > 0 {
		if e, ok := latestSignalEntry(history, now, maxInterval); ok && e.ProblemObserved {
			status = status.Degrade()
		}
	}

	return status
}

// latestSignalEntry busca la inspección o tratamiento más reciente dentro de
// los últimos windowDays días.
func latestSignalEntry(history []LogEntry, now time.Time, windowDays int) (LogEntry, bool) {
	windowStart := now.AddDate(0, 0, -windowDays)

	var latest LogEntry
	found := false

	for _, e := range history {
		switch e.Activity {
		case ActivityInspection, ActivityPestTreatment, ActivityDiseaseTreatment:
		default:
			continue
		}
		if e.PerformedAt.Before(windowStart) || e.PerformedAt.After(now) {
			continue
		}
		if !found || e.PerformedAt.After(latest.PerformedAt) {
			latest = e
			found = true
		}
	}

	return latest, found
}
