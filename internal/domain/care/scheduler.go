package care

import (
	"sort"
	"time"

	"planter-care/internal/domain/plants"
)

// Classify ubica un vencimiento respecto de now:
//
//	now < dueAt - lookahead            => excluido (ok=false)
//	dueAt - lookahead <= now < dueAt   => upcoming
//	dueAt <= now < dueAt + grace       => due
//	now >= dueAt + grace               => overdue, daysOverdue = floor((now-dueAt)/24h)
func Classify(dueAt, now time.Time, w Windows) (status DueStatus, daysOverdue int, ok bool) {
	switch {
	case now.Before(dueAt.Add(-w.Lookahead)):
		return "", 0, false
	case now.Before(dueAt):
		return DueUpcoming, 0, true
	case now.Before(dueAt.Add(w.Grace)):
		return DueDue, 0, true
	default:
		return DueOverdue, int(now.Sub(dueAt) / (24 * time.Hour)), true
	}
}

// DueStates computa los DueState de una planta para sus actividades con
// recordatorio. Un config inválido no produce recordatorio (no es tarea del
// scheduler fallar por una planta mal configurada).
func DueStates(p plants.Plant, now time.Time, loc *time.Location, w Windows) []DueState {
	out := make([]DueState, 0, 2)

	add := func(activity ActivityType, last *time.Time, cfg plants.ReminderConfig) {
		due, err := NextDue(last, p.AcquiredAt, cfg, loc)
		if err != nil || due == nil {
			return
		}
		status, days, ok := Classify(*due, now, w)
		if !ok {
			return
		}
		out = append(out, DueState{
			PlantID:     p.ID,
			Activity:    activity,
			DueAt:       *due,
			Status:      status,
			DaysOverdue: days,
		})
	}

	add(ActivityWatering, p.LastWateredAt, p.WateringReminder)
	add(ActivityFertilizing, p.LastFertilizedAt, p.FertilizingReminder)

	return out
}

// ListReminders produce la lista ordenada de recordatorios para el conjunto
// de plantas de un usuario. Es pura e idempotente: mismos inputs, misma
// salida, sin estado oculto que avance por listar.
//
// Orden: overdue primero (el más vencido antes), luego due, luego upcoming
// (el más próximo antes); empates por ID de planta y actividad para que la
// salida sea determinista.
func ListReminders(items []plants.Plant, now time.Time, loc *time.Location, w Windows) []DueState {
	out := make([]DueState, 0, len(items)*2)
	for _, p := range items {
		out = append(out, DueStates(p, now, loc, w)...)
	}

	sort.Slice(out, func(i, j int) bool {
		ri, rj := statusRank(out[i].Status), statusRank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		if out[i].PlantID != out[j].PlantID {
			return out[i].PlantID < out[j].PlantID
		}
		return out[i].Activity < out[j].Activity
	})

	return out
}

func statusRank(s DueStatus) int {
	switch s {
	case DueOverdue:
		return 0
	case DueDue:
		return 1
	default:
		return 2
	}
}
