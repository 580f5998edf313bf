package care

import (
	"time"

	"planter-care/internal/domain/plants"
)

// NextDue calcula el próximo vencimiento de una actividad.
//
// El ancla es lastDoneAt, o acquiredAt si la planta nunca recibió la
// actividad (una planta nunca regada vence a partir de su adquisición).
// La suma del intervalo es aritmética de días de calendario civil en la
// zona horaria dada, no de segundos transcurridos: así un cambio de
// horario de verano no corre el vencimiento.
//
// Devuelve nil sin error si el config está deshabilitado o es as_needed.
func NextDue(lastDoneAt *time.Time, acquiredAt time.Time, cfg plants.ReminderConfig, loc *time.Location) (*time.Time, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}

	interval, ok, err := ResolveIntervalDays(cfg.Frequency, cfg.IntervalDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	anchor := acquiredAt
	if lastDoneAt != nil {
		anchor = *lastDoneAt
	}

	y, m, d := anchor.In(loc).Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, interval)

	// Si hay día de semana configurado, se avanza (nunca retrocede) hasta
	// la próxima ocurrencia de ese día en o después de la fecha naive.
	if cfg.DayOfWeek != nil {
		want := time.Weekday(*cfg.DayOfWeek)
		for due.Weekday() != want {
			due = due.AddDate(0, 0, 1)
		}
	}

	if cfg.TimeOfDay != "" {
		// Validate ya garantizó el formato HH:MM.
		t, _ := time.Parse("15:04", cfg.TimeOfDay)
		due = time.Date(due.Year(), due.Month(), due.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}

	return &due, nil
}
