package care

import "planter-care/internal/domain/plants"

// ResolveIntervalDays convierte una frecuencia de recordatorio en un
// intervalo concreto en días. Para as_needed devuelve ok=false: no hay
// vencimiento automático, solo inspección manual del historial.
//
// monthly se aproxima a 30 días fijos a propósito; no hay aritmética de
// mes calendario.
func ResolveIntervalDays(kind plants.FrequencyKind, customDays int) (days int, ok bool, err error) {
	switch kind {
	case plants.FrequencyDaily:
		return 1, true, nil
	case plants.FrequencyEvery2Days:
		return 2, true, nil
	case plants.FrequencyEvery3Days:
		return 3, true, nil
	case plants.FrequencyWeekly:
		return 7, true, nil
	case plants.FrequencyEvery2Wks:
		return 14, true, nil
	case plants.FrequencyMonthly:
		return 30, true, nil
	case plants.FrequencyAsNeeded:
		return 0, false, nil
	case plants.FrequencyCustom:
		if customDays < 1 {
			return 0, false, plants.ErrInvalidConfig
		}
		return customDays, true, nil
	default:
		return 0, false, plants.ErrInvalidConfig
	}
}
