package plants

import (
	"errors"
	"time"
)

// ErrInvalidConfig indica un ReminderConfig malformado (intervalo, día de
// semana u hora inválidos). Es parte de la taxonomía de errores del motor.
var ErrInvalidConfig = errors.New("invalid reminder config")

// FrequencyKind define las frecuencias de recordatorio soportadas.
// @Enum daily, every_2_days, every_3_days, weekly, every_2_weeks, monthly, as_needed, custom
type FrequencyKind string

const (
	FrequencyDaily      FrequencyKind = "daily"
	FrequencyEvery2Days FrequencyKind = "every_2_days"
	FrequencyEvery3Days FrequencyKind = "every_3_days"
	FrequencyWeekly     FrequencyKind = "weekly"
	FrequencyEvery2Wks  FrequencyKind = "every_2_weeks"
	FrequencyMonthly    FrequencyKind = "monthly"
	FrequencyAsNeeded   FrequencyKind = "as_needed"
	FrequencyCustom     FrequencyKind = "custom"
)

// NotificationMethod define cómo quiere el usuario recibir el recordatorio.
// El motor nunca entrega notificaciones; esto viaja al dispatcher externo.
type NotificationMethod string

const (
	NotifyInApp NotificationMethod = "in_app"
	NotifyEmail NotificationMethod = "email"
	NotifyPush  NotificationMethod = "push"
	NotifySMS   NotificationMethod = "sms"
)

// HealthStatus define el estado de salud derivado de una planta.
// @Enum excellent, good, fair, poor, critical
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
	HealthCritical  HealthStatus = "critical"
)

// Degrade baja el estado un nivel, con tope en critical.
func (h HealthStatus) Degrade() HealthStatus {
	switch h {
	case HealthExcellent:
		return HealthGood
	case HealthGood:
		return HealthFair
	case HealthFair:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// ReminderConfig es la configuración de recordatorio para una actividad
// (riego o fertilización) de una planta.
type ReminderConfig struct {
	Enabled      bool
	Frequency    FrequencyKind
	IntervalDays int  // solo para Frequency == custom
	DayOfWeek    *int // 0 (domingo) .. 6 (sábado), opcional
	TimeOfDay    string
	Method       NotificationMethod
}

// Validate aplica los invariantes del config:
// custom exige IntervalDays >= 1, DayOfWeek en [0,6], TimeOfDay en HH:MM 24h.
func (c ReminderConfig) Validate() error {
	switch c.Frequency {
	case FrequencyDaily, FrequencyEvery2Days, FrequencyEvery3Days,
		FrequencyWeekly, FrequencyEvery2Wks, FrequencyMonthly, FrequencyAsNeeded:
	case FrequencyCustom:
		if c.IntervalDays < 1 {
			return ErrInvalidConfig
		}
	case "":
		// config zero-value: válido solo si está deshabilitado
		if c.Enabled {
			return ErrInvalidConfig
		}
	default:
		return ErrInvalidConfig
	}

	if c.DayOfWeek != nil && (*c.DayOfWeek < 0 || *c.DayOfWeek > 6) {
		return ErrInvalidConfig
	}
	if c.TimeOfDay != "" {
		// time.Parse acepta "9:30"; acá se exige HH:MM estricto.
		if len(c.TimeOfDay) != 5 {
			return ErrInvalidConfig
		}
		if _, err := time.Parse("15:04", c.TimeOfDay); err != nil {
			return ErrInvalidConfig
		}
	}
	return nil
}
