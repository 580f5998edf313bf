package notify

import (
	"context"
	"time"
)

// Reminder es el aviso que se entrega a un canal de notificación.
// Es un snapshot: el estado autoritativo siempre se recalcula del dominio.
type Reminder struct {
	UserID      string
	PlantID     string
	Nickname    string
	Activity    string
	DueAt       time.Time
	Status      string // "due" | "overdue"
	DaysOverdue int
}

// Dispatcher entrega recordatorios vencidos o por vencer a un canal
// externo (webhook, push, etc). Debe tolerar reenvíos: el loop de
// despacho no deduplica entre corridas.
type Dispatcher interface {
	Dispatch(ctx context.Context, reminders []Reminder) error
}
