package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planter-care/internal/platform/httpclient"
	"planter-care/internal/ports/notify"
)

var (
	ErrNotConfigured = errors.New("webhook dispatcher not configured")
	ErrUpstream      = errors.New("webhook upstream error")
)

// Config del canal webhook.
type Config struct {
	URL    string
	APIKey string

	// Opcional: header de la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Dispatcher implementa notify.Dispatcher posteando lotes de
// recordatorios como JSON a una URL configurada.
type Dispatcher struct {
	url          string
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewDispatcher(cfg Config) *Dispatcher {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Dispatcher{
		url:          strings.TrimSpace(cfg.URL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         httpclient.New(timeout),
	}
}

func (d *Dispatcher) IsConfigured() bool {
	return d != nil && d.url != ""
}

type reminderPayload struct {
	UserID      string    `json:"user_id"`
	PlantID     string    `json:"plant_id"`
	Nickname    string    `json:"nickname,omitempty"`
	Activity    string    `json:"activity"`
	DueAt       time.Time `json:"due_at"`
	Status      string    `json:"status"`
	DaysOverdue int       `json:"days_overdue,omitempty"`
}

type dispatchRequest struct {
	SentAt    time.Time         `json:"sent_at"`
	Reminders []reminderPayload `json:"reminders"`
}

// Dispatch postea el lote completo en un solo request.
// El receptor debe deduplicar: el loop de despacho reenvía lo aún vencido.
func (d *Dispatcher) Dispatch(ctx context.Context, reminders []notify.Reminder) error {
	if !d.IsConfigured() {
		return ErrNotConfigured
	}
	if len(reminders) == 0 {
		return nil
	}

	payload := dispatchRequest{
		SentAt:    time.Now().UTC(),
		Reminders: make([]reminderPayload, 0, len(reminders)),
	}
	for _, r := range reminders {
		payload.Reminders = append(payload.Reminders, reminderPayload{
			UserID:      r.UserID,
			PlantID:     r.PlantID,
			Nickname:    r.Nickname,
			Activity:    r.Activity,
			DueAt:       r.DueAt,
			Status:      r.Status,
			DaysOverdue: r.DaysOverdue,
		})
	}

	headers := map[string]string{}
	if d.apiKey != "" {
		headers[d.apiKeyHeader] = d.apiKey
	}

	if err := d.http.DoJSON(ctx, "POST", d.url, headers, payload, nil); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
