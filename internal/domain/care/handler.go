package care

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"planter-care/internal/domain/caretakers"
	"planter-care/internal/domain/plants"
	"planter-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, plantsSvc *plants.Service, grantsSvc *caretakers.Service) {
	r.Route("/plants/{plantID}/logs", func(lr chi.Router) {
		lr.Post("/", createLogHandler(svc, plantsSvc, grantsSvc))
		lr.Get("/", listLogsHandler(svc, plantsSvc, grantsSvc))
	})

	// Salud derivada a demanda (owner o cuidador con plants:read)
	r.Get("/plants/{plantID}/health", healthHandler(svc, plantsSvc, grantsSvc))

	// Recordatorios del usuario autenticado
	r.Get("/me/reminders", remindersHandler(svc))
}

// createLogRequest es el cuerpo para registrar una actividad de cuidado.
type createLogRequest struct {
	Activity        ActivityType `json:"activity_type" enums:"watering,fertilizing,pruning,repotting,propagation,pest_treatment,disease_treatment,inspection"`
	PerformedAt     string       `json:"performed_at"` // RFC3339
	Notes           string       `json:"notes"`
	ProblemObserved bool         `json:"problem_observed"`
}

// logResponse representa un registro de cuidado devuelto por la API.
type logResponse struct {
	ID              string       `json:"id"`
	PlantID         string       `json:"plant_id"`
	Activity        ActivityType `json:"activity_type"`
	PerformedAt     time.Time    `json:"performed_at"`
	RecordedAt      time.Time    `json:"recorded_at"`
	Notes           string       `json:"notes,omitempty"`
	ProblemObserved bool         `json:"problem_observed"`
	NextScheduledAt *time.Time   `json:"next_scheduled_at,omitempty"`
}

// dueStateResponse representa un recordatorio computado.
type dueStateResponse struct {
	PlantID     string       `json:"plant_id"`
	Activity    ActivityType `json:"activity_type"`
	DueAt       time.Time    `json:"due_at"`
	Status      DueStatus    `json:"status"`
	DaysOverdue int          `json:"days_overdue"`
}

type healthResponse struct {
	PlantID     string              `json:"plant_id"`
	Health      plants.HealthStatus `json:"health"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
}

// createLogHandler godoc
// @Summary Registrar cuidado de una planta
// @Description Registra una actividad de cuidado. El dueño siempre puede; un cuidador necesita grant activo con scope `logs:create`. Rechaza logs futuros o anteriores a la adquisición. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags care
// @Accept json
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Param payload body createLogRequest true "Actividad; performed_at en RFC3339"
// @Success 201 {object} logResponse
// @Failure 400 {string} string "invalid json / performed_at inválido o fuera de rango"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/logs [post]
func createLogHandler(svc *Service, plantsSvc *plants.Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")
		p, err := plantsSvc.GetByID(r.Context(), plantID)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		// Permisos:
		// - Owner: siempre permitido
		// - Cuidador: requiere grant activo con logs:create
		if p.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), plantID, claims.UserID)
			if err != nil || !caretakers.HasScope(g, caretakers.ScopeLogsCreate) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req createLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.PerformedAt)
		if err != nil {
			http.Error(w, "performed_at must be RFC3339", http.StatusBadRequest)
			return
		}

		entry, _, err := svc.LogCare(r.Context(), plantID, LogInput{
			Activity:        req.Activity,
			PerformedAt:     t,
			Notes:           req.Notes,
			ProblemObserved: req.ProblemObserved,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidTimestamp), errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toLogResponse(entry))
	}
}

// listLogsHandler godoc
// @Summary Listar historial de cuidados
// @Description Lista el historial append-only de una planta. El dueño siempre puede; un cuidador necesita scope `logs:read`. Permite filtrar por actividades, rango de fechas y texto.
// @Tags care
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Param limit query int false "Máximo de registros a devolver (1-200). Por defecto 50"
// @Param activities query string false "Lista CSV de actividades (ej: watering,inspection)"
// @Param from query string false "Fecha/hora mínima performed_at (RFC3339)"
// @Param to query string false "Fecha/hora máxima performed_at (RFC3339)"
// @Param q query string false "Texto de búsqueda libre en notas"
// @Success 200 {array} logResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/logs [get]
func listLogsHandler(svc *Service, plantsSvc *plants.Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")
		p, err := plantsSvc.GetByID(r.Context(), plantID)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		if p.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), plantID, claims.UserID)
			if err != nil || !caretakers.HasScope(g, caretakers.ScopeLogsRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListLogs(r.Context(), plantID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toLogResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// healthHandler godoc
// @Summary Estado de salud derivado
// @Description Recalcula el estado de salud de la planta a demanda (no persiste nada). Owner o cuidador con `plants:read`.
// @Tags care
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Param at query string false "Instante de evaluación (RFC3339). Por defecto ahora"
// @Param tz query string false "Zona horaria IANA (ej: America/Santiago)"
// @Success 200 {object} healthResponse
// @Failure 400 {string} string "at/tz inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/health [get]
func healthHandler(svc *Service, plantsSvc *plants.Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")
		p, err := plantsSvc.GetByID(r.Context(), plantID)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		if p.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), plantID, claims.UserID)
			if err != nil || !caretakers.HasScope(g, caretakers.ScopePlantRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		at, loc, err := parseAtAndTZ(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		h, err := svc.Health(r.Context(), plantID, at, loc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		evaluatedAt := at
		if evaluatedAt.IsZero() {
			evaluatedAt = time.Now()
		}
		writeJSON(w, http.StatusOK, healthResponse{
			PlantID:     plantID,
			Health:      h,
			EvaluatedAt: evaluatedAt,
		})
	}
}

// remindersHandler godoc
// @Summary Recordatorios del usuario
// @Description Lista los recordatorios due/overdue/upcoming de todas las plantas del usuario autenticado, ordenados por urgencia. Valor derivado: recomputado en cada llamada.
// @Tags care
// @Produce json
// @Param at query string false "Instante de evaluación (RFC3339). Por defecto ahora"
// @Param tz query string false "Zona horaria IANA (ej: America/Santiago)"
// @Success 200 {array} dueStateResponse
// @Failure 400 {string} string "at/tz inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /me/reminders [get]
func remindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		at, loc, err := parseAtAndTZ(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.Reminders(r.Context(), claims.UserID, at, loc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dueStateResponse, 0, len(items))
		for _, d := range items {
			out = append(out, dueStateResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseAtAndTZ(r *http.Request) (time.Time, *time.Location, error) {
	var at time.Time
	if v := strings.TrimSpace(r.URL.Query().Get("at")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, nil, errors.New("at must be RFC3339")
		}
		at = t
	}

	var loc *time.Location
	if v := strings.TrimSpace(r.URL.Query().Get("tz")); v != "" {
		l, err := time.LoadLocation(v)
		if err != nil {
			return time.Time{}, nil, errors.New("tz must be a valid IANA timezone")
		}
		loc = l
	}

	return at, loc, nil
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// activities=watering,inspection
	if v := strings.TrimSpace(r.URL.Query().Get("activities")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]ActivityType, 0, len(parts))
		for _, p := range parts {
			a := ActivityType(strings.TrimSpace(p))
			if a == "" {
				continue
			}
			out = append(out, a)
		}
		if len(out) > 0 {
			filter.Activities = out
		}
	}

	// from/to RFC3339
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	if v := strings.TrimSpace(r.URL.Query().Get("q")); v != "" {
		filter.Query = v
	}

	return filter, nil
}

func toLogResponse(e LogEntry) logResponse {
	return logResponse{
		ID:              e.ID,
		PlantID:         e.PlantID,
		Activity:        e.Activity,
		PerformedAt:     e.PerformedAt,
		RecordedAt:      e.RecordedAt,
		Notes:           e.Notes,
		ProblemObserved: e.ProblemObserved,
		NextScheduledAt: e.NextScheduledAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
