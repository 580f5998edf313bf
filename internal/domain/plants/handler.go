package plants

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"planter-care/internal/domain/caretakers"
	"planter-care/internal/domain/catalog"
	"planter-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, catalogSvc *catalog.Service, grantsSvc *caretakers.Service) {
	r.Route("/plants", func(pr chi.Router) {
		pr.Post("/", createPlantHandler(svc, catalogSvc))
		pr.Get("/", listPlantsHandler(svc))

		// Perfil de la planta (owner o cuidador con plants:read)
		pr.Get("/{plantID}", getPlantHandler(svc, grantsSvc))

		// Actualizar (owner o cuidador con plants:edit)
		pr.Patch("/{plantID}", updatePlantHandler(svc, grantsSvc))

		// Eliminar (solo owner)
		pr.Delete("/{plantID}", deletePlantHandler(svc))
	})

	// Plantas compartidas conmigo (cuidador)
	r.Get("/me/plants", listSharedPlantsHandler(svc, grantsSvc))
}

// reminderConfigDTO es la configuración de recordatorio en la API.
type reminderConfigDTO struct {
	Enabled      bool               `json:"enabled"`
	Frequency    FrequencyKind      `json:"frequency" enums:"daily,every_2_days,every_3_days,weekly,every_2_weeks,monthly,as_needed,custom"`
	IntervalDays int                `json:"interval_days,omitempty"` // solo custom
	DayOfWeek    *int               `json:"day_of_week,omitempty"`   // 0-6 (domingo-sábado)
	TimeOfDay    string             `json:"time_of_day,omitempty"`   // HH:MM 24h
	Method       NotificationMethod `json:"notification_method" enums:"in_app,email,push,sms"`
}

type createPlantRequest struct {
	CatalogID  string `json:"catalog_id"`
	Nickname   string `json:"nickname"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	AcquiredAt string `json:"acquired_at"` // RFC3339, opcional (por defecto ahora)

	WateringReminder    *reminderConfigDTO `json:"watering_reminder"`
	FertilizingReminder *reminderConfigDTO `json:"fertilizing_reminder"`
}

type plantResponse struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	CatalogID   string `json:"catalog_id"`

	Nickname string `json:"nickname,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`

	AcquiredAt       time.Time  `json:"acquired_at"`
	LastWateredAt    *time.Time `json:"last_watered_at,omitempty"`
	LastFertilizedAt *time.Time `json:"last_fertilized_at,omitempty"`

	WateringReminder    reminderConfigDTO `json:"watering_reminder"`
	FertilizingReminder reminderConfigDTO `json:"fertilizing_reminder"`

	Health HealthStatus `json:"health"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updatePlantRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Nickname *string `json:"nickname"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`

	WateringReminder    *reminderConfigDTO `json:"watering_reminder"`
	FertilizingReminder *reminderConfigDTO `json:"fertilizing_reminder"`
}

type sharedPlantResponse struct {
	Plant  plantResponse      `json:"plant"`
	Grant  sharedGrantSummary `json:"grant"`
	Scopes []caretakers.Scope `json:"scopes"` // redundante pero útil para UI
}

type sharedGrantSummary struct {
	ID     string            `json:"id"`
	Status caretakers.Status `json:"status"`
}

// createPlantHandler godoc
// @Summary Registrar una planta
// @Description Crea una planta del usuario autenticado referenciando una especie del catálogo. Valida los ReminderConfig (custom exige interval_days >= 1, day_of_week en [0,6], time_of_day HH:MM).
// @Tags plants
// @Accept json
// @Produce json
// @Param payload body createPlantRequest true "Datos de la planta; acquired_at en RFC3339"
// @Success 201 {object} plantResponse
// @Failure 400 {string} string "invalid json / reminder config inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "catalog entry not found"
// @Router /plants [post]
func createPlantHandler(svc *Service, catalogSvc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPlantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// La referencia al catálogo tiene que existir (UnknownEntity).
		if _, err := catalogSvc.GetByID(r.Context(), req.CatalogID); err != nil {
			http.Error(w, "catalog entry not found", http.StatusNotFound)
			return
		}

		var acquired time.Time
		if strings.TrimSpace(req.AcquiredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.AcquiredAt)
			if err != nil {
				http.Error(w, "acquired_at must be RFC3339", http.StatusBadRequest)
				return
			}
			acquired = t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			CatalogID:           req.CatalogID,
			Nickname:            req.Nickname,
			Location:            req.Location,
			Notes:               req.Notes,
			AcquiredAt:          acquired,
			WateringReminder:    fromReminderDTO(req.WateringReminder),
			FertilizingReminder: fromReminderDTO(req.FertilizingReminder),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPlantResponse(p))
	}
}

// listPlantsHandler godoc
// @Summary Listar mis plantas
// @Tags plants
// @Produce json
// @Success 200 {array} plantResponse
// @Failure 401 {string} string "unauthorized"
// @Router /plants [get]
func listPlantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]plantResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlantResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPlantHandler godoc
// @Summary Obtener una planta
// @Description Devuelve el perfil de la planta. Owner o cuidador con grant activo y scope `plants:read`.
// @Tags plants
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Success 200 {object} plantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [get]
func getPlantHandler(svc *Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "plantID"))
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		if p.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), p.ID, claims.UserID)
			if err != nil || !caretakers.HasScope(g, caretakers.ScopePlantRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		writeJSON(w, http.StatusOK, toPlantResponse(p))
	}
}

// updatePlantHandler godoc
// @Summary Actualizar una planta
// @Description PATCH del perfil y los recordatorios. Owner o cuidador con scope `plants:edit`. Las últimas fechas de cuidado y la salud no se tocan por acá: son propiedad del procesador de logs.
// @Tags plants
// @Accept json
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Param payload body updatePlantRequest true "Campos a modificar (los omitidos no se tocan)"
// @Success 200 {object} plantResponse
// @Failure 400 {string} string "invalid json / reminder config inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [patch]
func updatePlantHandler(svc *Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")
		p, err := svc.GetByID(r.Context(), plantID)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		if p.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), plantID, claims.UserID)
			if err != nil || !caretakers.HasScope(g, caretakers.ScopePlantEdit) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req updatePlantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var wr, fr *ReminderConfig
		if req.WateringReminder != nil {
			c := fromReminderDTO(req.WateringReminder)
			wr = &c
		}
		if req.FertilizingReminder != nil {
			c := fromReminderDTO(req.FertilizingReminder)
			fr = &c
		}

		updated, err := svc.Update(r.Context(), plantID, UpdateInput{
			Nickname:            req.Nickname,
			Location:            req.Location,
			Notes:               req.Notes,
			WateringReminder:    wr,
			FertilizingReminder: fr,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toPlantResponse(updated))
	}
}

// deletePlantHandler godoc
// @Summary Eliminar una planta
// @Description Elimina la planta del usuario. Solo el dueño puede.
// @Tags plants
// @Param plantID path string true "ID de la planta"
// @Success 204 {string} string "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [delete]
func deletePlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")
		p, err := svc.GetByID(r.Context(), plantID)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), plantID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listSharedPlantsHandler godoc
// @Summary Plantas compartidas conmigo
// @Description Lista las plantas en las que el usuario autenticado figura como cuidador con grant activo.
// @Tags plants
// @Produce json
// @Success 200 {array} sharedPlantResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/plants [get]
func listSharedPlantsHandler(svc *Service, grantsSvc *caretakers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grants, err := grantsSvc.ListByCaretaker(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]sharedPlantResponse, 0, len(grants))
		for _, g := range grants {
			if g.Status != caretakers.StatusActive {
				continue
			}
			p, err := svc.GetByID(r.Context(), g.PlantID)
			if err != nil {
				continue // la planta pudo haber sido eliminada
			}
			out = append(out, sharedPlantResponse{
				Plant:  toPlantResponse(p),
				Grant:  sharedGrantSummary{ID: g.ID, Status: g.Status},
				Scopes: g.Scopes,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func fromReminderDTO(d *reminderConfigDTO) ReminderConfig {
	if d == nil {
		return ReminderConfig{}
	}
	return ReminderConfig{
		Enabled:      d.Enabled,
		Frequency:    d.Frequency,
		IntervalDays: d.IntervalDays,
		DayOfWeek:    d.DayOfWeek,
		TimeOfDay:    strings.TrimSpace(d.TimeOfDay),
		Method:       d.Method,
	}
}

func toReminderDTO(c ReminderConfig) reminderConfigDTO {
	return reminderConfigDTO{
		Enabled:      c.Enabled,
		Frequency:    c.Frequency,
		IntervalDays: c.IntervalDays,
		DayOfWeek:    c.DayOfWeek,
		TimeOfDay:    c.TimeOfDay,
		Method:       c.Method,
	}
}

func toPlantResponse(p Plant) plantResponse {
	return plantResponse{
		ID:                  p.ID,
		OwnerUserID:         p.OwnerUserID,
		CatalogID:           p.CatalogID,
		Nickname:            p.Nickname,
		Location:            p.Location,
		Notes:               p.Notes,
		AcquiredAt:          p.AcquiredAt,
		LastWateredAt:       p.LastWateredAt,
		LastFertilizedAt:    p.LastFertilizedAt,
		WateringReminder:    toReminderDTO(p.WateringReminder),
		FertilizingReminder: toReminderDTO(p.FertilizingReminder),
		Health:              p.Health,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
