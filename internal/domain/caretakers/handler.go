package caretakers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"planter-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PlantOwnerLookup evita importar el paquete plants (rompe ciclos).
type PlantOwnerLookup interface {
	OwnerOf(ctx context.Context, plantID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, plantOwners PlantOwnerLookup) {
	// Acciones del dueño, por planta
	r.Route("/plants/{plantID}/caretakers", func(gr chi.Router) {
		gr.Post("/", inviteGrantHandler(svc, plantOwners))
		gr.Get("/", listGrantsByPlantHandler(svc, plantOwners))
	})

	// Acciones por grant (cuidador acepta, dueño revoca)
	r.Route("/caretakers/{grantID}", func(gr chi.Router) {
		gr.Post("/accept", acceptGrantHandler(svc))
		gr.Post("/revoke", revokeGrantHandler(svc))
	})

	// Cuidador: ver sus invitaciones / grants
	r.Get("/me/caretaking", listMyGrantsHandler(svc))
}

type inviteGrantRequest struct {
	CaretakerUserID string  `json:"caretaker_user_id"`
	Scopes          []Scope `json:"scopes" enums:"plants:read,plants:edit,logs:read,logs:create"`
}

type grantResponse struct {
	ID              string     `json:"id"`
	PlantID         string     `json:"plant_id"`
	OwnerUserID     string     `json:"owner_user_id"`
	CaretakerUserID string     `json:"caretaker_user_id"`
	Scopes          []Scope    `json:"scopes"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
}

// inviteGrantHandler godoc
// @Summary Invitar cuidador de una planta
// @Description El dueño invita a otro usuario como cuidador con scopes acotados. Si se omiten scopes se aplican `plants:read` + `logs:create`.
// @Tags caretakers
// @Accept json
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Param payload body inviteGrantRequest true "Invitación"
// @Success 201 {object} grantResponse
// @Failure 400 {string} string "invalid json / scope desconocido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/caretakers [post]
func inviteGrantHandler(svc *Service, plantOwners PlantOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")

		ownerID, err := plantOwners.OwnerOf(r.Context(), plantID)
		if err != nil || strings.TrimSpace(ownerID) == "" {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		if ownerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req inviteGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.CaretakerUserID) == "" {
			http.Error(w, "caretaker_user_id required", http.StatusBadRequest)
			return
		}

		g, err := svc.Invite(r.Context(), InviteInput{
			PlantID:         plantID,
			OwnerUserID:     claims.UserID,
			CaretakerUserID: strings.TrimSpace(req.CaretakerUserID),
			Scopes:          req.Scopes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

// listGrantsByPlantHandler godoc
// @Summary Listar cuidadores de una planta
// @Tags caretakers
// @Produce json
// @Param plantID path string true "ID de la planta"
// @Success 200 {array} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/caretakers [get]
func listGrantsByPlantHandler(svc *Service, plantOwners PlantOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		plantID := chi.URLParam(r, "plantID")

		ownerID, err := plantOwners.OwnerOf(r.Context(), plantID)
		if err != nil || strings.TrimSpace(ownerID) == "" {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		if ownerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPlant(r.Context(), plantID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listMyGrantsHandler godoc
// @Summary Listar mis delegaciones como cuidador
// @Tags caretakers
// @Produce json
// @Param status query string false "Filtro CSV de estados (invited,active,revoked)"
// @Success 200 {array} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/caretaking [get]
func listMyGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByCaretaker(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		statusFilter := parseStatusFilter(r.URL.Query().Get("status"))

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			if statusFilter != nil {
				if _, ok := statusFilter[g.Status]; !ok {
					continue
				}
			}
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// acceptGrantHandler godoc
// @Summary Aceptar invitación de cuidado
// @Tags caretakers
// @Produce json
// @Param grantID path string true "ID del grant"
// @Success 200 {object} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "grant not found"
// @Failure 409 {string} string "grant revocado"
// @Router /caretakers/{grantID}/accept [post]
func acceptGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		g, err := svc.Accept(r.Context(), chi.URLParam(r, "grantID"), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

// revokeGrantHandler godoc
// @Summary Revocar delegación de cuidado
// @Tags caretakers
// @Produce json
// @Param grantID path string true "ID del grant"
// @Success 200 {object} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "grant not found"
// @Router /caretakers/{grantID}/revoke [post]
func revokeGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		g, err := svc.Revoke(r.Context(), chi.URLParam(r, "grantID"), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func writeGrantError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNotFound:
		http.Error(w, "grant not found", http.StatusNotFound)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrBadState:
		http.Error(w, "invalid grant state", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:              g.ID,
		PlantID:         g.PlantID,
		OwnerUserID:     g.OwnerUserID,
		CaretakerUserID: g.CaretakerUserID,
		Scopes:          g.Scopes,
		Status:          g.Status,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
		RevokedAt:       g.RevokedAt,
	}
}

func parseStatusFilter(raw string) map[Status]struct{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	out := map[Status]struct{}{}
	for _, p := range strings.Split(raw, ",") {
		s := Status(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		out[s] = struct{}{}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
