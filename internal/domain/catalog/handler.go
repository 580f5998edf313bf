package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"planter-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/catalog", func(cr chi.Router) {
		// Alta de especies (seed/curación). Requiere usuario autenticado.
		cr.Post("/", createEntryHandler(svc))

		// Lectura pública: el catálogo es data de referencia.
		cr.Get("/", listEntriesHandler(svc))
		cr.Get("/{entryID}", getEntryHandler(svc))
	})
}

// createEntryRequest es el cuerpo para registrar una especie en el catálogo.
type createEntryRequest struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`

	Category   Category   `json:"category" enums:"succulent,herbs,vegetables,flowers,foliage,cacti,orchids,ferns,trees,shrubs,vines,moss,other"`
	Difficulty Difficulty `json:"difficulty" enums:"beginner,intermediate,advanced"`

	WateringFrequency WateringSchedule `json:"watering_frequency" enums:"daily,every_2_days,every_3_days,weekly,every_2_weeks,monthly,as_needed"`
	LightRequirement  LightLevel       `json:"light_requirement"`
	Temperature       temperatureDTO   `json:"temperature"`
	Humidity          HumidityLevel    `json:"humidity"`
	SoilType          SoilType         `json:"soil_type"`
	Fertilizer        *fertilizerDTO   `json:"fertilizer"`

	GrowthRate   GrowthRate    `json:"growth_rate"`
	MatureHeight *sizeRangeDTO `json:"mature_height"`
	MatureWidth  *sizeRangeDTO `json:"mature_width"`

	BloomSeason string   `json:"bloom_season"`
	BloomColors []string `json:"bloom_colors"`

	Toxicity      Toxicity `json:"toxicity"`
	PetFriendly   bool     `json:"pet_friendly"`
	ChildFriendly bool     `json:"child_friendly"`

	CommonProblems     []string            `json:"common_problems"`
	PropagationMethods []PropagationMethod `json:"propagation_methods"`
}

type temperatureDTO struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

type sizeRangeDTO struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

type fertilizerDTO struct {
	Type      string           `json:"type"`
	NPKRatio  string           `json:"npk_ratio"`
	Frequency WateringSchedule `json:"frequency"`
	Notes     string           `json:"notes"`
}

// entryResponse representa una especie del catálogo devuelta por la API.
type entryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name,omitempty"`
	Description    string `json:"description,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`

	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`

	WateringFrequency WateringSchedule `json:"watering_frequency"`
	LightRequirement  LightLevel       `json:"light_requirement"`
	Temperature       temperatureDTO   `json:"temperature"`
	Humidity          HumidityLevel    `json:"humidity"`
	SoilType          SoilType         `json:"soil_type"`
	Fertilizer        *fertilizerDTO   `json:"fertilizer,omitempty"`

	GrowthRate   GrowthRate    `json:"growth_rate"`
	MatureHeight *sizeRangeDTO `json:"mature_height,omitempty"`
	MatureWidth  *sizeRangeDTO `json:"mature_width,omitempty"`

	BloomSeason string   `json:"bloom_season,omitempty"`
	BloomColors []string `json:"bloom_colors,omitempty"`

	Toxicity      Toxicity `json:"toxicity,omitempty"`
	PetFriendly   bool     `json:"pet_friendly"`
	ChildFriendly bool     `json:"child_friendly"`

	CommonProblems     []string            `json:"common_problems,omitempty"`
	PropagationMethods []PropagationMethod `json:"propagation_methods,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createEntryHandler godoc
// @Summary Registrar especie en el catálogo
// @Description Crea una entrada de catálogo (data de referencia de especie). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body createEntryRequest true "Datos de la especie"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Router /catalog [post]
func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Name:               req.Name,
			ScientificName:     req.ScientificName,
			Description:        req.Description,
			ImageURL:           req.ImageURL,
			Category:           req.Category,
			Difficulty:         req.Difficulty,
			WateringFrequency:  req.WateringFrequency,
			LightRequirement:   req.LightRequirement,
			Temperature:        TemperatureRange(req.Temperature),
			Humidity:           req.Humidity,
			SoilType:           req.SoilType,
			Fertilizer:         toFertilizer(req.Fertilizer),
			GrowthRate:         req.GrowthRate,
			MatureHeight:       toSizeRange(req.MatureHeight),
			MatureWidth:        toSizeRange(req.MatureWidth),
			BloomSeason:        req.BloomSeason,
			BloomColors:        req.BloomColors,
			Toxicity:           req.Toxicity,
			PetFriendly:        req.PetFriendly,
			ChildFriendly:      req.ChildFriendly,
			CommonProblems:     req.CommonProblems,
			PropagationMethods: req.PropagationMethods,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listEntriesHandler godoc
// @Summary Listar especies del catálogo
// @Description Lista las especies del catálogo. Permite filtrar por categoría, dificultad y texto libre.
// @Tags catalog
// @Produce json
// @Param category query string false "Categoría (ej: succulent)"
// @Param difficulty query string false "Dificultad (beginner|intermediate|advanced)"
// @Param q query string false "Texto de búsqueda libre en nombre/descripción"
// @Param limit query int false "Máximo de entradas a devolver (1-200). Por defecto 50"
// @Success 200 {array} entryResponse
// @Router /catalog [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{Limit: 50}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				filter.Limit = n
			}
		}
		filter.Category = Category(strings.TrimSpace(r.URL.Query().Get("category")))
		filter.Difficulty = Difficulty(strings.TrimSpace(r.URL.Query().Get("difficulty")))
		filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEntryHandler godoc
// @Summary Obtener especie por ID
// @Tags catalog
// @Produce json
// @Param entryID path string true "ID de la especie"
// @Success 200 {object} entryResponse
// @Failure 404 {string} string "entry not found"
// @Router /catalog/{entryID} [get]
func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func toFertilizer(f *fertilizerDTO) *FertilizerInfo {
	if f == nil {
		return nil
	}
	out := FertilizerInfo(*f)
	return &out
}

func toSizeRange(s *sizeRangeDTO) *SizeRange {
	if s == nil {
		return nil
	}
	out := SizeRange(*s)
	return &out
}

func toEntryResponse(e Entry) entryResponse {
	resp := entryResponse{
		ID:                 e.ID,
		Name:               e.Name,
		ScientificName:     e.ScientificName,
		Description:        e.Description,
		ImageURL:           e.ImageURL,
		Category:           e.Category,
		Difficulty:         e.Difficulty,
		WateringFrequency:  e.WateringFrequency,
		LightRequirement:   e.LightRequirement,
		Temperature:        temperatureDTO(e.Temperature),
		Humidity:           e.Humidity,
		SoilType:           e.SoilType,
		GrowthRate:         e.GrowthRate,
		BloomSeason:        e.BloomSeason,
		BloomColors:        e.BloomColors,
		Toxicity:           e.Toxicity,
		PetFriendly:        e.PetFriendly,
		ChildFriendly:      e.ChildFriendly,
		CommonProblems:     e.CommonProblems,
		PropagationMethods: e.PropagationMethods,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.Fertilizer != nil {
		f := fertilizerDTO(*e.Fertilizer)
		resp.Fertilizer = &f
	}
	if e.MatureHeight != nil {
		s := sizeRangeDTO(*e.MatureHeight)
		resp.MatureHeight = &s
	}
	if e.MatureWidth != nil {
		s := sizeRangeDTO(*e.MatureWidth)
		resp.MatureWidth = &s
	}
	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
