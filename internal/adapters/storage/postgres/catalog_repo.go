package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"planter-care/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// entryDetails agrupa los campos anidados/opcionales de una entrada.
// Se persisten juntos como jsonb; el resto son columnas planas filtrables.
type entryDetails struct {
	Temperature        catalog.TemperatureRange    `json:"temperature"`
	Fertilizer         *catalog.FertilizerInfo     `json:"fertilizer,omitempty"`
	MatureHeight       *catalog.SizeRange          `json:"mature_height,omitempty"`
	MatureWidth        *catalog.SizeRange          `json:"mature_width,omitempty"`
	BloomColors        []string                    `json:"bloom_colors,omitempty"`
	CommonProblems     []string                    `json:"common_problems,omitempty"`
	PropagationMethods []catalog.PropagationMethod `json:"propagation_methods,omitempty"`
}

func detailsOf(e catalog.Entry) entryDetails {
	return entryDetails{
		Temperature:        e.Temperature,
		Fertilizer:         e.Fertilizer,
		MatureHeight:       e.MatureHeight,
		MatureWidth:        e.MatureWidth,
		BloomColors:        e.BloomColors,
		CommonProblems:     e.CommonProblems,
		PropagationMethods: e.PropagationMethods,
	}
}

func applyDetails(e *catalog.Entry, d entryDetails) {
	e.Temperature = d.Temperature
	e.Fertilizer = d.Fertilizer
	e.MatureHeight = d.MatureHeight
	e.MatureWidth = d.MatureWidth
	e.BloomColors = d.BloomColors
	e.CommonProblems = d.CommonProblems
	e.PropagationMethods = d.PropagationMethods
}

func (r *CatalogRepo) Create(ctx context.Context, e catalog.Entry) error {
	details, err := json.Marshal(detailsOf(e))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO catalog_entries (
			id, name, scientific_name, description, image_url,
			category, difficulty, watering_frequency, light_requirement,
			humidity, soil_type, growth_rate, bloom_season, toxicity,
			pet_friendly, child_friendly, details, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		e.ID, e.Name, e.ScientificName, e.Description, e.ImageURL,
		string(e.Category), string(e.Difficulty), string(e.WateringFrequency), string(e.LightRequirement),
		string(e.Humidity), string(e.SoilType), string(e.GrowthRate), e.BloomSeason, string(e.Toxicity),
		e.PetFriendly, e.ChildFriendly, details, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

const catalogColumns = `
	id, name, scientific_name, description, image_url,
	category, difficulty, watering_frequency, light_requirement,
	humidity, soil_type, growth_rate, bloom_season, toxicity,
	pet_friendly, child_friendly, details, created_at, updated_at`

func scanCatalogEntry(row interface{ Scan(...any) error }) (catalog.Entry, error) {
	var e catalog.Entry
	var category, difficulty, watering, light, humidity, soil, growth, toxicity string
	var details []byte

	err := row.Scan(
		&e.ID, &e.Name, &e.ScientificName, &e.Description, &e.ImageURL,
		&category, &difficulty, &watering, &light,
		&humidity, &soil, &growth, &e.BloomSeason, &toxicity,
		&e.PetFriendly, &e.ChildFriendly, &details, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return catalog.Entry{}, err
	}

	e.Category = catalog.Category(category)
	e.Difficulty = catalog.Difficulty(difficulty)
	e.WateringFrequency = catalog.WateringSchedule(watering)
	e.LightRequirement = catalog.LightLevel(light)
	e.Humidity = catalog.HumidityLevel(humidity)
	e.SoilType = catalog.SoilType(soil)
	e.GrowthRate = catalog.GrowthRate(growth)
	e.Toxicity = catalog.Toxicity(toxicity)

	var d entryDetails
	if len(details) > 0 {
		if err := json.Unmarshal(details, &d); err != nil {
			return catalog.Entry{}, err
		}
	}
	applyDetails(&e, d)
	return e, nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+catalogColumns+` FROM catalog_entries WHERE id = $1`, id)
	e, err := scanCatalogEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Entry{}, ErrNotFound
	}
	if err != nil {
		return catalog.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepo) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Entry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT` + catalogColumns + ` FROM catalog_entries WHERE 1=1`)

	args := []any{}
	argN := 1

	if filter.Category != "" {
		sb.WriteString(fmt.Sprintf(" AND category = $%d", argN))
		args = append(args, string(filter.Category))
		argN++
	}
	if filter.Difficulty != "" {
		sb.WriteString(fmt.Sprintf(" AND difficulty = $%d", argN))
		args = append(args, string(filter.Difficulty))
		argN++
	}
	if filter.Query != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR scientific_name ILIKE $%d)", argN, argN))
		args = append(args, "%"+filter.Query+"%")
		argN++
	}

	sb.WriteString(" ORDER BY name ASC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []catalog.Entry{}
	for rows.Next() {
		e, err := scanCatalogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
