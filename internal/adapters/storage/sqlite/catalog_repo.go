package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"planter-care/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// entryDetails agrupa los campos anidados/opcionales; se guardan como JSON
// en una columna de texto (SQLite no tiene jsonb).
type entryDetails struct {
	Temperature        catalog.TemperatureRange    `json:"temperature"`
	Fertilizer         *catalog.FertilizerInfo     `json:"fertilizer,omitempty"`
	MatureHeight       *catalog.SizeRange          `json:"mature_height,omitempty"`
	MatureWidth        *catalog.SizeRange          `json:"mature_width,omitempty"`
	BloomColors        []string                    `json:"bloom_colors,omitempty"`
	CommonProblems     []string                    `json:"common_problems,omitempty"`
	PropagationMethods []catalog.PropagationMethod `json:"propagation_methods,omitempty"`
}

func (r *CatalogRepo) Create(ctx context.Context, e catalog.Entry) error {
	details, err := json.Marshal(entryDetails{
		Temperature:        e.Temperature,
		Fertilizer:         e.Fertilizer,
		MatureHeight:       e.MatureHeight,
		MatureWidth:        e.MatureWidth,
		BloomColors:        e.BloomColors,
		CommonProblems:     e.CommonProblems,
		PropagationMethods: e.PropagationMethods,
	})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO catalog_entries (
			id, name, scientific_name, description, image_url,
			category, difficulty, watering_frequency, light_requirement,
			humidity, soil_type, growth_rate, bloom_season, toxicity,
			pet_friendly, child_friendly, details, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		e.ID, e.Name, e.ScientificName, e.Description, e.ImageURL,
		string(e.Category), string(e.Difficulty), string(e.WateringFrequency), string(e.LightRequirement),
		string(e.Humidity), string(e.SoilType), string(e.GrowthRate), e.BloomSeason, string(e.Toxicity),
		e.PetFriendly, e.ChildFriendly, string(details), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func scanEntry(row interface{ Scan(...any) error }) (catalog.Entry, error) {
	var e catalog.Entry
	var category, difficulty, watering, light, humidity, soil, growth, toxicity string
	var details string

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
	if details != "" {
		if err := json.Unmarshal([]byte(details), &d); err != nil {
			return catalog.Entry{}, err
		}
	}
	e.Temperature = d.Temperature
	e.Fertilizer = d.Fertilizer
	e.MatureHeight = d.MatureHeight
	e.MatureWidth = d.MatureWidth
	e.BloomColors = d.BloomColors
	e.CommonProblems = d.CommonProblems
	e.PropagationMethods = d.PropagationMethods
	return e, nil
}

const entryColumns = `
	id, name, scientific_name, description, image_url,
	category, difficulty, watering_frequency, light_requirement,
	humidity, soil_type, growth_rate, bloom_season, toxicity,
	pet_friendly, child_friendly, details, created_at, updated_at`

func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+entryColumns+` FROM catalog_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
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
	sb.WriteString(`SELECT` + entryColumns + ` FROM catalog_entries WHERE 1=1`)

	args := []any{}
	if filter.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Difficulty != "" {
		sb.WriteString(" AND difficulty = ?")
		args = append(args, string(filter.Difficulty))
	}
	if filter.Query != "" {
		sb.WriteString(" AND (name LIKE ? OR scientific_name LIKE ?)")
		q := "%" + filter.Query + "%"
		args = append(args, q, q)
	}

	sb.WriteString(" ORDER BY name ASC LIMIT ?")
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []catalog.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
