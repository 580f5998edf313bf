package catalog

import "time"

// TemperatureRange es el rango de temperatura recomendado para la especie.
type TemperatureRange struct {
	Min  float64
	Max  float64
	Unit string // "celsius" | "fahrenheit"
}

// SizeRange es el tamaño adulto esperado (alto o ancho).
type SizeRange struct {
	Min  float64
	Max  float64
	Unit string // "cm" | "inches"
}

// FertilizerInfo describe el fertilizante recomendado.
type FertilizerInfo struct {
	Type      string
	NPKRatio  string // ej: "10-10-10"
	Frequency WateringSchedule
	Notes     string
}

// Entry representa una especie del catálogo: datos de referencia inmutables.
// El motor de recordatorios la lee, nunca la modifica.
type Entry struct {
	ID             string
	Name           string
	ScientificName string
	Description    string
	ImageURL       string

	Category   Category
	Difficulty Difficulty

	WateringFrequency WateringSchedule
	LightRequirement  LightLevel
	Temperature       TemperatureRange
	Humidity          HumidityLevel
	SoilType          SoilType
	Fertilizer        *FertilizerInfo

	GrowthRate   GrowthRate
	MatureHeight *SizeRange
	MatureWidth  *SizeRange

	BloomSeason string
	BloomColors []string

	Toxicity      Toxicity
	PetFriendly   bool
	ChildFriendly bool

	CommonProblems     []string
	PropagationMethods []PropagationMethod

	CreatedAt time.Time
	UpdatedAt time.Time
}
