package catalog

// Category define las categorías de plantas soportadas.
// @Enum succulent, herbs, vegetables, flowers, foliage, cacti, orchids, ferns, trees, shrubs, vines, moss, other
type Category string

const (
	CategorySucculent  Category = "succulent"
	CategoryHerbs      Category = "herbs"
	CategoryVegetables Category = "vegetables"
	CategoryFlowers    Category = "flowers"
	CategoryFoliage    Category = "foliage"
	CategoryCacti      Category = "cacti"
	CategoryOrchids    Category = "orchids"
	CategoryFerns      Category = "ferns"
	CategoryTrees      Category = "trees"
	CategoryShrubs     Category = "shrubs"
	CategoryVines      Category = "vines"
	CategoryMoss       Category = "moss"
	CategoryOther      Category = "other"
)

// Difficulty define el nivel de cuidado requerido.
// @Enum beginner, intermediate, advanced
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// WateringSchedule es la frecuencia base de riego recomendada por especie.
type WateringSchedule string

const (
	WateringDaily      WateringSchedule = "daily"
	WateringEvery2Days WateringSchedule = "every_2_days"
	WateringEvery3Days WateringSchedule = "every_3_days"
	WateringWeekly     WateringSchedule = "weekly"
	WateringEvery2Wks  WateringSchedule = "every_2_weeks"
	WateringMonthly    WateringSchedule = "monthly"
	WateringAsNeeded   WateringSchedule = "as_needed"
)

// LightLevel define la exposición de luz recomendada.
type LightLevel string

const (
	LightFullSun      LightLevel = "full_sun"
	LightPartialSun   LightLevel = "partial_sun"
	LightPartialShade LightLevel = "partial_shade"
	LightFullShade    LightLevel = "full_shade"
	LightIndirect     LightLevel = "indirect"
)

// HumidityLevel define la humedad ambiente recomendada.
type HumidityLevel string

const (
	HumidityLow      HumidityLevel = "low"
	HumidityModerate HumidityLevel = "moderate"
	HumidityHigh     HumidityLevel = "high"
	HumidityVeryHigh HumidityLevel = "very_high"
)

// SoilType define el sustrato recomendado.
type SoilType string

const (
	SoilPottingMix   SoilType = "potting_mix"
	SoilCactus       SoilType = "cactus_soil"
	SoilPeatMoss     SoilType = "peat_moss"
	SoilLoamy        SoilType = "loamy"
	SoilSandy        SoilType = "sandy"
	SoilClay         SoilType = "clay"
	SoilWellDraining SoilType = "well_draining"
)

// GrowthRate define la velocidad de crecimiento esperada.
type GrowthRate string

const (
	GrowthSlow     GrowthRate = "slow"
	GrowthModerate GrowthRate = "moderate"
	GrowthFast     GrowthRate = "fast"
	GrowthVeryFast GrowthRate = "very_fast"
)

// Toxicity define el nivel de toxicidad para mascotas/niños.
type Toxicity string

const (
	ToxicityNonToxic    Toxicity = "non_toxic"
	ToxicityMildlyToxic Toxicity = "mildly_toxic"
	ToxicityToxic       Toxicity = "toxic"
	ToxicityHighlyToxic Toxicity = "highly_toxic"
)

// PropagationMethod define los métodos de propagación de la especie.
type PropagationMethod string

const (
	PropagationSeeds    PropagationMethod = "seeds"
	PropagationCuttings PropagationMethod = "cuttings"
	PropagationDivision PropagationMethod = "division"
	PropagationLayering PropagationMethod = "layering"
	PropagationOffsets  PropagationMethod = "offsets"
	PropagationSpores   PropagationMethod = "spores"
)
