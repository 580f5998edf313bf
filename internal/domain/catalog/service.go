package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
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
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Entry, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Category == "" || in.Difficulty == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.WateringFrequency == "" {
		return Entry{}, ErrInvalidInput
	}

	now := s.now()
	e := Entry{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(in.Name),
		ScientificName:     strings.TrimSpace(in.ScientificName),
		Description:        strings.TrimSpace(in.Description),
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Category:           in.Category,
		Difficulty:         in.Difficulty,
		WateringFrequency:  in.WateringFrequency,
		LightRequirement:   in.LightRequirement,
		Temperature:        in.Temperature,
		Humidity:           in.Humidity,
		SoilType:           in.SoilType,
		Fertilizer:         in.Fertilizer,
		GrowthRate:         in.GrowthRate,
		MatureHeight:       in.MatureHeight,
		MatureWidth:        in.MatureWidth,
		BloomSeason:        strings.TrimSpace(in.BloomSeason),
		BloomColors:        in.BloomColors,
		Toxicity:           in.Toxicity,
		PetFriendly:        in.PetFriendly,
		ChildFriendly:      in.ChildFriendly,
		CommonProblems:     in.CommonProblems,
		PropagationMethods: in.PropagationMethods,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	return s.repo.List(ctx, filter)
}
