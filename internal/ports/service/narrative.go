package service

import (
	"context"

	"github.com/admin/kundali-service/internal/domain"
)

// NarrativeFacts нормализованные факты карты для промпта
type NarrativeFacts struct {
	Name          string
	AscendantSign string
	Placements    []string
	Language      string
}

// INarrativeService интерпретация карты генеративной моделью
type INarrativeService interface {
	Generate(ctx context.Context, facts NarrativeFacts) (*domain.Narrative, error)
}
