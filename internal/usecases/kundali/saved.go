package kundali

import (
	"context"
	"fmt"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/google/uuid"
)

// ListSavedCharts сохранённые входные данные владельца
func (s *Service) ListSavedCharts(ctx context.Context, ownerID string) ([]*domain.SavedChart, error) {
	charts, err := s.SavedChartRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved charts: %w", err)
	}
	return charts, nil
}

// SaveChart сохраняет только форму, результат расчёта не кэшируется
func (s *Service) SaveChart(ctx context.Context, ownerID string, in domain.BirthInput) (*domain.SavedChart, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	saved := domain.NewSavedChart(ownerID, in)
	if err := s.SavedChartRepo.Add(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}

	s.Log.Info("chart input saved",
		"owner_id", ownerID,
		"saved_chart_id", saved.ID,
	)
	return saved, nil
}

func (s *Service) DeleteSavedChart(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.SavedChartRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete saved chart: %w", err)
	}

	s.Log.Info("saved chart deleted",
		"owner_id", ownerID,
		"saved_chart_id", id,
	)
	return nil
}

// RegenerateSavedChart прогоняет сохранённую форму через обычный пайплайн сессии владельца
func (s *Service) RegenerateSavedChart(ctx context.Context, ownerID string, id uuid.UUID, language string) (*domain.ChartResponse, error) {
	saved, err := s.SavedChartRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved chart: %w", err)
	}

	return s.GenerateChart(ctx, ownerID, saved.ToBirthInput(language))
}
