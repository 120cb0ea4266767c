package repository

import (
	"context"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/google/uuid"
)

// ISavedChartRepo хранилище сохранённых входных данных карт по владельцу
type ISavedChartRepo interface {
	List(ctx context.Context, ownerID string) ([]*domain.SavedChart, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.SavedChart, error)
	Add(ctx context.Context, chart *domain.SavedChart) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
