package usecase

import (
	"context"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/google/uuid"
)

// IKundaliUseCase интерфейс построения карт (use case слой)
type IKundaliUseCase interface {
	GenerateChart(ctx context.Context, sessionID string, in domain.BirthInput) (*domain.ChartResponse, error)
	ViewState(ctx context.Context, sessionID string) (domain.ViewState, error)

	ListSavedCharts(ctx context.Context, ownerID string) ([]*domain.SavedChart, error)
	SaveChart(ctx context.Context, ownerID string, in domain.BirthInput) (*domain.SavedChart, error)
	DeleteSavedChart(ctx context.Context, ownerID string, id uuid.UUID) error
	RegenerateSavedChart(ctx context.Context, ownerID string, id uuid.UUID, language string) (*domain.ChartResponse, error)

	MatchCharts(ctx context.Context, in domain.MatchInput) (*domain.MatchScore, error)
	CurrentTransits(ctx context.Context) (*domain.TransitSnapshot, error)
}
