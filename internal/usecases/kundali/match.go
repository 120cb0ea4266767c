package kundali

import (
	"context"
	"fmt"

	"github.com/admin/kundali-service/internal/domain"
)

// MatchCharts совместимость по аштакуте. Подставных баллов нет, ошибка API уходит клиенту
func (s *Service) MatchCharts(ctx context.Context, in domain.MatchInput) (*domain.MatchScore, error) {
	if err := in.Bride.Validate(); err != nil {
		return nil, fmt.Errorf("bride: %w", err)
	}
	if err := in.Groom.Validate(); err != nil {
		return nil, fmt.Errorf("groom: %w", err)
	}

	bridePlace, brideDegradations := s.resolvePlace(ctx, in.Bride)
	groomPlace, groomDegradations := s.resolvePlace(ctx, in.Groom)

	bride, err := domain.NewBirthMoment(in.Bride.Date, in.Bride.Time, bridePlace.Latitude, bridePlace.Longitude, bridePlace.Timezone)
	if err != nil {
		return nil, fmt.Errorf("bride: %w", err)
	}
	groom, err := domain.NewBirthMoment(in.Groom.Date, in.Groom.Time, groomPlace.Latitude, groomPlace.Longitude, groomPlace.Timezone)
	if err != nil {
		return nil, fmt.Errorf("groom: %w", err)
	}

	score, err := s.AstroAPIService.AshtakootScore(ctx, bride, groom)
	if err != nil {
		s.Log.Warn("ashtakoot scoring failed", "error", err)
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: %v", domain.ErrMatchUnavailable, err))
	}

	score.Conclusion = domain.MatchVerdict(score.Total)
	score.Degradations = brideDegradations.Merge(groomDegradations)

	s.Log.Info("match scored",
		"total", score.Total,
		"max", score.Max,
		"conclusion", score.Conclusion,
	)
	return score, nil
}
