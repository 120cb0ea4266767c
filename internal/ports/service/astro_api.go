package service

import (
	"context"

	"github.com/admin/kundali-service/internal/domain"
)

// ChartVariant вид карты у астро-API
type ChartVariant string

const (
	ChartD1 ChartVariant = "D1"
	ChartD9 ChartVariant = "D9"
)

// IAstroAPIService интерфейс для работы с астро-API
type IAstroAPIService interface {
	// Geocode возвращает nil без ошибки, если место не найдено
	Geocode(ctx context.Context, place string) (*domain.GeoLocation, error)
	PlanetSigns(ctx context.Context, moment domain.BirthMoment) (*domain.SignTable, error)
	NavamsaSigns(ctx context.Context, moment domain.BirthMoment) (*domain.SignTable, error)
	ChartSVG(ctx context.Context, moment domain.BirthMoment, variant ChartVariant) (string, error)
	AshtakootScore(ctx context.Context, bride, groom domain.BirthMoment) (*domain.MatchScore, error)
}
