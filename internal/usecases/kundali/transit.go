package kundali

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/tzoffset"
	"github.com/admin/kundali-service/internal/ports/cache"
)

const (
	transitCacheKey = "kundali:transit:current"
	transitTTL      = 25 * time.Hour
)

// UpdateTransits пересчитывает текущие позиции для Нью-Дели и кладёт их в кеш.
// Здесь mock не подставляется: ошибку получит планировщик и повторит попытку.
func (s *Service) UpdateTransits(ctx context.Context, at time.Time) error {
	if s.Cache == nil {
		s.Log.Warn("cache is not configured, skipping transit update")
		return nil
	}

	loc := domain.DefaultLocation()
	zone, err := time.LoadLocation(loc.TimezoneName)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", loc.TimezoneName, err)
	}
	local := at.In(zone)

	offset, ok := tzoffset.ResolveOrDefault(loc.TimezoneName, local.Format("2006-01-02"), local.Format("15:04"))
	if !ok {
		s.Log.Warn("transit timezone fallback", "timezone", loc.TimezoneName)
	}

	moment := domain.BirthMoment{
		Year:      local.Year(),
		Month:     int(local.Month()),
		Day:       local.Day(),
		Hour:      local.Hour(),
		Minute:    local.Minute(),
		Second:    local.Second(),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timezone:  offset,
	}

	table, err := s.AstroAPIService.PlanetSigns(ctx, moment)
	if err != nil {
		return fmt.Errorf("failed to get transit positions: %w", err)
	}

	// D9 для транзитов не нужна, передаём ту же таблицу
	computed, degradations := normalizeCharts(table, table)
	snapshot := domain.TransitSnapshot{
		CalculatedAt:    at.UTC(),
		Location:        loc.DisplayName,
		AscendantSignID: computed.D1AscendantSignID,
		Ascendant:       domain.SignName(computed.D1AscendantSignID),
		Positions:       computed.D1,
		Degradations:    degradations,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal transit snapshot: %w", err)
	}

	if err := s.Cache.Set(ctx, transitCacheKey, string(payload), transitTTL); err != nil {
		return fmt.Errorf("failed to cache transit snapshot: %w", err)
	}

	s.Log.Info("transit positions updated",
		"calculated_at", snapshot.CalculatedAt,
		"ascendant", snapshot.Ascendant,
		"cache_key", transitCacheKey,
		"ttl", transitTTL,
	)
	return nil
}

// CurrentTransits последний снимок из кеша
func (s *Service) CurrentTransits(ctx context.Context) (*domain.TransitSnapshot, error) {
	if s.Cache == nil {
		return nil, domain.ErrTransitNotReady
	}

	raw, err := s.Cache.Get(ctx, transitCacheKey)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, domain.ErrTransitNotReady
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transit snapshot: %w", err)
	}

	var snapshot domain.TransitSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode transit snapshot: %w", err)
	}
	return &snapshot, nil
}
