package kundali

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/cache"
	"github.com/admin/kundali-service/internal/ports/service"
	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "kundali:session:"
	// sessionTTL сессия без новых прогонов забывается через сутки
	sessionTTL          = 24 * time.Hour
	sessionStoreTimeout = 3 * time.Second
)

// GenerateChart полный прогон пайплайна для сессии.
// Новый прогон той же сессии отменяет предыдущий; результат отменённого отбрасывается с ErrSuperseded.
func (s *Service) GenerateChart(ctx context.Context, sessionID string, in domain.BirthInput) (*domain.ChartResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	token := uuid.New()
	runCtx := s.beginRun(ctx, sessionID, token)
	defer s.endRun(sessionID, token)

	chart, err := s.buildChart(runCtx, token.String(), sessionID, in)

	if !s.RequestCache.IsLastRequestID(sessionID, token) {
		s.Log.Info("chart run superseded",
			"session_id", sessionID,
			"request_id", token,
		)
		return nil, domain.ErrSuperseded
	}

	if err != nil {
		s.applyView(ctx, sessionID, domain.ChartFailed{Token: token.String(), Code: domain.FailureCode(err)})
		s.Log.Warn("chart generation failed",
			"error", err,
			"session_id", sessionID,
			"request_id", token,
		)
		return nil, domain.WrapBusinessError(err)
	}

	s.applyView(ctx, sessionID, domain.ChartCompleted{Token: token.String(), Chart: chart})

	s.Log.Info("chart generated",
		"session_id", sessionID,
		"request_id", token,
		"ascendant", chart.Basic.Ascendant,
		"degradations", chart.Degradations,
	)

	return chart, nil
}

// ViewState последний снимок состояния сессии; неизвестная или истёкшая сессия в idle
func (s *Service) ViewState(ctx context.Context, sessionID string) (domain.ViewState, error) {
	state, err := s.loadView(ctx, sessionID)
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("failed to load session state: %w", err)
	}
	return state, nil
}

// beginRun регистрирует токен как последний и отменяет предыдущий прогон сессии
func (s *Service) beginRun(ctx context.Context, sessionID string, token uuid.UUID) context.Context {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.RequestCache.SetLastRequestID(sessionID, token)
	if prev, ok := s.runs[sessionID]; ok {
		prev.cancel()
	}
	s.runs[sessionID] = &run{token: token, cancel: cancel}

	// под тем же локом: иначе старый ChartSubmitted может лечь поверх нового
	s.applyViewLocked(ctx, sessionID, domain.ChartSubmitted{Token: token.String()})

	return runCtx
}

// endRun освобождает контекст прогона. Чужой cancel не трогаем
func (s *Service) endRun(sessionID string, token uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.runs[sessionID]; ok && r.token == token {
		r.cancel()
		delete(s.runs, sessionID)
	}
}

// applyView переход состояния сессии через Reduce. Ошибка хранилища не роняет прогон
func (s *Service) applyView(ctx context.Context, sessionID string, msg domain.ViewMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyViewLocked(ctx, sessionID, msg)
}

func (s *Service) applyViewLocked(ctx context.Context, sessionID string, msg domain.ViewMessage) {
	// отменённый запрос всё равно должен записать итог
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionStoreTimeout)
	defer cancel()

	state, err := s.loadView(storeCtx, sessionID)
	if err != nil {
		s.Log.Warn("failed to load session state, starting from idle",
			"error", err,
			"session_id", sessionID,
		)
		state = domain.ViewState{Status: domain.ViewIdle}
	}

	next := domain.Reduce(state, msg)

	raw, err := json.Marshal(next)
	if err != nil {
		s.Log.Warn("failed to encode session state", "error", err, "session_id", sessionID)
		return
	}
	if err := s.SessionStore.Set(storeCtx, sessionKey(sessionID), string(raw), sessionTTL); err != nil {
		s.Log.Warn("failed to store session state",
			"error", err,
			"session_id", sessionID,
		)
	}
}

func (s *Service) loadView(ctx context.Context, sessionID string) (domain.ViewState, error) {
	raw, err := s.SessionStore.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, cache.ErrNotFound) {
		return domain.ViewState{Status: domain.ViewIdle}, nil
	}
	if err != nil {
		return domain.ViewState{}, err
	}

	var state domain.ViewState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.ViewState{}, fmt.Errorf("decode session state: %w", err)
	}
	return state, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *Service) buildChart(ctx context.Context, requestID, sessionID string, in domain.BirthInput) (*domain.ChartResponse, error) {
	place, degradations := s.resolvePlace(ctx, in)

	moment, err := domain.NewBirthMoment(in.Date, in.Time, place.Latitude, place.Longitude, place.Timezone)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchChartData(ctx, moment)
	if err != nil {
		return nil, err
	}
	degradations = degradations.Merge(data.Degradations)

	computed, normDegradations := normalizeCharts(data.D1, data.D9)
	degradations = degradations.Merge(normDegradations)

	narrative, err := s.NarrativeService.Generate(ctx, service.NarrativeFacts{
		Name:          in.Name,
		AscendantSign: domain.SignName(computed.D1AscendantSignID),
		Placements:    placements(computed.D1),
		Language:      in.LanguageOrDefault(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("chart run aborted: %w", ctxErr)
		}
		if !errors.Is(err, domain.ErrNarrativeUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrNarrativeUnavailable, err)
		}
		return nil, err
	}

	chart := mergeChart(requestID, in, place, narrative, computed, data, degradations, s.now())

	s.storeChartImages(ctx, chart)
	s.publishChartGenerated(ctx, sessionID, in.LanguageOrDefault(), chart)

	return chart, nil
}
