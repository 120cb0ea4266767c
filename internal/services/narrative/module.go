package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/service"
	"google.golang.org/genai"
)

// jsonGenerator модель, отвечающая JSON по схеме
type jsonGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, prompt string, schema *genai.Schema) (string, error)
}

// Service реализует INarrativeService. Ретраев и текста-заглушки нет: ошибка уходит наверх
type Service struct {
	generator jsonGenerator
	log       *slog.Logger
}

func New(generator jsonGenerator, log *slog.Logger) service.INarrativeService {
	return &Service{
		generator: generator,
		log:       log,
	}
}

func (s *Service) Generate(ctx context.Context, facts service.NarrativeFacts) (*domain.Narrative, error) {
	prompt := buildPrompt(facts)

	raw, err := s.generator.GenerateJSON(ctx, systemPrompt, prompt, chartSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNarrativeUnavailable, err)
	}

	narrative, err := parseNarrative(raw)
	if err != nil {
		s.log.Debug("failed to parse narrative",
			"error", err,
			"response_size", len(raw),
			"language", facts.Language,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrNarrativeUnavailable, err)
	}

	return narrative, nil
}

// parseNarrative модель иногда оборачивает JSON в ```json ... ```
func parseNarrative(raw string) (*domain.Narrative, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var narrative domain.Narrative
	if err := json.Unmarshal([]byte(sanitized), &narrative); err != nil {
		return nil, fmt.Errorf("decode narrative: %w", err)
	}

	p := narrative.Predictions
	if p.Career == "" && p.Love == "" && p.Health == "" && p.Finance == "" && len(narrative.PlanetAnalysis) == 0 {
		return nil, errors.New("narrative has no predictions")
	}

	narrative.Remedies = normalizeList(narrative.Remedies)
	return &narrative, nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		clean := strings.TrimSpace(item)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
