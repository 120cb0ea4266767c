package astroApi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	astroApiAdapter "github.com/admin/kundali-service/internal/adapters/secondary/astroApi"
	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/service"
)

const ascendantKey = "Ascendant"

// kootOrder порядок восьми факторов аштакуты в ответе
var kootOrder = []struct {
	key  string
	name string
}{
	{"varna_kootam", "Varna"},
	{"vasya_kootam", "Vashya"},
	{"tara_kootam", "Tara"},
	{"yoni_kootam", "Yoni"},
	{"graha_maitri_kootam", "Graha Maitri"},
	{"gana_kootam", "Gana"},
	{"rasi_kootam", "Bhakoot"},
	{"nadi_kootam", "Nadi"},
}

// Service реализует IAstroAPIService для работы с астро-API
type Service struct {
	client *astroApiAdapter.Client
}

// New создаёт новый сервис для работы с астро-API
func New(client *astroApiAdapter.Client) service.IAstroAPIService {
	return &Service{
		client: client,
	}
}

// Geocode первый найденный вариант места. Пустая строка в сеть не уходит
func (s *Service) Geocode(ctx context.Context, place string) (*domain.GeoLocation, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, nil
	}

	entries, err := s.client.GeoDetails(ctx, astroApiAdapter.GeoRequest{Location: place})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", place, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	first := entries[0]
	return &domain.GeoLocation{
		Latitude:            first.Latitude,
		Longitude:           first.Longitude,
		TimezoneName:        first.Timezone,
		TimezoneOffsetHours: first.TimezoneOffset,
		DisplayName:         first.CompleteName,
	}, nil
}

// PlanetSigns знаковая таблица D1
func (s *Service) PlanetSigns(ctx context.Context, moment domain.BirthMoment) (*domain.SignTable, error) {
	rows, err := s.client.Planets(ctx, s.payload(moment))
	if err != nil {
		return nil, fmt.Errorf("failed to get planets: %w", err)
	}
	return toSignTable(rows)
}

// NavamsaSigns знаковая таблица D9
func (s *Service) NavamsaSigns(ctx context.Context, moment domain.BirthMoment) (*domain.SignTable, error) {
	rows, err := s.client.Navamsa(ctx, s.payload(moment))
	if err != nil {
		return nil, fmt.Errorf("failed to get navamsa: %w", err)
	}
	return toSignTable(rows)
}

// ChartSVG svg-код карты нужного варианта
func (s *Service) ChartSVG(ctx context.Context, moment domain.BirthMoment, variant service.ChartVariant) (string, error) {
	endpoint := astroApiAdapter.HoroscopeSVG
	if variant == service.ChartD9 {
		endpoint = astroApiAdapter.NavamsaSVG
	}

	svg, err := s.client.ChartSVG(ctx, endpoint, s.payload(moment))
	if err != nil {
		return "", fmt.Errorf("failed to get %s chart svg: %w", variant, err)
	}
	return svg, nil
}

// AshtakootScore совместимость пары
func (s *Service) AshtakootScore(ctx context.Context, bride, groom domain.BirthMoment) (*domain.MatchScore, error) {
	res, err := s.client.Ashtakoot(ctx, astroApiAdapter.MatchRequest{
		Female: s.payload(bride),
		Male:   s.payload(groom),
		Config: s.client.Settings(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ashtakoot score: %w", err)
	}

	score := &domain.MatchScore{
		Total: res.TotalScore,
		Max:   res.OutOf,
	}
	if score.Max <= 0 {
		score.Max = domain.AshtakootMax
	}

	known := make(map[string]bool, len(kootOrder))
	for _, k := range kootOrder {
		known[k.key] = true
		if entry, ok := res.Koots[k.key]; ok {
			score.Koots = append(score.Koots, toKoot(k.name, entry))
		}
	}

	// незнакомые факторы в конец, в стабильном порядке
	var extra []string
	for key := range res.Koots {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		name := strings.TrimSuffix(key, "_kootam")
		score.Koots = append(score.Koots, toKoot(name, res.Koots[key]))
	}

	return score, nil
}

func (s *Service) payload(m domain.BirthMoment) astroApiAdapter.BirthPayload {
	return astroApiAdapter.BirthPayload{
		Year:      m.Year,
		Month:     m.Month,
		Date:      m.Day,
		Hours:     m.Hour,
		Minutes:   m.Minute,
		Seconds:   m.Second,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Timezone:  m.Timezone,
		Settings:  s.client.Settings(),
	}
}

// toSignTable без асцендента таблица бесполезна, это ошибка
func toSignTable(rows map[string]astroApiAdapter.PlanetEntry) (*domain.SignTable, error) {
	asc, ok := rows[ascendantKey]
	if !ok {
		return nil, fmt.Errorf("astro API response has no ascendant")
	}

	table := &domain.SignTable{
		AscendantSignID: int(asc.CurrentSign),
		Bodies:          make(map[domain.Planet]domain.BodySign, len(domain.Planets)),
	}
	for _, planet := range domain.Planets {
		row, ok := rows[string(planet)]
		if !ok {
			continue
		}
		table.Bodies[planet] = domain.BodySign{
			SignID:       int(row.CurrentSign),
			IsRetrograde: bool(row.IsRetro),
		}
	}
	return table, nil
}

func toKoot(name string, entry astroApiAdapter.KootEntry) domain.KootScore {
	return domain.KootScore{
		Name:        name,
		Obtained:    entry.Score,
		Max:         entry.OutOf,
		Description: entry.Description,
	}
}
