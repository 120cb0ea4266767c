package kundali

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/admin/kundali-service/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/admin/kundali-service/internal/ports/service"
	savedChartRepo "github.com/admin/kundali-service/internal/repository/saved_chart"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

type astroStub struct {
	geo      *domain.GeoLocation
	geoErr   error
	d1       *domain.SignTable
	d1Err    error
	d9       *domain.SignTable
	d9Err    error
	svgErr   error
	match    *domain.MatchScore
	matchErr error

	geocodeCalls atomic.Int32
	mu           sync.Mutex
	moments      []domain.BirthMoment
}

func (a *astroStub) Geocode(_ context.Context, place string) (*domain.GeoLocation, error) {
	a.geocodeCalls.Add(1)
	return a.geo, a.geoErr
}

func (a *astroStub) PlanetSigns(_ context.Context, moment domain.BirthMoment) (*domain.SignTable, error) {
	a.mu.Lock()
	a.moments = append(a.moments, moment)
	a.mu.Unlock()
	return a.d1, a.d1Err
}

func (a *astroStub) NavamsaSigns(_ context.Context, _ domain.BirthMoment) (*domain.SignTable, error) {
	return a.d9, a.d9Err
}

func (a *astroStub) ChartSVG(_ context.Context, _ domain.BirthMoment, variant service.ChartVariant) (string, error) {
	if a.svgErr != nil {
		return "", a.svgErr
	}
	return "<svg id=\"" + string(variant) + "\"></svg>", nil
}

func (a *astroStub) AshtakootScore(_ context.Context, _, _ domain.BirthMoment) (*domain.MatchScore, error) {
	return a.match, a.matchErr
}

type narrativeStub struct {
	calls     atomic.Int32
	generate  func(ctx context.Context, call int32, facts service.NarrativeFacts) (*domain.Narrative, error)
	lastFacts service.NarrativeFacts
}

func (n *narrativeStub) Generate(ctx context.Context, facts service.NarrativeFacts) (*domain.Narrative, error) {
	call := n.calls.Add(1)
	if n.generate != nil {
		return n.generate(ctx, call, facts)
	}
	n.lastFacts = facts
	return sampleNarrative(), nil
}

type s3Stub struct {
	mu    sync.Mutex
	paths []string
}

func (s *s3Stub) PutFile(_ context.Context, path string, _ []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return nil
}

func (s *s3Stub) GetFile(context.Context, string) ([]byte, error) { return nil, nil }

func (s *s3Stub) GetPresignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://minio.local/" + path, nil
}

type producerStub struct {
	keys   []string
	values [][]byte
}

func (p *producerStub) Send(_ context.Context, key string, value []byte) error {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func (p *producerStub) Close() error { return nil }

// capricornTable асцендент Козерог, Луна в Тельце
func capricornTable() *domain.SignTable {
	return &domain.SignTable{
		AscendantSignID: 10,
		Bodies: map[domain.Planet]domain.BodySign{
			domain.PlanetSun:     {SignID: 5},
			domain.PlanetMoon:    {SignID: 2},
			domain.PlanetMars:    {SignID: 7},
			domain.PlanetMercury: {SignID: 5},
			domain.PlanetJupiter: {SignID: 3},
			domain.PlanetVenus:   {SignID: 6},
			domain.PlanetSaturn:  {SignID: 10, IsRetrograde: true},
			domain.PlanetRahu:    {SignID: 12, IsRetrograde: true},
			domain.PlanetKetu:    {SignID: 6, IsRetrograde: true},
		},
	}
}

func navamsaTable() *domain.SignTable {
	return &domain.SignTable{
		AscendantSignID: 4,
		Bodies: map[domain.Planet]domain.BodySign{
			domain.PlanetSun:     {SignID: 1},
			domain.PlanetMoon:    {SignID: 4},
			domain.PlanetMars:    {SignID: 8},
			domain.PlanetMercury: {SignID: 9},
			domain.PlanetJupiter: {SignID: 12},
			domain.PlanetVenus:   {SignID: 2},
			domain.PlanetSaturn:  {SignID: 11},
			domain.PlanetRahu:    {SignID: 3},
			domain.PlanetKetu:    {SignID: 9},
		},
	}
}

func sampleNarrative() *domain.Narrative {
	return &domain.Narrative{
		Basic: domain.BasicDetails{
			Ascendant: "Aries",
			MoonSign:  "Leo",
			SunSign:   "Pisces",
			Nakshatra: "Rohini 3",
		},
		Panchang:    domain.Panchang{Tithi: "Shukla Dashami", Vara: "Monday"},
		Remedies:    []string{"Offer water to the Sun at sunrise"},
		Predictions: domain.Predictions{Career: "Steady rise", Love: "Harmony", Health: "Good", Finance: "Stable"},
	}
}

func mumbai() *domain.GeoLocation {
	return &domain.GeoLocation{
		Latitude:     19.076,
		Longitude:    72.8777,
		TimezoneName: "Asia/Kolkata",
		DisplayName:  "Mumbai, Maharashtra, India",
	}
}

func birthInput() domain.BirthInput {
	return domain.BirthInput{Name: "Asha", Date: "1992-03-14", Time: "05:20", Location: "Mumbai", Language: "en"}
}

func newTestService(astro *astroStub, narrative *narrativeStub) *Service {
	store := inmemory.NewCache()
	svc := New(
		astro,
		narrative,
		savedChartRepo.NewKV(store, logger.Discard()),
		inmemory.NewRequestCache(),
		store,
		logger.Discard(),
	)
	svc.Cache = store
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func viewState(t *testing.T, svc *Service, sessionID string) domain.ViewState {
	t.Helper()
	state, err := svc.ViewState(context.Background(), sessionID)
	require.NoError(t, err)
	return state
}
