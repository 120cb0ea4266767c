package astroApi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	astroApiAdapter "github.com/admin/kundali-service/internal/adapters/secondary/astroApi"
	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/admin/kundali-service/internal/ports/service"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) service.IAstroAPIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := astroApiAdapter.NewClient(&astroApiAdapter.Config{BaseURL: srv.URL}, logger.Discard())
	return New(client)
}

func TestGeocodeSkipsNetworkForBlankInput(t *testing.T) {
	var calls atomic.Int32
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, place := range []string{"", "   ", "\t\n"} {
		geo, err := svc.Geocode(context.Background(), place)
		require.NoError(t, err)
		require.Nil(t, geo)
	}
	require.Zero(t, calls.Load())
}

func TestGeocodeFirstMatch(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":200,"output":[
			{"latitude":26.9124,"longitude":75.7873,"timezone":"Asia/Kolkata","complete_name":"Jaipur, Rajasthan, India"},
			{"latitude":1,"longitude":2,"timezone":"UTC","complete_name":"Other"}]}`)
	})

	geo, err := svc.Geocode(context.Background(), "Jaipur")
	require.NoError(t, err)
	require.Equal(t, 26.9124, geo.Latitude)
	require.Equal(t, "Asia/Kolkata", geo.TimezoneName)
	require.Nil(t, geo.TimezoneOffsetHours)
	require.Equal(t, "Jaipur, Rajasthan, India", geo.DisplayName)
}

func TestPlanetSignsRequiresAscendant(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":200,"output":{"1":{"name":"Sun","current_sign":4}}}`)
	})

	_, err := svc.PlanetSigns(context.Background(), domain.BirthMoment{})
	require.ErrorContains(t, err, "no ascendant")
}

func TestPlanetSignsMapsKnownBodies(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":200,"output":[{
			"0":{"name":"Ascendant","current_sign":10},
			"1":{"name":"Sun","current_sign":4},
			"2":{"name":"Moon","current_sign":2},
			"9":{"name":"Rahu","current_sign":3,"isRetro":"true"},
			"10":{"name":"Uranus","current_sign":1}}]}`)
	})

	table, err := svc.PlanetSigns(context.Background(), domain.BirthMoment{})
	require.NoError(t, err)
	require.Equal(t, 10, table.AscendantSignID)
	require.Len(t, table.Bodies, 3)
	require.Equal(t, domain.BodySign{SignID: 3, IsRetrograde: true}, table.Bodies[domain.PlanetRahu])
}

func TestAshtakootScoreOrdersKoots(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":200,"output":{
			"nadi_kootam":{"score":0,"out_of":8},
			"varna_kootam":{"score":1,"out_of":1},
			"zz_kootam":{"score":1,"out_of":1},
			"gana_kootam":{"score":6,"out_of":6},
			"total_score":7}}`)
	})

	score, err := svc.AshtakootScore(context.Background(), domain.BirthMoment{}, domain.BirthMoment{})
	require.NoError(t, err)
	require.Equal(t, 7.0, score.Total)
	require.Equal(t, float64(domain.AshtakootMax), score.Max)

	names := make([]string, 0, len(score.Koots))
	for _, k := range score.Koots {
		names = append(names, k.Name)
	}
	require.Equal(t, []string{"Varna", "Gana", "Nadi", "zz"}, names)
}
