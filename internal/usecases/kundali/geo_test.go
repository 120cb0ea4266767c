package kundali

import (
	"context"
	"testing"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestResolvePlaceUsesZoneDatabase(t *testing.T) {
	astro := &astroStub{geo: &domain.GeoLocation{
		Latitude:     40.7128,
		Longitude:    -74.006,
		TimezoneName: "America/New_York",
		DisplayName:  "New York, USA",
	}}
	svc := newTestService(astro, &narrativeStub{})

	in := birthInput()
	in.Location = "New York"
	in.Date = "2001-07-04"

	place, degradations := svc.resolvePlace(context.Background(), in)
	require.Empty(t, degradations)
	require.Equal(t, -4.0, place.Timezone)
	require.Equal(t, "New York, USA", place.Place)

	in.Date = "2001-01-04"
	place, _ = svc.resolvePlace(context.Background(), in)
	require.Equal(t, -5.0, place.Timezone)
}

func TestResolvePlaceProviderOffsetWhenZoneUnknown(t *testing.T) {
	offset := 5.75
	astro := &astroStub{geo: &domain.GeoLocation{Latitude: 27.7, Longitude: 85.3, TimezoneName: "Nowhere/Zone", TimezoneOffsetHours: &offset}}
	svc := newTestService(astro, &narrativeStub{})

	place, degradations := svc.resolvePlace(context.Background(), birthInput())
	require.Empty(t, degradations)
	require.Equal(t, 5.75, place.Timezone)
}

func TestResolvePlaceTimezoneFallback(t *testing.T) {
	astro := &astroStub{geo: &domain.GeoLocation{Latitude: 1, Longitude: 2, TimezoneName: ""}}
	svc := newTestService(astro, &narrativeStub{})

	place, degradations := svc.resolvePlace(context.Background(), birthInput())
	require.Equal(t, domain.Degradations{domain.DegradedTimezoneFallback}, degradations)
	require.Equal(t, 5.5, place.Timezone)
}

func TestResolvePlaceSkipsGeocodingForKnownCoordinates(t *testing.T) {
	astro := &astroStub{}
	svc := newTestService(astro, &narrativeStub{})

	lat, lon, tz := 51.5, -0.12, 1.0
	in := birthInput()
	in.Lat, in.Lon, in.Tzone = &lat, &lon, &tz

	place, degradations := svc.resolvePlace(context.Background(), in)
	require.Empty(t, degradations)
	require.Zero(t, astro.geocodeCalls.Load())
	require.Equal(t, resolvedPlace{Latitude: 51.5, Longitude: -0.12, Timezone: 1, Place: "Mumbai"}, place)

	in.Tzone = nil
	_, degradations = svc.resolvePlace(context.Background(), in)
	require.True(t, degradations.Has(domain.DegradedTimezoneFallback))
}

func TestResolvePlaceNotFound(t *testing.T) {
	svc := newTestService(&astroStub{}, &narrativeStub{})

	place, degradations := svc.resolvePlace(context.Background(), birthInput())
	require.Equal(t, domain.Degradations{domain.DegradedGeocodeFallback}, degradations)
	require.Equal(t, domain.DefaultLatitude, place.Latitude)
	require.Equal(t, 5.5, place.Timezone)
}
