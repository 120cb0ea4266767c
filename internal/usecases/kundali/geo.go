package kundali

import (
	"context"
	"strings"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/tzoffset"
)

// resolvedPlace координаты и смещение, по которым строится запрос к астро-API
type resolvedPlace struct {
	Latitude  float64
	Longitude float64
	Timezone  float64
	Place     string
}

// resolvePlace геокодинг и часовой пояс. Не падает: при ошибках подставляет Нью-Дели / IST и помечает деградацию
func (s *Service) resolvePlace(ctx context.Context, in domain.BirthInput) (resolvedPlace, domain.Degradations) {
	var degradations domain.Degradations

	place := resolvedPlace{Place: strings.TrimSpace(in.Location)}
	var geo *domain.GeoLocation

	if in.HasCoordinates() {
		place.Latitude = *in.Lat
		place.Longitude = *in.Lon
	} else {
		found, err := s.AstroAPIService.Geocode(ctx, in.Location)
		if err != nil {
			s.Log.Warn("geocoding failed, using default location",
				"error", err,
				"location", in.Location,
			)
		}
		if found == nil {
			fallback := domain.DefaultLocation()
			found = &fallback
			degradations = degradations.Add(domain.DegradedGeocodeFallback)
		}
		geo = found
		place.Latitude = geo.Latitude
		place.Longitude = geo.Longitude
		if geo.DisplayName != "" {
			place.Place = geo.DisplayName
		}
	}

	if in.Tzone != nil {
		place.Timezone = *in.Tzone
		return place, degradations
	}

	offset, ok := s.resolveOffset(geo, in.Date, in.Time)
	if !ok {
		s.Log.Warn("timezone offset fallback to IST",
			"location", in.Location,
			"offset", offset,
		)
		degradations = degradations.Add(domain.DegradedTimezoneFallback)
	}
	place.Timezone = offset

	return place, degradations
}

// resolveOffset сначала база зон по имени (учитывает DST на дату рождения), потом смещение от провайдера
func (s *Service) resolveOffset(geo *domain.GeoLocation, date, clock string) (float64, bool) {
	if geo == nil {
		return tzoffset.DefaultOffset, false
	}

	offset, err := tzoffset.Resolve(geo.TimezoneName, date, clock)
	if err == nil && tzoffset.Valid(offset) {
		return offset, true
	}

	if geo.TimezoneOffsetHours != nil && tzoffset.Valid(*geo.TimezoneOffsetHours) {
		return *geo.TimezoneOffsetHours, true
	}

	s.Log.Debug("timezone resolution failed",
		"timezone", geo.TimezoneName,
		"error", err,
	)
	return tzoffset.DefaultOffset, false
}
