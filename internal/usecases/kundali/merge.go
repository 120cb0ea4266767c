package kundali

import (
	"time"

	"github.com/admin/kundali-service/internal/domain"
)

// mergeChart текст берётся у модели, а асцендент, знаки Луны и Солнца и все позиции только из computed
func mergeChart(
	requestID string,
	in domain.BirthInput,
	place resolvedPlace,
	narrative *domain.Narrative,
	computed *computedChart,
	data *chartData,
	degradations domain.Degradations,
	generatedAt time.Time,
) *domain.ChartResponse {
	basic := narrative.Basic
	basic.Name = in.Name
	basic.Date = in.Date
	basic.Time = in.Time
	basic.Place = place.Place
	basic.Latitude = place.Latitude
	basic.Longitude = place.Longitude
	basic.Timezone = place.Timezone
	basic.Ascendant = domain.SignName(computed.D1AscendantSignID)
	basic.MoonSign = findPosition(computed.D1, domain.PlanetMoon).SignName
	basic.SunSign = findPosition(computed.D1, domain.PlanetSun).SignName
	basic.NavamsaLagna = domain.SignName(computed.D9AscendantSignID)

	if degradations == nil {
		degradations = domain.Degradations{}
	}

	return &domain.ChartResponse{
		RequestID:      requestID,
		Basic:          basic,
		Panchang:       narrative.Panchang,
		D1:             computed.D1,
		D9:             computed.D9,
		Doshas:         narrative.Doshas,
		Gemstones:      narrative.Gemstones,
		Yogas:          nonNil(narrative.Yogas),
		Remedies:       nonNil(narrative.Remedies),
		PlanetAnalysis: nonNil(narrative.PlanetAnalysis),
		Dasha:          narrative.Dasha,
		Predictions:    narrative.Predictions,
		Charts: domain.ChartImages{
			D1SVG: data.D1SVG,
			D9SVG: data.D9SVG,
		},
		Degradations: degradations,
		GeneratedAt:  generatedAt.UTC(),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
