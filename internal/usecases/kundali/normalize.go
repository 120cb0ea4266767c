package kundali

import "github.com/admin/kundali-service/internal/domain"

// computedChart авторитетные позиции D1/D9, поверх них накладывается текст модели
type computedChart struct {
	D1AscendantSignID int
	D9AscendantSignID int
	D1                []domain.PlanetaryPosition
	D9                []domain.PlanetaryPosition
}

// normalizeCharts всегда девять позиций в каждой карте.
// Невалидный знак заменяется значением из mock-таблицы, отсутствующая в D9 планета берёт знак из D1.
func normalizeCharts(d1, d9 *domain.SignTable) (*computedChart, domain.Degradations) {
	var degradations domain.Degradations
	if d1 == nil {
		d1 = mockSignTable()
		degradations = degradations.Add(domain.DegradedMockPositions)
	}

	d1Asc := d1.AscendantSignID
	if !domain.ValidSignID(d1Asc) {
		d1Asc = mockAscendantSignID
		degradations = degradations.Add(domain.DegradedInvalidSignID)
	}

	out := &computedChart{
		D1AscendantSignID: d1Asc,
		D1:                make([]domain.PlanetaryPosition, 0, len(domain.Planets)),
		D9:                make([]domain.PlanetaryPosition, 0, len(domain.Planets)),
	}

	d1Bodies := make(map[domain.Planet]domain.BodySign, len(domain.Planets))
	for _, planet := range domain.Planets {
		body, ok := d1.Bodies[planet]
		if !ok || !domain.ValidSignID(body.SignID) {
			body = domain.BodySign{SignID: mockSigns[planet]}
			degradations = degradations.Add(domain.DegradedInvalidSignID)
		}
		d1Bodies[planet] = body
		out.D1 = append(out.D1, position(planet, d1Asc, body))
	}

	if d9 == nil {
		d9 = &domain.SignTable{AscendantSignID: d1Asc}
	}

	d9Asc := d9.AscendantSignID
	if !domain.ValidSignID(d9Asc) {
		d9Asc = d1Asc
		degradations = degradations.Add(domain.DegradedNavamsaFallback)
	}
	out.D9AscendantSignID = d9Asc

	for _, planet := range domain.Planets {
		body, ok := d9.Bodies[planet]
		switch {
		case !ok:
			body = d1Bodies[planet]
			degradations = degradations.Add(domain.DegradedNavamsaFallback)
		case !domain.ValidSignID(body.SignID):
			body.SignID = mockSigns[planet]
			degradations = degradations.Add(domain.DegradedInvalidSignID)
		}
		out.D9 = append(out.D9, position(planet, d9Asc, body))
	}

	return out, degradations
}

func position(planet domain.Planet, ascendantSignID int, body domain.BodySign) domain.PlanetaryPosition {
	return domain.PlanetaryPosition{
		Planet:       planet,
		SignID:       body.SignID,
		SignName:     domain.SignName(body.SignID),
		House:        domain.HouseFromAscendant(ascendantSignID, body.SignID),
		IsRetrograde: body.IsRetrograde,
	}
}

func findPosition(positions []domain.PlanetaryPosition, planet domain.Planet) domain.PlanetaryPosition {
	for _, p := range positions {
		if p.Planet == planet {
			return p
		}
	}
	return domain.PlanetaryPosition{}
}

func placements(positions []domain.PlanetaryPosition) []string {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		out = append(out, p.Placement())
	}
	return out
}
