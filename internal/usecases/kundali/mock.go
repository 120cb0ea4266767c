package kundali

import "github.com/admin/kundali-service/internal/domain"

const mockAscendantSignID = 1

// mockSigns фиксированная таблица для деградированного режима, когда астро-API недоступен
var mockSigns = map[domain.Planet]int{
	domain.PlanetSun:     5,
	domain.PlanetMoon:    2,
	domain.PlanetMars:    1,
	domain.PlanetMercury: 6,
	domain.PlanetJupiter: 9,
	domain.PlanetVenus:   4,
	domain.PlanetSaturn:  11,
	domain.PlanetRahu:    3,
	domain.PlanetKetu:    9,
}

// mockSignTable каждый раз новая копия, вызывающий может её менять
func mockSignTable() *domain.SignTable {
	table := &domain.SignTable{
		AscendantSignID: mockAscendantSignID,
		Bodies:          make(map[domain.Planet]domain.BodySign, len(mockSigns)),
	}
	for planet, sign := range mockSigns {
		table.Bodies[planet] = domain.BodySign{SignID: sign}
	}
	return table
}
