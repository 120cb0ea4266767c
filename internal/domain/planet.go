package domain

import "fmt"

// Planet классическая планета ведической астрологии (грахи)
type Planet string

const (
	PlanetSun     Planet = "Sun"
	PlanetMoon    Planet = "Moon"
	PlanetMars    Planet = "Mars"
	PlanetMercury Planet = "Mercury"
	PlanetJupiter Planet = "Jupiter"
	PlanetVenus   Planet = "Venus"
	PlanetSaturn  Planet = "Saturn"
	PlanetRahu    Planet = "Rahu"
	PlanetKetu    Planet = "Ketu"
)

// Planets порядок вывода позиций во всех картах
var Planets = []Planet{
	PlanetSun,
	PlanetMoon,
	PlanetMars,
	PlanetMercury,
	PlanetJupiter,
	PlanetVenus,
	PlanetSaturn,
	PlanetRahu,
	PlanetKetu,
}

func (p Planet) IsValid() bool {
	for _, known := range Planets {
		if p == known {
			return true
		}
	}
	return false
}

var signNames = [12]string{
	"Aries",
	"Taurus",
	"Gemini",
	"Cancer",
	"Leo",
	"Virgo",
	"Libra",
	"Scorpio",
	"Sagittarius",
	"Capricorn",
	"Aquarius",
	"Pisces",
}

// ValidSignID знаки нумеруются с 1 (Овен) до 12 (Рыбы)
func ValidSignID(id int) bool {
	return id >= 1 && id <= 12
}

// SignName возвращает название знака или "" для невалидного id
func SignName(id int) string {
	if !ValidSignID(id) {
		return ""
	}
	return signNames[id-1]
}

// HouseFromAscendant номер дома (1..12), отсчитанный от знака асцендента.
// Оба id должны быть валидны, проверка на вызывающей стороне.
func HouseFromAscendant(ascendantSignID, planetSignID int) int {
	return (planetSignID-ascendantSignID+12)%12 + 1
}

// BodySign знак планеты в сыром ответе астро-API
type BodySign struct {
	SignID       int
	IsRetrograde bool
}

// SignTable знаковая таблица одной карты (D1 или D9) до расчёта домов
type SignTable struct {
	AscendantSignID int
	Bodies          map[Planet]BodySign
}

// PlanetaryPosition итоговая позиция планеты в карте
type PlanetaryPosition struct {
	Planet       Planet `json:"planet"`
	SignID       int    `json:"signId"`
	SignName     string `json:"signName"`
	House        int    `json:"house"`
	IsRetrograde bool   `json:"isRetrograde"`
}

// Placement строка для промпта, например "Moon in Taurus (5th House)"
func (p PlanetaryPosition) Placement() string {
	return fmt.Sprintf("%s in %s (%dth House)", p.Planet, p.SignName, p.House)
}
