package domain

// Degradation причина, по которой часть карты построена на подставных данных
type Degradation string

const (
	DegradedGeocodeFallback  Degradation = "geocode_fallback"
	DegradedTimezoneFallback Degradation = "timezone_fallback"
	DegradedMockPositions    Degradation = "mock_positions"
	DegradedNavamsaFallback  Degradation = "navamsa_fallback"
	DegradedInvalidSignID    Degradation = "invalid_sign_id"
	DegradedChartSVGMissing  Degradation = "chart_svg_missing"
)

// Degradations упорядоченный набор без повторов
type Degradations []Degradation

func (d Degradations) Has(reason Degradation) bool {
	for _, r := range d {
		if r == reason {
			return true
		}
	}
	return false
}

// Add возвращает набор с reason, дубликаты не добавляются
func (d Degradations) Add(reason Degradation) Degradations {
	if d.Has(reason) {
		return d
	}
	return append(d, reason)
}

func (d Degradations) Merge(other Degradations) Degradations {
	out := d
	for _, r := range other {
		out = out.Add(r)
	}
	return out
}

// Synthetic true, если планетные позиции не получены от API
func (d Degradations) Synthetic() bool {
	return d.Has(DegradedMockPositions)
}
