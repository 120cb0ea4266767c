package domain

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// BirthInput данные формы рождения, приходят от клиента или из сохранённой карты
type BirthInput struct {
	Name     string   `json:"name" validate:"max=100"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string   `json:"time" validate:"required,datetime=15:04"`
	Location string   `json:"location" validate:"max=200"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lon      *float64 `json:"lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Tzone    *float64 `json:"tzone,omitempty" validate:"omitempty,gte=-12,lte=14"`
	Language string   `json:"language,omitempty" validate:"omitempty,oneof=en hi ta te bn mr gu kn ml"`
}

// Validate проверяет форму. Нужно либо место рождения, либо обе координаты
func (b *BirthInput) Validate() error {
	if err := getValidator().Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBirthData, err)
	}
	if (b.Lat == nil) != (b.Lon == nil) {
		return fmt.Errorf("%w: lat and lon must be set together", ErrInvalidBirthData)
	}
	if b.Lat == nil && strings.TrimSpace(b.Location) == "" {
		return fmt.Errorf("%w: location or coordinates are required", ErrInvalidBirthData)
	}
	return nil
}

// HasCoordinates координаты уже известны (например, сохранённая карта), геокодинг не нужен
func (b *BirthInput) HasCoordinates() bool {
	return b.Lat != nil && b.Lon != nil
}

func (b *BirthInput) LanguageOrDefault() string {
	if b.Language == "" {
		return "en"
	}
	return b.Language
}

// BirthMoment полностью разрешённые параметры запроса к астро-API
type BirthMoment struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Second    int
	Latitude  float64
	Longitude float64
	Timezone  float64
}

// NewBirthMoment собирает момент из локальных даты/времени и места
func NewBirthMoment(date, clock string, lat, lon, tz float64) (BirthMoment, error) {
	local, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(clock))
	if err != nil {
		return BirthMoment{}, fmt.Errorf("%w: %v", ErrInvalidBirthData, err)
	}
	m := BirthMoment{
		Year:      local.Year(),
		Month:     int(local.Month()),
		Day:       local.Day(),
		Hour:      local.Hour(),
		Minute:    local.Minute(),
		Latitude:  lat,
		Longitude: lon,
		Timezone:  tz,
	}
	if err := m.Validate(); err != nil {
		return BirthMoment{}, err
	}
	return m, nil
}

// Validate отсекает NaN/Inf до отправки запроса
func (m BirthMoment) Validate() error {
	for name, v := range map[string]float64{
		"latitude":  m.Latitude,
		"longitude": m.Longitude,
		"timezone":  m.Timezone,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidCoordinates, name)
		}
	}
	return nil
}

type BasicDetails struct {
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Place        string  `json:"place"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     float64 `json:"timezone"`
	Ascendant    string  `json:"ascendant"`
	MoonSign     string  `json:"moonSign"`
	SunSign      string  `json:"sunSign"`
	Nakshatra    string  `json:"nakshatra"`
	NavamsaLagna string  `json:"navamsaLagna"`
}

type Panchang struct {
	Tithi     string `json:"tithi"`
	Vara      string `json:"vara"`
	Nakshatra string `json:"nakshatra"`
	Yoga      string `json:"yoga"`
	Karana    string `json:"karana"`
}

type DoshaStatus struct {
	Present     bool   `json:"present"`
	Description string `json:"description"`
}

type Doshas struct {
	Manglik  DoshaStatus `json:"manglik"`
	KaalSarp DoshaStatus `json:"kaalSarp"`
	Sadesati DoshaStatus `json:"sadesati"`
}

type Gemstones struct {
	Life    string `json:"life"`
	Lucky   string `json:"lucky"`
	Benefic string `json:"benefic"`
}

type Yoga struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlanetAnalysis struct {
	Planet   string `json:"planet"`
	Analysis string `json:"analysis"`
}

type Dasha struct {
	Mahadasha   string `json:"mahadasha"`
	Antardasha  string `json:"antardasha"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Predictions struct {
	Career  string `json:"career"`
	Love    string `json:"love"`
	Health  string `json:"health"`
	Finance string `json:"finance"`
}

// Narrative интерпретация от генеративной модели. Числовые поля ей не доверяем
type Narrative struct {
	Basic          BasicDetails     `json:"basicDetails"`
	Panchang       Panchang         `json:"panchang"`
	Doshas         Doshas           `json:"doshas"`
	Gemstones      Gemstones        `json:"gemstones"`
	Yogas          []Yoga           `json:"yogas"`
	Remedies       []string         `json:"remedies"`
	PlanetAnalysis []PlanetAnalysis `json:"planetAnalysis"`
	Dasha          Dasha            `json:"dasha"`
	Predictions    Predictions      `json:"predictions"`
}

// ChartImages svg-картинки D1/D9, только декоративные
type ChartImages struct {
	D1SVG string `json:"d1Svg,omitempty"`
	D9SVG string `json:"d9Svg,omitempty"`
	D1URL string `json:"d1Url,omitempty"`
	D9URL string `json:"d9Url,omitempty"`
}

// ChartResponse итоговая карта, отдаётся клиенту и не хранится
type ChartResponse struct {
	RequestID      string              `json:"requestId"`
	Basic          BasicDetails        `json:"basicDetails"`
	Panchang       Panchang            `json:"panchang"`
	D1             []PlanetaryPosition `json:"d1"`
	D9             []PlanetaryPosition `json:"d9"`
	Doshas         Doshas              `json:"doshas"`
	Gemstones      Gemstones           `json:"gemstones"`
	Yogas          []Yoga              `json:"yogas"`
	Remedies       []string            `json:"remedies"`
	PlanetAnalysis []PlanetAnalysis    `json:"planetAnalysis"`
	Dasha          Dasha               `json:"dasha"`
	Predictions    Predictions         `json:"predictions"`
	Charts         ChartImages         `json:"charts"`
	Degradations   Degradations        `json:"degradations"`
	GeneratedAt    time.Time           `json:"generatedAt"`
}

func (c *ChartResponse) IsDegraded() bool {
	return len(c.Degradations) > 0
}
