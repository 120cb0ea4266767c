package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedChart сохранённые входные данные карты. Результат расчёта не храним
type SavedChart struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   string    `json:"-" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Date      string    `json:"date" db:"birth_date"`
	Time      string    `json:"time" db:"birth_time"`
	Location  string    `json:"location" db:"location"`
	Lat       *float64  `json:"lat,omitempty" db:"lat"`
	Lon       *float64  `json:"lon,omitempty" db:"lon"`
	Tzone     *float64  `json:"tzone,omitempty" db:"tzone"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// NewSavedChart снимок формы; координаты и зона копируются, если уже были известны
func NewSavedChart(ownerID string, in BirthInput) *SavedChart {
	return &SavedChart{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Date:      in.Date,
		Time:      in.Time,
		Location:  in.Location,
		Lat:       copyFloat(in.Lat),
		Lon:       copyFloat(in.Lon),
		Tzone:     copyFloat(in.Tzone),
		CreatedAt: time.Now().UTC(),
	}
}

// ToBirthInput повторная отправка сохранённой карты через тот же пайплайн
func (s *SavedChart) ToBirthInput(language string) BirthInput {
	return BirthInput{
		Name:     s.Name,
		Date:     s.Date,
		Time:     s.Time,
		Location: s.Location,
		Lat:      copyFloat(s.Lat),
		Lon:      copyFloat(s.Lon),
		Tzone:    copyFloat(s.Tzone),
		Language: language,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
