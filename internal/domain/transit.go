package domain

import "time"

// TransitSnapshot текущие позиции планет для места по умолчанию, считается джобой раз в сутки
type TransitSnapshot struct {
	CalculatedAt    time.Time           `json:"calculatedAt"`
	Location        string              `json:"location"`
	AscendantSignID int                 `json:"ascendantSignId"`
	Ascendant       string              `json:"ascendant"`
	Positions       []PlanetaryPosition `json:"positions"`
	Degradations    Degradations        `json:"degradations,omitempty"`
}
