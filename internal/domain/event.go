package domain

import "time"

const EventChartGenerated = "chart.generated"

// ChartGeneratedEvent уходит в kafka после каждой успешно собранной карты
type ChartGeneratedEvent struct {
	Type         string       `json:"type"`
	RequestID    string       `json:"requestId"`
	SessionID    string       `json:"sessionId"`
	Ascendant    string       `json:"ascendant"`
	MoonSign     string       `json:"moonSign"`
	Language     string       `json:"language"`
	Degradations Degradations `json:"degradations,omitempty"`
	GeneratedAt  time.Time    `json:"generatedAt"`
}
