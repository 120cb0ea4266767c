package domain

// GeoLocation результат геокодинга, живёт только в рамках одного запроса карты
type GeoLocation struct {
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	TimezoneName        string   `json:"timezoneName"`
	TimezoneOffsetHours *float64 `json:"timezoneOffsetHours,omitempty"`
	DisplayName         string   `json:"displayName,omitempty"`
}

const (
	DefaultLatitude     = 28.6139
	DefaultLongitude    = 77.2090
	DefaultTimezoneName = "Asia/Kolkata"
	DefaultTzOffset     = 5.5
)

// DefaultLocation Нью-Дели, подставляется при неудачном геокодинге
func DefaultLocation() GeoLocation {
	offset := DefaultTzOffset
	return GeoLocation{
		Latitude:            DefaultLatitude,
		Longitude:           DefaultLongitude,
		TimezoneName:        DefaultTimezoneName,
		TimezoneOffsetHours: &offset,
		DisplayName:         "New Delhi, India",
	}
}
