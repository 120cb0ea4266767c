package astroApi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Settings общие настройки расчёта
type Settings struct {
	ObservationPoint string `json:"observation_point"`
	Ayanamsha        string `json:"ayanamsha"`
	Language         string `json:"language,omitempty"`
}

// BirthPayload тело запроса для всех расчётных эндпоинтов
type BirthPayload struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Date      int      `json:"date"`
	Hours     int      `json:"hours"`
	Minutes   int      `json:"minutes"`
	Seconds   int      `json:"seconds"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timezone  float64  `json:"timezone"`
	Settings  Settings `json:"settings"`
}

// GeoRequest запрос геокодинга
type GeoRequest struct {
	Location string `json:"location"`
}

// MatchRequest запрос аштакуты
type MatchRequest struct {
	Female BirthPayload `json:"female"`
	Male   BirthPayload `json:"male"`
	Config Settings     `json:"config"`
}

// envelope общая обёртка ответов API
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Output     json.RawMessage `json:"output"`
}

// PlanetEntry строка планетной таблицы
type PlanetEntry struct {
	Name        string   `json:"name"`
	CurrentSign FlexInt  `json:"current_sign"`
	IsRetro     FlexBool `json:"isRetro"`
	FullDegree  float64  `json:"fullDegree"`
	NormDegree  float64  `json:"normDegree"`
}

// GeoEntry результат геокодинга
type GeoEntry struct {
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	TimezoneOffset *float64 `json:"timezone_offset,omitempty"`
	Timezone       string   `json:"timezone"`
	CompleteName   string   `json:"complete_name"`
}

// KootEntry один фактор аштакуты
type KootEntry struct {
	Score       float64 `json:"score"`
	OutOf       float64 `json:"out_of"`
	Description string  `json:"description,omitempty"`
}

// MatchResult разобранный ответ аштакуты
type MatchResult struct {
	Koots      map[string]KootEntry
	TotalScore float64
	OutOf      float64
}

// FlexInt API отдаёт номера знаков то числом, то строкой
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", raw, err)
	}
	*f = FlexInt(int(v))
	return nil
}

// FlexBool isRetro приходит как "true"/"false" или как bool
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch raw {
	case "true", "1", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// decodePlanetTable принимает и {"0":{...}}, и [{"0":{...}}, {...}]
func decodePlanetTable(raw json.RawMessage) (map[string]PlanetEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("empty planet table")
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode planet table array: %w", err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("empty planet table")
		}
		trimmed = bytes.TrimSpace(items[0])
	}

	var rows map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode planet table: %w", err)
	}

	out := make(map[string]PlanetEntry, len(rows))
	for _, row := range rows {
		var entry PlanetEntry
		if err := json.Unmarshal(row, &entry); err != nil || entry.Name == "" {
			// посторонние ключи вроде "debug" пропускаем
			continue
		}
		out[entry.Name] = entry
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("planet table has no entries")
	}
	return out, nil
}

func decodeMatch(raw json.RawMessage) (*MatchResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode match output: %w", err)
	}

	res := &MatchResult{Koots: make(map[string]KootEntry)}
	for key, value := range fields {
		switch {
		case key == "total_score":
			if err := json.Unmarshal(value, &res.TotalScore); err != nil {
				return nil, fmt.Errorf("decode total_score: %w", err)
			}
		case key == "out_of":
			if err := json.Unmarshal(value, &res.OutOf); err != nil {
				return nil, fmt.Errorf("decode out_of: %w", err)
			}
		case strings.HasSuffix(key, "_kootam"):
			var koot KootEntry
			if err := json.Unmarshal(value, &koot); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			res.Koots[key] = koot
		}
	}
	if len(res.Koots) == 0 {
		return nil, fmt.Errorf("match output has no koots")
	}
	return res, nil
}
