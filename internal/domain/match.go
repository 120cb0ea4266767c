package domain

// KootScore один из восьми факторов аштакута
type KootScore struct {
	Name        string  `json:"name"`
	Obtained    float64 `json:"obtained"`
	Max         float64 `json:"max"`
	Description string  `json:"description,omitempty"`
}

// MatchScore совместимость пары по аштакуте, максимум 36
type MatchScore struct {
	Total        float64      `json:"total"`
	Max          float64      `json:"max"`
	Koots        []KootScore  `json:"koots"`
	Conclusion   string       `json:"conclusion,omitempty"`
	Degradations Degradations `json:"degradations,omitempty"`
}

const AshtakootMax = 36

// MatchInput пара для сопоставления
type MatchInput struct {
	Bride BirthInput `json:"bride"`
	Groom BirthInput `json:"groom"`
}

// MatchVerdict традиционная градация суммы баллов из 36
func MatchVerdict(total float64) string {
	switch {
	case total < 18:
		return "not recommended"
	case total < 25:
		return "acceptable"
	case total < 33:
		return "very good"
	default:
		return "excellent"
	}
}
