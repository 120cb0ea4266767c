package kundaliController

import (
	"net/http"
	"strings"

	"github.com/admin/kundali-service/internal/domain"
)

// errorBody тело ответа с ошибкой
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

type errorKind struct {
	status    int
	retryable bool
}

// kinds статус ответа по коду отказа
var kinds = map[string]errorKind{
	domain.FailureInvalidInput:         {http.StatusBadRequest, false},
	domain.FailureNotFound:             {http.StatusNotFound, false},
	domain.FailureSuperseded:           {http.StatusConflict, false},
	domain.FailureNarrativeUnavailable: {http.StatusBadGateway, true},
	domain.FailureMatchUnavailable:     {http.StatusBadGateway, true},
	domain.FailureTransitNotReady:      {http.StatusServiceUnavailable, true},
	domain.FailureInternal:             {http.StatusInternalServerError, true},
}

// messages локализованные тексты; наружу детали ошибки не отдаём
var messages = map[string]map[string]string{
	"en": {
		"invalid_input":         "Please check the birth details and try again.",
		"not_found":             "Saved chart not found.",
		"superseded":            "A newer request replaced this one.",
		"narrative_unavailable": "We could not interpret your chart right now. Please try again.",
		"match_unavailable":     "Compatibility could not be calculated right now. Please try again.",
		"transit_not_ready":     "Current planetary positions are not available yet.",
		"internal":              "Something went wrong. Please try again.",
	},
	"hi": {
		"invalid_input":         "कृपया जन्म विवरण जांचें और फिर से प्रयास करें।",
		"not_found":             "सहेजी गई कुंडली नहीं मिली।",
		"superseded":            "इस अनुरोध को नए अनुरोध ने बदल दिया।",
		"narrative_unavailable": "अभी आपकी कुंडली का विश्लेषण नहीं हो सका। कृपया फिर से प्रयास करें।",
		"match_unavailable":     "अभी गुण मिलान नहीं हो सका। कृपया फिर से प्रयास करें।",
		"transit_not_ready":     "वर्तमान ग्रह स्थिति अभी उपलब्ध नहीं है।",
		"internal":              "कुछ गलत हो गया। कृपया फिर से प्रयास करें।",
	},
}

// localize текст на языке клиента, английский если перевода нет
func localize(lang, code string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	return messages["en"][code]
}
