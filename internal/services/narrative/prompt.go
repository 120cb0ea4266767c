package narrative

import (
	"strings"

	"github.com/admin/kundali-service/internal/ports/service"
)

const systemPrompt = "You are an experienced Vedic astrologer. " +
	"Interpret the chart facts you are given; never recompute or contradict planetary signs or houses. " +
	"Answer only with JSON that matches the response schema."

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames["en"]
}

func buildPrompt(facts service.NarrativeFacts) string {
	var b strings.Builder

	b.WriteString("Prepare a complete Kundali reading")
	if facts.Name != "" {
		b.WriteString(" for ")
		b.WriteString(facts.Name)
	}
	b.WriteString(".\n\n")

	b.WriteString("Ascendant (Lagna): ")
	b.WriteString(facts.AscendantSign)
	b.WriteString("\nPlanetary placements:\n")
	for _, p := range facts.Placements {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}

	b.WriteString("\nCover panchang, doshas, gemstones, yogas, remedies, a per-planet analysis, ")
	b.WriteString("the running dasha and predictions for career, love, health and finance.\n")
	b.WriteString("Write every text field in ")
	b.WriteString(languageName(facts.Language))
	b.WriteString(".")

	return b.String()
}
