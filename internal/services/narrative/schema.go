package narrative

import "google.golang.org/genai"

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func dosha(desc string) *genai.Schema {
	return object(map[string]*genai.Schema{
		"present":     {Type: genai.TypeBoolean},
		"description": str(desc),
	}, "present", "description")
}

// chartSchema структура ответа модели, совпадает с domain.Narrative
func chartSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"basicDetails": object(map[string]*genai.Schema{
			"ascendant": str("Ascendant sign name"),
			"moonSign":  str("Moon sign name"),
			"sunSign":   str("Sun sign name"),
			"nakshatra": str("Birth nakshatra with pada"),
		}, "nakshatra"),
		"panchang": object(map[string]*genai.Schema{
			"tithi":     str("Lunar day"),
			"vara":      str("Weekday"),
			"nakshatra": str("Nakshatra at birth"),
			"yoga":      str("Panchang yoga"),
			"karana":    str("Karana"),
		}, "tithi", "vara", "nakshatra", "yoga", "karana"),
		"doshas": object(map[string]*genai.Schema{
			"manglik":  dosha("Mangal dosha assessment"),
			"kaalSarp": dosha("Kaal Sarp dosha assessment"),
			"sadesati": dosha("Current Sade Sati status"),
		}, "manglik", "kaalSarp", "sadesati"),
		"gemstones": object(map[string]*genai.Schema{
			"life":    str("Life stone"),
			"lucky":   str("Lucky stone"),
			"benefic": str("Benefic stone"),
		}, "life", "lucky", "benefic"),
		"yogas": {
			Type: genai.TypeArray,
			Items: object(map[string]*genai.Schema{
				"name":        str("Yoga name"),
				"description": str("Effect of the yoga"),
			}, "name", "description"),
		},
		"remedies": {Type: genai.TypeArray, Items: str("One practical remedy")},
		"planetAnalysis": {
			Type: genai.TypeArray,
			Items: object(map[string]*genai.Schema{
				"planet":   str("Planet name"),
				"analysis": str("Interpretation of the placement"),
			}, "planet", "analysis"),
		},
		"dasha": object(map[string]*genai.Schema{
			"mahadasha":   str("Current mahadasha lord"),
			"antardasha":  str("Current antardasha lord"),
			"period":      str("Date range of the current period"),
			"description": str("What the period brings"),
		}, "mahadasha", "period", "description"),
		"predictions": object(map[string]*genai.Schema{
			"career":  str("Career prediction"),
			"love":    str("Love and marriage prediction"),
			"health":  str("Health prediction"),
			"finance": str("Finance prediction"),
		}, "career", "love", "health", "finance"),
	}, "basicDetails", "panchang", "doshas", "gemstones", "yogas", "remedies", "planetAnalysis", "dasha", "predictions")
}
