package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/admin/kundali-service/internal/ports/service"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type generatorStub struct {
	response string
	err      error

	gotSystem string
	gotPrompt string
	gotSchema *genai.Schema
}

func (g *generatorStub) GenerateJSON(_ context.Context, systemPrompt, prompt string, schema *genai.Schema) (string, error) {
	g.gotSystem = systemPrompt
	g.gotPrompt = prompt
	g.gotSchema = schema
	return g.response, g.err
}

const sampleNarrative = `{
	"basicDetails": {"ascendant": "Leo", "nakshatra": "Rohini 2"},
	"panchang": {"tithi": "Shukla Panchami", "vara": "Thursday", "nakshatra": "Rohini", "yoga": "Siddhi", "karana": "Bava"},
	"doshas": {"manglik": {"present": true, "description": "Mars in 7th"}},
	"remedies": [" Chant Gayatri mantra ", "", "Chant Gayatri mantra", "Donate on Saturdays"],
	"predictions": {"career": "Growth", "love": "Stable", "health": "Good", "finance": "Careful"}
}`

func facts() service.NarrativeFacts {
	return service.NarrativeFacts{
		Name:          "Asha",
		AscendantSign: "Capricorn",
		Placements:    []string{"Moon in Taurus (5th House)", "Sun in Leo (8th House)"},
		Language:      "hi",
	}
}

func TestGenerateParsesNarrative(t *testing.T) {
	gen := &generatorStub{response: sampleNarrative}
	svc := New(gen, logger.Discard())

	narrative, err := svc.Generate(context.Background(), facts())
	require.NoError(t, err)

	require.Equal(t, "Rohini 2", narrative.Basic.Nakshatra)
	require.True(t, narrative.Doshas.Manglik.Present)
	require.Equal(t, "Growth", narrative.Predictions.Career)
	require.Equal(t, []string{"Chant Gayatri mantra", "Donate on Saturdays"}, narrative.Remedies)

	require.NotEmpty(t, gen.gotSystem)
	require.Contains(t, gen.gotPrompt, "Ascendant (Lagna): Capricorn")
	require.Contains(t, gen.gotPrompt, "- Moon in Taurus (5th House)")
	require.Contains(t, gen.gotPrompt, "Hindi")
	require.Equal(t, genai.TypeObject, gen.gotSchema.Type)
	require.Contains(t, gen.gotSchema.Properties, "predictions")
}

func TestGenerateStripsCodeFence(t *testing.T) {
	gen := &generatorStub{response: "```json\n" + sampleNarrative + "\n```"}
	svc := New(gen, logger.Discard())

	narrative, err := svc.Generate(context.Background(), facts())
	require.NoError(t, err)
	require.Equal(t, "Stable", narrative.Predictions.Love)
}

func TestGenerateSurfacesFailures(t *testing.T) {
	cases := map[string]*generatorStub{
		"upstream error": {err: errors.New("quota exceeded")},
		"not json":       {response: "The stars say hello"},
		"empty reading":  {response: `{"remedies": ["x"]}`},
	}

	for name, gen := range cases {
		svc := New(gen, logger.Discard())
		narrative, err := svc.Generate(context.Background(), facts())
		require.ErrorIs(t, err, domain.ErrNarrativeUnavailable, name)
		require.Nil(t, narrative, name)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	f := facts()
	f.Language = "xx"
	require.Contains(t, buildPrompt(f), "Write every text field in English.")
}
