package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEnvConfig(t *testing.T) {
	t.Setenv("KUNDALI_ASTRO_API_API_KEY", "astro-key")
	t.Setenv("KUNDALI_GEMINI_API_KEY", "gemini-key")
	t.Setenv("KUNDALI_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := NewEnvConfig("kundali")
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "lahiri", cfg.AstroAPI.Ayanamsha)
	require.Equal(t, "kundali.charts", cfg.Kafka.Topic)
	require.True(t, cfg.Kafka.IsConfigured())
	require.False(t, cfg.Postgres.IsConfigured())
	require.False(t, cfg.Redis.IsConfigured())
	require.False(t, cfg.S3.IsConfigured())
	require.False(t, cfg.Alerter.IsConfigured())
}

func TestNewEnvConfigRequiresGemini(t *testing.T) {
	t.Setenv("KUNDALI_GEMINI_API_KEY", "")

	_, err := NewEnvConfig("kundali")
	require.ErrorContains(t, err, "gemini")
}
