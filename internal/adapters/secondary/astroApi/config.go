package astroApi

import "time"

type Config struct {
	BaseURL          string        `envconfig:"BASE_URL" default:"https://json.freeastrologyapi.com"`
	ApiKey           string        `envconfig:"API_KEY"`
	SkipSSL          string        `envconfig:"SKIP_SSL"` // строка, а не bool: так проще задавать в панелях деплоя
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Ayanamsha        string        `envconfig:"AYANAMSHA" default:"lahiri"`
	ObservationPoint string        `envconfig:"OBSERVATION_POINT" default:"topocentric"`
	Language         string        `envconfig:"LANGUAGE" default:"en"`
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}
