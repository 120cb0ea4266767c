package gemini

import "time"

type Config struct {
	ApiKey      string        `envconfig:"API_KEY"`
	Model       string        `envconfig:"MODEL" default:"gemini-2.5-flash"`
	Temperature float32       `envconfig:"TEMPERATURE" default:"0.7"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"90s"`
}

func (c *Config) IsConfigured() bool {
	return c != nil && c.ApiKey != ""
}
