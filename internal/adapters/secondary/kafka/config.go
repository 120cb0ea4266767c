package kafka

import "strings"

// Config конфигурация Kafka producer
type Config struct {
	Brokers          string `envconfig:"BROKERS"`                         // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"kundali.charts"`  // топик событий карт
	ClientID         string `envconfig:"CLIENT_ID" default:"kundali-api"` // client.id в метаданных брокера
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"`               // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`                  // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// IsConfigured без брокеров события не публикуются
func (c *Config) IsConfigured() bool {
	return c != nil && strings.TrimSpace(c.Brokers) != ""
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
