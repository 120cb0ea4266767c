package kafka

import "context"

// IEventProducer публикация доменных событий
type IEventProducer interface {
	Send(ctx context.Context, key string, value []byte) error
	Close() error
}
