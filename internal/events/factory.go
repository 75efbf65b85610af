package events

import (
	"fmt"
	"strings"

	"github.com/qualimetry/qualimetry/internal/config"
)

// Backend identifies a supported event broker.
type Backend string

const (
	BackendNATS   Backend = "nats"
	BackendRedis  Backend = "redis"
	BackendKafka  Backend = "kafka"
	BackendMemory Backend = "memory"
)

// NewPublisher creates a Publisher based on configuration.
// Default is the in-memory publisher if type is not specified.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	backend := Backend(strings.ToLower(cfg.Type))

	if backend == "" {
		backend = BackendMemory
	}

	switch backend {
	case BackendNATS:
		return newNATSPublisher(cfg.URL)

	case BackendRedis:
		return newRedisPublisher(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
		})

	case BackendKafka:
		return newKafkaPublisher(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
		})

	case BackendMemory:
		return NewMemoryPublisher(), nil

	default:
		return nil, fmt.Errorf("unsupported events backend: %s (supported: nats, redis, kafka, memory)", backend)
	}
}
