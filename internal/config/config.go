package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys
const (
	// Server Configuration
	Port = "PORT"

	// Logging Configuration
	LogLevel = "LOG_LEVEL"

	// Orderbook Configuration
	MinIncreasePercent  = "MIN_INCREASE_PERCENT"
	MaxSearchIterations = "MAX_SEARCH_ITERATIONS"
	MaxCascade          = "MAX_CASCADE"
	MaxDeletions        = "MAX_DELETIONS"

	// Rent Configuration
	RentPeriod        = "RENT_PERIOD"
	MinRentalDuration = "MIN_RENTAL_DURATION"

	// Events Configuration
	EventsBackend = "EVENTS_BACKEND"
	RedisAddr     = "REDIS_ADDR"
	RedisPassword = "REDIS_PASSWORD"
	RedisDB       = "REDIS_DB"
	KafkaBrokers  = "KAFKA_BROKERS"
	KafkaTopic    = "KAFKA_TOPIC"

	// Snapshot Configuration
	SnapshotDir      = "SNAPSHOT_DIR"
	SnapshotInterval = "SNAPSHOT_INTERVAL"
)

// Event backends
const (
	BackendLog   = "log"
	BackendRedis = "redis"
	BackendKafka = "kafka"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Orderbook OrderbookConfig
	Rent      RentConfig
	Events    EventsConfig
	Snapshot  SnapshotConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// OrderbookConfig bounds the work of a single orderbook call
type OrderbookConfig struct {
	MinIncreasePercent  uint64
	MaxSearchIterations int
	MaxCascade          int
	MaxDeletions        int
}

// RentConfig holds the rent schedule
type RentConfig struct {
	Period            time.Duration
	MinRentalDuration time.Duration
}

// EventsConfig selects and configures the event publisher
type EventsConfig struct {
	Backend string
	Redis   RedisConfig
	Kafka   KafkaConfig
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// SnapshotConfig holds snapshot persistence settings; an empty Dir disables it
type SnapshotConfig struct {
	Dir      string
	Interval time.Duration
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetString(Port),
		},
		Logging: LoggingConfig{
			Level: v.GetString(LogLevel),
		},
		Orderbook: OrderbookConfig{
			MinIncreasePercent:  v.GetUint64(MinIncreasePercent),
			MaxSearchIterations: v.GetInt(MaxSearchIterations),
			MaxCascade:          v.GetInt(MaxCascade),
			MaxDeletions:        v.GetInt(MaxDeletions),
		},
		Rent: RentConfig{
			Period:            v.GetDuration(RentPeriod),
			MinRentalDuration: v.GetDuration(MinRentalDuration),
		},
		Events: EventsConfig{
			Backend: strings.ToLower(v.GetString(EventsBackend)),
			Redis: RedisConfig{
				Addr:     v.GetString(RedisAddr),
				Password: v.GetString(RedisPassword),
				DB:       v.GetInt(RedisDB),
			},
			Kafka: KafkaConfig{
				Brokers: splitList(v.GetString(KafkaBrokers)),
				Topic:   v.GetString(KafkaTopic),
			},
		},
		Snapshot: SnapshotConfig{
			Dir:      v.GetString(SnapshotDir),
			Interval: v.GetDuration(SnapshotInterval),
		},
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault(Port, "8080")
	v.SetDefault(LogLevel, "info")

	v.SetDefault(MinIncreasePercent, 10)
	v.SetDefault(MaxSearchIterations, 100)
	v.SetDefault(MaxCascade, 10)
	v.SetDefault(MaxDeletions, 70)

	v.SetDefault(RentPeriod, "24h")
	v.SetDefault(MinRentalDuration, "1h")

	v.SetDefault(EventsBackend, BackendLog)
	v.SetDefault(RedisAddr, "localhost:6379")
	v.SetDefault(RedisPassword, "")
	v.SetDefault(RedisDB, 0)
	v.SetDefault(KafkaBrokers, "localhost:9092")
	v.SetDefault(KafkaTopic, "orderbook-events")

	v.SetDefault(SnapshotDir, "")
	v.SetDefault(SnapshotInterval, "5m")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Orderbook.MaxSearchIterations <= 0 || c.Orderbook.MaxCascade <= 0 || c.Orderbook.MaxDeletions <= 0 {
		return fmt.Errorf("orderbook limits must be positive")
	}
	if c.Rent.Period <= 0 {
		return fmt.Errorf("rent period must be positive")
	}
	if c.Rent.MinRentalDuration < 0 {
		return fmt.Errorf("minimum rental duration must not be negative")
	}

	switch c.Events.Backend {
	case BackendLog:
	case BackendRedis:
		if c.Events.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis event backend")
		}
	case BackendKafka:
		if len(c.Events.Kafka.Brokers) == 0 || c.Events.Kafka.Topic == "" {
			return fmt.Errorf("kafka brokers and topic are required for the kafka event backend")
		}
	default:
		return fmt.Errorf("unknown event backend %q", c.Events.Backend)
	}

	if c.Snapshot.Dir != "" && c.Snapshot.Interval <= 0 {
		return fmt.Errorf("snapshot interval must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
