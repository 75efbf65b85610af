package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Events    EventsConfig    `mapstructure:"events"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AuthConfig represents authentication configuration.
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
}

// AnalyticsConfig holds the engine configuration. It is read-only input to
// every engine call; updates replace the whole value, never mutate it.
type AnalyticsConfig struct {
	EnableStatisticalAnalysis bool `mapstructure:"enable_statistical_analysis"`
	EnableTrendForecasting    bool `mapstructure:"enable_trend_forecasting"`
	EnableCorrelationAnalysis bool `mapstructure:"enable_correlation_analysis"`
	EnablePredictiveModeling  bool `mapstructure:"enable_predictive_modeling"`

	StatisticalMethods StatisticalMethodsConfig `mapstructure:"statistical_methods"`
	Forecasting        ForecastingConfig        `mapstructure:"forecasting"`
	Correlation        CorrelationConfig        `mapstructure:"correlation"`
}

// StatisticalMethodsConfig selects which families of statistical methods run.
type StatisticalMethodsConfig struct {
	Descriptive bool `mapstructure:"descriptive"`
	Inferential bool `mapstructure:"inferential"`
	TimeSeries  bool `mapstructure:"time_series"`
	Regression  bool `mapstructure:"regression"`
}

// ForecastingConfig configures the forecaster.
type ForecastingConfig struct {
	Methods              []string `mapstructure:"methods"`          // subset of {linear, exponential, polynomial}
	Horizon              int      `mapstructure:"horizon"`          // default number of periods to forecast
	ConfidenceLevel      float64  `mapstructure:"confidence_level"` // in (0,1)
	SeasonalityDetection bool     `mapstructure:"seasonality_detection"`
}

// CorrelationConfig configures the correlation analyzer.
type CorrelationConfig struct {
	EnablePearson  bool    `mapstructure:"enable_pearson"`
	EnableSpearman bool    `mapstructure:"enable_spearman"`
	EnableKendall  bool    `mapstructure:"enable_kendall"`
	MinCorrelation float64 `mapstructure:"min_correlation"` // in [0,1]
}

// CacheConfig configures the analysis result cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	URL      string        `mapstructure:"url"`      // Redis URL (e.g., redis://localhost:6379)
	Password string        `mapstructure:"password"` // Optional password
	DB       int           `mapstructure:"db"`       // Redis database number
	TTL      time.Duration `mapstructure:"ttl"`      // Result expiry
}

// EventsConfig configures the insight event publisher.
type EventsConfig struct {
	Type     string `mapstructure:"type"`     // nats (default), redis, kafka, memory
	URL      string `mapstructure:"url"`      // Broker URL (e.g., nats://localhost:4222)
	Password string `mapstructure:"password"` // Optional authentication
	Subject  string `mapstructure:"subject"`  // Subject/topic prefix for published events

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`
	RedisStream string `mapstructure:"redis_stream"`

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	return nil
}

// Validate validates server configuration.
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates logging configuration.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Validate validates analytics configuration.
func (c *AnalyticsConfig) Validate() error {
	if c.Forecasting.Horizon < 1 {
		return fmt.Errorf("forecasting.horizon must be positive")
	}

	if c.Forecasting.ConfidenceLevel <= 0 || c.Forecasting.ConfidenceLevel >= 1 {
		return fmt.Errorf("forecasting.confidence_level must be in (0,1)")
	}

	validMethods := map[string]bool{
		"linear":      true,
		"exponential": true,
		"polynomial":  true,
	}
	for _, m := range c.Forecasting.Methods {
		if !validMethods[m] {
			return fmt.Errorf("unknown forecasting method: %s (supported: linear, exponential, polynomial)", m)
		}
	}

	if c.Correlation.MinCorrelation < 0 || c.Correlation.MinCorrelation > 1 {
		return fmt.Errorf("correlation.min_correlation must be in [0,1]")
	}

	return nil
}
