package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/qualimetry")
	}

	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("QUALIMETRY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 6060)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Analytics defaults
	v.SetDefault("analytics.enable_statistical_analysis", true)
	v.SetDefault("analytics.enable_trend_forecasting", true)
	v.SetDefault("analytics.enable_correlation_analysis", true)
	v.SetDefault("analytics.enable_predictive_modeling", true)
	v.SetDefault("analytics.statistical_methods.descriptive", true)
	v.SetDefault("analytics.statistical_methods.inferential", true)
	v.SetDefault("analytics.statistical_methods.time_series", true)
	v.SetDefault("analytics.statistical_methods.regression", true)
	v.SetDefault("analytics.forecasting.methods", []string{"linear", "exponential", "polynomial"})
	v.SetDefault("analytics.forecasting.horizon", 12)
	v.SetDefault("analytics.forecasting.confidence_level", 0.95)
	v.SetDefault("analytics.forecasting.seasonality_detection", true)
	v.SetDefault("analytics.correlation.enable_pearson", true)
	v.SetDefault("analytics.correlation.enable_spearman", true)
	v.SetDefault("analytics.correlation.enable_kendall", true)
	v.SetDefault("analytics.correlation.min_correlation", 0.1)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.url", "redis://localhost:6379")
	v.SetDefault("cache.ttl", "10m")

	// Events defaults
	v.SetDefault("events.type", "memory")
	v.SetDefault("events.url", "nats://localhost:4222")
	v.SetDefault("events.subject", "qualimetry.insights")
}

// parseConfig parses viper config into a Config struct.
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config.
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 6060,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
		Analytics: DefaultAnalyticsConfig(),
		Cache: CacheConfig{
			Enabled: false,
			URL:     "redis://localhost:6379",
			TTL:     10 * time.Minute,
		},
		Events: EventsConfig{
			Type:    "memory",
			URL:     "nats://localhost:4222",
			Subject: "qualimetry.insights",
		},
	}
}

// DefaultAnalyticsConfig returns the default engine configuration with every
// component and method enabled.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		EnableStatisticalAnalysis: true,
		EnableTrendForecasting:    true,
		EnableCorrelationAnalysis: true,
		EnablePredictiveModeling:  true,
		StatisticalMethods: StatisticalMethodsConfig{
			Descriptive: true,
			Inferential: true,
			TimeSeries:  true,
			Regression:  true,
		},
		Forecasting: ForecastingConfig{
			Methods:              []string{"linear", "exponential", "polynomial"},
			Horizon:              12,
			ConfidenceLevel:      0.95,
			SeasonalityDetection: true,
		},
		Correlation: CorrelationConfig{
			EnablePearson:  true,
			EnableSpearman: true,
			EnableKendall:  true,
			MinCorrelation: 0.1,
		},
	}
}
