package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type ProcessorConfig struct {
	NumWorkers int `mapstructure:"num_workers"`
}

type GeneratorConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	Volatility float64       `mapstructure:"volatility"` // max move per tick, in percent
}

type DashboardConfig struct {
	// Suggestions are the symbols offered as quick-search tags.
	Suggestions    []string      `mapstructure:"suggestions"`
	SeedSample     bool          `mapstructure:"seed_sample"`
	HistoryFile    string        `mapstructure:"history_file"`
	AnalysisTTL    time.Duration `mapstructure:"analysis_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	FeedEnabled    bool          `mapstructure:"feed_enabled"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`    // debug, info, warn, error
	Encoding   string `mapstructure:"encoding"` // json, console
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Load .env file into System Environment (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	// 2. Set Defaults
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "quote_ticks")
	v.SetDefault("kafka.group_id", "stock-processor-group")

	v.SetDefault("processor.num_workers", 4)

	v.SetDefault("generator.interval", 100*time.Millisecond)
	v.SetDefault("generator.volatility", 0.5)

	v.SetDefault("dashboard.suggestions", []string{"AAPL", "GOOGL", "TSLA", "MSFT"})
	v.SetDefault("dashboard.seed_sample", true)
	v.SetDefault("dashboard.history_file", "")
	v.SetDefault("dashboard.analysis_ttl", 10*time.Minute)
	v.SetDefault("dashboard.request_timeout", 5*time.Second)
	v.SetDefault("dashboard.feed_enabled", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_age_days", 7)
	v.SetDefault("logger.max_backups", 5)

	// 3. Configure Viper to read Environment Variables ("app.port" -> "APP_PORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Explicitly Bind Env Vars to Keys so Unmarshal sees them
	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "redis.addr", "redis.password", "redis.db")
	bindEnv(v, "kafka.brokers", "kafka.topic", "kafka.group_id")
	bindEnv(v, "processor.num_workers")
	bindEnv(v, "generator.interval", "generator.volatility")
	bindEnv(v, "dashboard.suggestions", "dashboard.seed_sample", "dashboard.history_file",
		"dashboard.analysis_ttl", "dashboard.request_timeout", "dashboard.feed_enabled")
	bindEnv(v, "logger.level", "logger.encoding", "logger.file_path",
		"logger.max_size_mb", "logger.max_age_days", "logger.max_backups")

	// 5. Unmarshal into Struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// 6. Basic Validation
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers cannot be empty")
	}
	if cfg.Processor.NumWorkers <= 0 {
		return nil, fmt.Errorf("processor.num_workers must be positive, got %d", cfg.Processor.NumWorkers)
	}

	return &cfg, nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
