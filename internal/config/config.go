package config

import (
	"os"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Broker   BrokerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        string
	Host        string
	FrontendURL string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	SnapshotTopic string
	GroupID       string
}

// BrokerConfig holds the brokerage API app credentials
type BrokerConfig struct {
	APIKey      string
	APISecret   string
	RedirectURL string
	BaseURL     string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "portfolioanalyzer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:         getEnv("KAFKA_TOPIC", "portfolio-events"),
			SnapshotTopic: getEnv("KAFKA_SNAPSHOT_TOPIC", ""),
			GroupID:       getEnv("KAFKA_GROUP_ID", "portfolio-analyzer"),
		},
		Broker: BrokerConfig{
			APIKey:      getEnv("KITE_API_KEY", ""),
			APISecret:   getEnv("KITE_API_SECRET", ""),
			RedirectURL: getEnv("KITE_REDIRECT_URL", ""),
			BaseURL:     getEnv("KITE_BASE_URL", ""),
		},
	}
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
