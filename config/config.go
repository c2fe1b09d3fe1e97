package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Client    ClientConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	Inventory InventoryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ClientConfig struct {
	// APIBaseURL is the origin of the remote inventory service, without
	// the /api prefix.
	APIBaseURL string
	// AssetBaseURL is the static asset origin product images resolve against.
	AssetBaseURL   string
	TimeoutSeconds int
}

type DatabaseConfig struct {
	// URL selects the Postgres store for the stand-in service when set;
	// empty means in-memory.
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	// Brokers is empty when event publishing is disabled.
	Brokers       []string
	TopicEvents   string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type InventoryConfig struct {
	LowStockThreshold int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	timeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	threshold, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),
		},
		Client: ClientConfig{
			APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000"),
			AssetBaseURL:   getEnv("ASSET_BASE_URL", "http://localhost:5000/assets"),
			TimeoutSeconds: timeout,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       brokers,
			TopicEvents:   getEnv("KAFKA_TOPIC_INVENTORY_EVENTS", "inventory-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "inventory-watcher-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: threshold,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, api=%s", cfg.Server.Env, cfg.Server.Port, cfg.Client.APIBaseURL)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
