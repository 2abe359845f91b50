package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	CacheTTL    time.Duration
	RabbitMQURL string
	ConsulAddr  string
}

// Load reads configuration from the environment, with an optional .env
// file. MongoURI, RedisAddr, RabbitMQURL and ConsulAddr are all optional;
// leaving one empty disables that integration.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return Config{
		Port:        getenv("PORT", "12001"),
		MongoURI:    getenv("MONGODB_URI", ""),
		MongoDB:     getenv("MONGODB_DB", "eliteshop"),
		RedisAddr:   getenv("REDIS_ADDR", ""),
		CacheTTL:    getduration("CACHE_TTL_SECONDS", 5*time.Minute),
		RabbitMQURL: getenv("RABBITMQ_URL", ""),
		ConsulAddr:  getenv("CONSUL_ADDR", ""),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}
