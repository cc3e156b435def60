package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory    = "memory"
	StoreDriverRedis     = "redis"
	StoreDriverFirestore = "firestore"
	StoreDriverMongo     = "mongo"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	Store     StoreConfig
	Redis     RedisConfig
	Firestore FirestoreConfig
	Mongo     MongoConfig
	Catalog   CatalogConfig
	Checkout  CheckoutConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
}

type StoreConfig struct {
	Driver string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirestoreConfig struct {
	ProjectID          string
	ServiceAccountPath string
	ServiceAccountJSON string
}

type MongoConfig struct {
	URI      string
	Database string
}

// CatalogConfig points at an optional GCS object holding the dataset. An
// empty bucket means the embedded dataset is used.
type CatalogConfig struct {
	GCSBucket string
	GCSObject string
}

type CheckoutConfig struct {
	PaymentDelay time.Duration
}

type SessionConfig struct {
	IdleTTL time.Duration
}

// RateLimitConfig is per client IP. Payment submissions are limited on top
// of the general limit.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	PaymentPerMinute  float64
	PaymentBurst      int
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreDriverMemory),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firestore: FirestoreConfig{
			ProjectID:          getEnv("FIREBASE_PROJECT_ID", ""),
			ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
			ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "luxuryline"),
		},
		Catalog: CatalogConfig{
			GCSBucket: getEnv("CATALOG_GCS_BUCKET", ""),
			GCSObject: getEnv("CATALOG_GCS_OBJECT", "catalog.yaml"),
		},
		Checkout: CheckoutConfig{
			PaymentDelay: time.Duration(getEnvAsInt64("PAYMENT_DELAY_MS", 3000)) * time.Millisecond,
		},
		Session: SessionConfig{
			IdleTTL: time.Duration(getEnvAsInt64("SESSION_IDLE_TTL_MINUTES", 120)) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 30),
			PaymentPerMinute:  getEnvAsFloat("RATE_LIMIT_PAYMENT_PER_MINUTE", 10),
			PaymentBurst:      getEnvAsInt("RATE_LIMIT_PAYMENT_BURST", 3),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("EMAIL_FROM", "orders@luxuryline.shop"),
			FromName:       getEnv("EMAIL_FROM_NAME", "LuxuryLine"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverRedis, StoreDriverMongo:
	case StoreDriverFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Checkout.PaymentDelay < 0 {
		return fmt.Errorf("payment delay must not be negative")
	}
	if c.RateLimit.PaymentPerMinute < 0 || c.RateLimit.PaymentBurst < 0 {
		return fmt.Errorf("payment rate limit must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
