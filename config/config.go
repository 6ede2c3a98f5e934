package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// HTTP config
const HTTP_ADDR = ":8080"
const SHUTDOWN_TIMEOUT = 5 * time.Second

// Store config
const STORE_MONGO = "mongo"
const STORE_SQLITE = "sqlite"
const STORE_KIND = STORE_MONGO
const STORE_TIMEOUT = 5 * time.Second
const MONGO_DATABASE = "dam-dash"
const MONGO_COLLECTION = "reports"
const SQLITE_PATH = "data/dam-dash.db"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Cache config
const CACHE_ENABLED = true
const REPORTS_CACHE_TTL = 10 * time.Second
const FILTER_OPTIONS_CACHE_TTL = 600 * time.Second

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StoreKind       string
	StoreTimeout    time.Duration
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	SQLitePath      string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	CacheEnabled          bool
	ReportsCacheTTL       time.Duration
	FilterOptionsCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", SHUTDOWN_TIMEOUT)
	if err != nil {
		return nil, err
	}
	storeTimeout, err := parseDuration("STORE_TIMEOUT", STORE_TIMEOUT)
	if err != nil {
		return nil, err
	}
	reportsTTL, err := parseDuration("REPORTS_CACHE_TTL", REPORTS_CACHE_TTL)
	if err != nil {
		return nil, err
	}
	optionsTTL, err := parseDuration("FILTER_OPTIONS_CACHE_TTL", FILTER_OPTIONS_CACHE_TTL)
	if err != nil {
		return nil, err
	}

	redisDB := REDIS_DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil || redisDB < 0 {
			return nil, errors.New("invalid REDIS_DB")
		}
	}

	cacheEnabled := CACHE_ENABLED
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cacheEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid CACHE_ENABLED")
		}
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("DAM_DASH_HTTP_ADDR", HTTP_ADDR),
		ShutdownTimeout: shutdownTimeout,

		StoreKind:       envOrDefault("DAM_DASH_STORE", STORE_KIND),
		StoreTimeout:    storeTimeout,
		MongoURI:        mongoURI(),
		MongoDatabase:   envOrDefault("MONGO_DATABASE", MONGO_DATABASE),
		MongoCollection: envOrDefault("MONGO_COLLECTION", MONGO_COLLECTION),
		SQLitePath:      envOrDefault("SQLITE_PATH", SQLITE_PATH),

		RedisAddress:  envOrDefault("REDIS_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword: envOrDefault("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:       redisDB,

		CacheEnabled:          cacheEnabled,
		ReportsCacheTTL:       reportsTTL,
		FilterOptionsCacheTTL: optionsTTL,
	}

	switch cfg.StoreKind {
	case STORE_MONGO:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI or MONGO_USERNAME, MONGO_PASSWORD and MONGO_CLUSTER are required for the mongo store")
		}
	case STORE_SQLITE:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return nil, fmt.Errorf("unknown DAM_DASH_STORE %q", cfg.StoreKind)
	}

	return cfg, nil
}

// MongoConnectionString builds an SRV connection string with escaped credentials.
func MongoConnectionString(username, password, cluster string) string {
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(username, password),
		Host:   cluster,
	}
	return u.String()
}

func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	username, password, cluster := os.Getenv("MONGO_USERNAME"), os.Getenv("MONGO_PASSWORD"), os.Getenv("MONGO_CLUSTER")
	if username == "" || password == "" || cluster == "" {
		return ""
	}
	return MongoConnectionString(username, password, cluster)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
