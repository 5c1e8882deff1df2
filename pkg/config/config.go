package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoreDatabase = "database"
	StoreMemory   = "memory"
)

type Config struct {
	Port                    string `yaml:"port"`
	Env                     string `yaml:"env"`
	LogLevel                string `yaml:"log_level"`
	Store                   string `yaml:"store"`
	PostgresConnStr         string `yaml:"postgres_conn_str"`
	MongoURI                string `yaml:"mongo_uri"`
	MongoDatabase           string `yaml:"mongo_database"`
	JWTSecret               string `yaml:"jwt_secret"`
	JWTTTL                  string `yaml:"jwt_ttl"`
	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`
	FirebaseStorageBucket   string `yaml:"firebase_storage_bucket"`
	MediaFolder             string `yaml:"media_folder"`
	MetricsPort             string `yaml:"metrics_port"`
}

// Load reads .env if present, then the YAML file named by CONFIG_FILE, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, assuming environment variables are set.")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:          "8080",
		Env:           "development",
		LogLevel:      "info",
		Store:         StoreDatabase,
		MongoDatabase: "birdie",
		JWTTTL:        "720h",
		MediaFolder:   "birdie_posts",
		MetricsPort:   "9090",
	}
}

func (c *Config) applyEnv() {
	override(&c.Port, "PORT")
	override(&c.Env, "ENV")
	override(&c.LogLevel, "LOG_LEVEL")
	override(&c.Store, "STORE")
	override(&c.PostgresConnStr, "POSTGRES_CONN_STR")
	override(&c.MongoURI, "MONGO_URI")
	override(&c.MongoDatabase, "MONGO_DATABASE")
	override(&c.JWTSecret, "JWT_SECRET")
	override(&c.JWTTTL, "JWT_TTL")
	override(&c.FirebaseCredentialsPath, "FIREBASE_CREDENTIALS_PATH")
	override(&c.FirebaseStorageBucket, "FIREBASE_STORAGE_BUCKET")
	override(&c.MediaFolder, "MEDIA_FOLDER")
	override(&c.MetricsPort, "METRICS_PORT")
}

func override(field *string, key string) {
	if value := os.Getenv(key); value != "" {
		*field = value
	}
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreDatabase:
		if c.PostgresConnStr == "" {
			return errors.New("POSTGRES_CONN_STR environment variable not set")
		}
		if c.MongoURI == "" {
			return errors.New("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	return nil
}

// TokenTTL parses JWT_TTL.
func (c *Config) TokenTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid JWT_TTL %q: %w", c.JWTTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid JWT_TTL %q: must be positive", c.JWTTTL)
	}
	return ttl, nil
}

// MediaEnabled reports whether Firebase Storage is configured for uploads.
func (c *Config) MediaEnabled() bool {
	return c.FirebaseCredentialsPath != "" && c.FirebaseStorageBucket != ""
}
