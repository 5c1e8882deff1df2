package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "ENV", "LOG_LEVEL", "STORE", "POSTGRES_CONN_STR", "MONGO_URI",
	"MONGO_DATABASE", "JWT_SECRET", "JWT_TTL", "FIREBASE_CREDENTIALS_PATH",
	"FIREBASE_STORAGE_BUCKET", "MEDIA_FOLDER", "METRICS_PORT",
}

// clearEnv blanks every key so values from the host do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaultsWithMemoryStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "birdie", cfg.MongoDatabase)
	assert.Equal(t, "birdie_posts", cfg.MediaFolder)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.False(t, cfg.MediaEnabled())

	ttl, err := cfg.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, ttl)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "birdie.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "3000"
store: database
postgres_conn_str: postgres://localhost/birdie
mongo_uri: mongodb://localhost:27017
jwt_secret: from-file
jwt_ttl: 24h
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	ttl, err := cfg.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"database store complete", func(c *Config) {}, true},
		{"missing postgres", func(c *Config) { c.PostgresConnStr = "" }, false},
		{"missing mongo", func(c *Config) { c.MongoURI = "" }, false},
		{"memory store needs no databases", func(c *Config) { c.Store = StoreMemory; c.PostgresConnStr, c.MongoURI = "", "" }, true},
		{"unknown store", func(c *Config) { c.Store = "redis" }, false},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, false},
		{"bad ttl", func(c *Config) { c.JWTTTL = "forever" }, false},
		{"negative ttl", func(c *Config) { c.JWTTTL = "-1h" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			cfg.PostgresConnStr = "postgres://localhost/birdie"
			cfg.MongoURI = "mongodb://localhost:27017"
			cfg.JWTSecret = "s3cret"
			tc.mutate(cfg)
			if tc.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
