package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	BaseURL   string

	Redis   RedisConfig
	Store   StoreConfig
	Sync    SyncConfig
	Export  ExportConfig
	CORS    CORSConfig
	Log     LogConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StoreConfig locates the local document slot.
type StoreConfig struct {
	Dir  string
	Slot string
}

// SyncConfig governs the cloud synchronization channel.
type SyncConfig struct {
	Enabled         bool
	ProjectID       string
	Channel         string
	SnapshotDir     string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	SyncingFloor    time.Duration
	FetchTimeout    time.Duration
	WorkerRetries   int
}

// ExportConfig controls granular export output.
type ExportConfig struct {
	Dir string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.BaseURL = v.GetString("BASE_URL")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Store = StoreConfig{
		Dir:  v.GetString("STORE_DIR"),
		Slot: v.GetString("STORE_SLOT"),
	}

	cfg.Sync = SyncConfig{
		Enabled:         v.GetBool("ENABLE_SYNC"),
		ProjectID:       v.GetString("SYNC_PROJECT_ID"),
		Channel:         v.GetString("SYNC_CHANNEL"),
		SnapshotDir:     v.GetString("SYNC_SNAPSHOT_DIR"),
		SignedURLSecret: v.GetString("SYNC_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("SYNC_SIGNED_URL_TTL"), 24*time.Hour),
		SyncingFloor:    parseDuration(v.GetString("SYNC_SYNCING_FLOOR"), 2*time.Second),
		FetchTimeout:    parseDuration(v.GetString("SYNC_FETCH_TIMEOUT"), 30*time.Second),
		WorkerRetries:   v.GetInt("SYNC_WORKER_RETRIES"),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("BASE_URL", "http://localhost:8080")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("STORE_DIR", "./data")
	v.SetDefault("STORE_SLOT", "document.json")

	v.SetDefault("ENABLE_SYNC", true)
	v.SetDefault("SYNC_PROJECT_ID", "default")
	v.SetDefault("SYNC_CHANNEL", "edutrack:announcements")
	v.SetDefault("SYNC_SNAPSHOT_DIR", "./snapshots")
	v.SetDefault("SYNC_SIGNED_URL_SECRET", "dev_sync_secret")
	v.SetDefault("SYNC_SIGNED_URL_TTL", "24h")
	v.SetDefault("SYNC_SYNCING_FLOOR", "2s")
	v.SetDefault("SYNC_FETCH_TIMEOUT", "30s")
	v.SetDefault("SYNC_WORKER_RETRIES", 3)

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
