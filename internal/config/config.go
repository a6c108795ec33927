package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultGenreSeed is the reference genre list written into an empty genres
// table on first run. It can be overridden with GENRE_SEED.
var DefaultGenreSeed = []string{
	"Action", "Adventure", "Comedy", "Crime", "Documentary", "Drama",
	"Family", "Fantasy", "History", "Horror", "Music", "Mystery",
	"Romance", "Science Fiction", "Sport", "Thriller", "War", "Western",
}

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port                 string
	AuthToken            string
	DBURL                string
	DataDir              string
	DBPort               int
	GenreSeed            []string
	ActorSearchMinPrefix int
	MetadataURL          string
	MetadataAPIKey       string
	MetadataTimeoutSecs  int
	ReadTimeoutSecs      int
	WriteTimeoutSecs     int
	IdleTimeoutSecs      int
	DBMaxConns           int
	DBMinConns           int
	DBMaxIdleSecs        int
	DBMaxLifeSecs        int
	DBConnTimeoutSecs    int
	DBStatementCache     int
}

// Load reads configuration from environment variables, applying defaults and
// validation. Either DB_URL (external database) or DATA_DIR (embedded,
// file-backed database) must be provided. AUTH_TOKEN is optional; when empty,
// write endpoints are open.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		AuthToken:            os.Getenv("AUTH_TOKEN"),
		DBURL:                os.Getenv("DB_URL"),
		DataDir:              os.Getenv("DATA_DIR"),
		DBPort:               getEnvInt("DB_PORT", 5433),
		GenreSeed:            getEnvList("GENRE_SEED", DefaultGenreSeed),
		ActorSearchMinPrefix: getEnvInt("ACTOR_SEARCH_MIN_PREFIX", 3),
		MetadataURL:          os.Getenv("METADATA_URL"),
		MetadataAPIKey:       os.Getenv("METADATA_API_KEY"),
		MetadataTimeoutSecs:  getEnvInt("METADATA_TIMEOUT_SECS", 5),
		ReadTimeoutSecs:      getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:     getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:      getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:           getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:           getEnvInt("DB_MIN_CONNS", 1),
		DBMaxIdleSecs:        getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:        getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs:    getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		DBStatementCache:     getEnvInt("DB_STATEMENT_CACHE_CAPACITY", 256),
	}

	if cfg.DBURL == "" && cfg.DataDir == "" {
		return Config{}, fmt.Errorf("one of DB_URL or DATA_DIR is required")
	}
	if cfg.DBPort <= 0 || cfg.DBPort > 65535 {
		return Config{}, fmt.Errorf("DB_PORT must be a valid port number")
	}
	if cfg.ActorSearchMinPrefix < 1 {
		return Config{}, fmt.Errorf("ACTOR_SEARCH_MIN_PREFIX must be at least 1")
	}
	if cfg.MetadataTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("METADATA_TIMEOUT_SECS must be positive")
	}
	if cfg.MetadataAPIKey != "" && cfg.MetadataURL == "" {
		return Config{}, fmt.Errorf("METADATA_API_KEY is set but METADATA_URL is empty")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
