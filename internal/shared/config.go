package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Dataset sources.
const (
	SourceCSV   = "csv"
	SourceURL   = "url"
	SourceMySQL = "mysql"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	DatasetSource string
	DatasetPath   string
	DatasetURL    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	CORSOrigins   []string
	Workers       int
	BatchSize     int
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "dev"),
		HTTPAddr:      env("HTTP_ADDR", ":8050"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		DatasetSource: strings.ToLower(env("DATASET_SOURCE", SourceCSV)),
		DatasetPath:   env("DATASET_PATH", "datasets/pricing.csv"),
		DatasetURL:    env("DATASET_URL", ""),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/listings?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		CORSOrigins:   list(env("CORS_ORIGINS", "")),
		Workers:       atoi("INGEST_WORKERS", 4),
		BatchSize:     atoi("INGEST_BATCH_SIZE", 500),
	}
	if c.DatasetSource == SourceURL && c.DatasetURL == "" {
		log.Warn().Msg("DATASET_SOURCE=url but DATASET_URL is empty")
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
