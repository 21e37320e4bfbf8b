// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes ledger settings such
// as storage backend selection, backend timeouts, the optional git backup
// sync, logging, the admin HTTP server, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageConfig selects and tunes the persistence backends. Backends are
// chosen once at startup from which connection settings are present.
type StorageConfig struct {
	DataFile        string        // DATA_FILE, local JSON document (always used)
	BackupSuffix    string        // BACKUP_SUFFIX, sibling backup written before overwrite
	MongoURI        string        // MONGODB_URI, enables the document store when set
	MongoDatabase   string        // MONGODB_DATABASE
	MongoCollection string        // MONGODB_COLLECTION
	DatabaseURL     string        // DATABASE_URL, enables the relational store when set
	Timeout         time.Duration // BACKEND_TIMEOUT, per backend call
}

// GitSyncConfig configures the best-effort push of the data file to a git
// remote after each save.
type GitSyncConfig struct {
	Enabled  bool          // GIT_SYNC_ENABLED
	Dir      string        // GIT_SYNC_DIR, working tree containing DATA_FILE
	Remote   string        // GIT_SYNC_REMOTE
	Branch   string        // GIT_SYNC_BRANCH
	Interval time.Duration // GIT_SYNC_INTERVAL, minimum spacing between pushes
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool          // ENABLE_HSTS
	HSTSMaxAge time.Duration // HSTS_MAX_AGE
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "giveaway-ledger")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // e.g. 1<<20
	GinMode           string        // debug|release|test
	APIBasePath       string        // base path for API routes
	SwaggerEnabled    bool          // serve the API docs under /swagger

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Ledger
	Storage StorageConfig
	GitSync GitSyncConfig

	// Web
	CORS      CORSConfig
	Security  SecurityConfig
	RateRPS   float64 // admin API requests per second per client
	RateBurst int     // admin API burst size

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		APIBasePath:       normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),
		SwaggerEnabled:    getbool("SWAGGER_ENABLED", false),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Ledger
		Storage: StorageConfig{
			DataFile:        getenv("DATA_FILE", "database.json"),
			BackupSuffix:    getenv("BACKUP_SUFFIX", ".bak"),
			MongoURI:        strings.TrimSpace(getenv("MONGODB_URI", "")),
			MongoDatabase:   getenv("MONGODB_DATABASE", "discord_bot"),
			MongoCollection: getenv("MONGODB_COLLECTION", "bot_data"),
			DatabaseURL:     strings.TrimSpace(getenv("DATABASE_URL", "")),
			Timeout:         getdur("BACKEND_TIMEOUT", 5*time.Second),
		},
		GitSync: GitSyncConfig{
			Enabled:  getbool("GIT_SYNC_ENABLED", false),
			Dir:      getenv("GIT_SYNC_DIR", "."),
			Remote:   getenv("GIT_SYNC_REMOTE", "origin"),
			Branch:   getenv("GIT_SYNC_BRANCH", "main"),
			Interval: getdur("GIT_SYNC_INTERVAL", time.Minute),
		},

		// Web
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "giveaway-ledger"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.RateRPS <= 0 {
		return cfg, errors.New("RATE_RPS must be > 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if strings.TrimSpace(cfg.Storage.DataFile) == "" {
		return cfg, errors.New("DATA_FILE must not be empty")
	}
	if strings.TrimSpace(cfg.Storage.BackupSuffix) == "" {
		return cfg, errors.New("BACKUP_SUFFIX must not be empty")
	}
	if cfg.Storage.Timeout <= 0 {
		return cfg, errors.New("BACKEND_TIMEOUT must be > 0")
	}
	if cfg.Storage.MongoURI != "" && (strings.TrimSpace(cfg.Storage.MongoDatabase) == "" || strings.TrimSpace(cfg.Storage.MongoCollection) == "") {
		return cfg, errors.New("MONGODB_DATABASE and MONGODB_COLLECTION must not be empty when MONGODB_URI is set")
	}
	if cfg.GitSync.Enabled && cfg.GitSync.Interval <= 0 {
		return cfg, errors.New("GIT_SYNC_INTERVAL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
