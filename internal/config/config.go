package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Optional YAML file of admin accounts created at boot.
	AdminSeedPath string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ContentTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "4000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminSeedPath: os.Getenv("ADMIN_SEED_PATH"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}

	ttl, err := parseTTL(getenv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("config: JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	timeout, err := parseTTL(getenv("CONTENT_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("config: CONTENT_TIMEOUT: %w", err)
	}
	cfg.ContentTimeout = timeout

	return cfg, nil
}

// Parses durations such as "15m", "1h", "20s", or a bare "30" (minutes).
func parseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "m") || strings.HasSuffix(s, "h") {
		return time.ParseDuration(s)
	}
	min, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}
