package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	// JWT
	JWTSecret string
	AccessTTL time.Duration

	// seeded fixture account (role BOTH)
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminRole     string

	// accepted institutional email suffixes for registration
	AllowedEmailDomains []string

	// OTLP trace collector, empty disables tracing
	OTLPEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)

	return Config{
		Env:       env,
		Port:      port,
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL: getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@ie.edu"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		AdminName:     getEnv("ADMIN_NAME", "Admin User"),
		AdminRole:     getEnv("ADMIN_ROLE", "BOTH"),

		AllowedEmailDomains: getEnvList("ALLOWED_EMAIL_DOMAINS", "@student.ie.edu,@ie.edu"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
