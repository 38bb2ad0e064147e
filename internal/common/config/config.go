package config

import (
	"fmt"
	"os"
	"time"

	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseURL:    databaseURL,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
