// internal/config/config.go
//
// Process configuration.
// Responsibilities:
//   - Load a local .env file when present (godotenv).
//   - Read environment variables with defaults into a typed Config.
//   - Reject values that cannot be parsed; production also requires
//     JWT_SECRET.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devSecret = "dev_secret_change_me"

// Config holds every tunable of the server.
type Config struct {
	Port         string
	LogLevel     string
	Env          string // APP_ENV: "development" | "production"
	DBPath       string
	Store        string // "sqlite" | "memory"
	CatalogFile  string // empty: embedded catalog
	ArtworkDir   string
	CanvasSize   int
	ClientOrigin string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	AnonCookie   string
	Epoch        time.Time
	Location     *time.Location
	ShareURL     string
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("read .env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	c := &Config{
		Port:         get("PORT", "5175"),
		LogLevel:     get("LOG_LEVEL", "info"),
		Env:          get("APP_ENV", "development"),
		DBPath:       get("DB_PATH", "data/art-guess.db"),
		Store:        get("STORE", "sqlite"),
		CatalogFile:  get("CATALOG_FILE", ""),
		ArtworkDir:   get("ARTWORK_DIR", "public"),
		ClientOrigin: get("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    get("JWT_SECRET", ""),
		CookieName:   get("COOKIE_NAME", "art_guess_token"),
		AnonCookie:   get("ANON_COOKIE_NAME", "art_guess_anon"),
		ShareURL:     get("SHARE_URL", ""),
	}

	var err error
	if c.CanvasSize, err = strconv.Atoi(get("CANVAS_SIZE", "360")); err != nil || c.CanvasSize < 1 {
		return nil, fmt.Errorf("config: CANVAS_SIZE: must be a positive integer")
	}
	days, err := strconv.Atoi(get("JWT_EXPIRES_DAYS", "14"))
	if err != nil || days < 1 {
		return nil, fmt.Errorf("config: JWT_EXPIRES_DAYS: must be a positive integer")
	}
	c.JWTTTL = time.Duration(days) * 24 * time.Hour

	if c.Epoch, err = time.Parse("2006-01-02", get("EPOCH", "2024-01-01")); err != nil {
		return nil, fmt.Errorf("config: EPOCH: %w", err)
	}
	if c.Location, err = time.LoadLocation(get("TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("config: TIMEZONE: %w", err)
	}

	switch c.Store {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("config: STORE: unknown backend %q", c.Store)
	}

	if c.JWTSecret == "" {
		if c.Production() {
			return nil, errors.New("config: JWT_SECRET is required in production")
		}
		c.JWTSecret = devSecret
	}
	return c, nil
}
