package config

import (
	"strings"
	"testing"
	"time"
)

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != "5175" || c.Store != "sqlite" || c.CanvasSize != 360 || c.CatalogFile != "" {
		t.Fatalf("config = %+v", c)
	}
	if c.JWTSecret != devSecret || c.JWTTTL != 14*24*time.Hour {
		t.Fatalf("jwt = %q %v", c.JWTSecret, c.JWTTTL)
	}
	if c.Location != time.UTC || !c.Epoch.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("schedule = %v %v", c.Epoch, c.Location)
	}
	if c.Production() {
		t.Fatal("default env is production")
	}
}

func TestOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"PORT":             "8080",
		"STORE":            "memory",
		"CANVAS_SIZE":      "512",
		"JWT_EXPIRES_DAYS": "2",
		"EPOCH":            "2025-03-01",
		"TIMEZONE":         "Europe/Paris",
		"APP_ENV":          "production",
		"JWT_SECRET":       "prod",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != "8080" || c.Store != "memory" || c.CanvasSize != 512 || c.JWTTTL != 48*time.Hour {
		t.Fatalf("config = %+v", c)
	}
	if c.Location.String() != "Europe/Paris" || c.Epoch.Month() != time.March || !c.Production() {
		t.Fatalf("config = %+v", c)
	}
}

func TestRejects(t *testing.T) {
	tests := map[string]map[string]string{
		"CANVAS_SIZE":      {"CANVAS_SIZE": "big"},
		"JWT_EXPIRES_DAYS": {"JWT_EXPIRES_DAYS": "0"},
		"EPOCH":            {"EPOCH": "yesterday"},
		"TIMEZONE":         {"TIMEZONE": "Mars/Olympus"},
		"STORE":            {"STORE": "redis"},
		"JWT_SECRET":       {"APP_ENV": "production"},
	}
	for want, kv := range tests {
		_, err := FromEnv(env(kv))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%v: err = %v, want mention of %s", kv, err, want)
		}
	}
}
