// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the landing page server settings.
type Config struct {
	Addr        string
	ImagesDir   string
	SiteTitle   string
	ArtistName  string
	ArtistURL   string
	SourceName  string
	SourceURL   string
	SessionIdle time.Duration
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Addr:        ":8080",
		ImagesDir:   "public/images",
		SiteTitle:   "lechefer",
		ArtistName:  "void_0",
		ArtistURL:   "https://www.pixiv.net/users/14801956",
		SourceName:  "es3n.in",
		SourceURL:   "https://es3n.in",
		SessionIdle: 2 * time.Minute,
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to Defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	get := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	if port := get("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if dir := get("IMAGES_DIR"); dir != "" {
		cfg.ImagesDir = dir
	}
	if v := get("SITE_TITLE"); v != "" {
		cfg.SiteTitle = v
	}
	if v := get("ARTIST_NAME"); v != "" {
		cfg.ArtistName = v
	}
	if v := get("ARTIST_URL"); v != "" {
		cfg.ArtistURL = v
	}
	if v := get("SOURCE_NAME"); v != "" {
		cfg.SourceName = v
	}
	if v := get("SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}
	if v := get("SESSION_IDLE"); v != "" {
		idle, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_IDLE: %w", err)
		}
		if idle <= 0 {
			return Config{}, fmt.Errorf("SESSION_IDLE must be positive, got %s", idle)
		}
		cfg.SessionIdle = idle
	}
	return cfg, nil
}
