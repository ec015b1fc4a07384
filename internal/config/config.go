// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package config loads service configuration using Koanf v2 with layered
// sources: built-in defaults, an optional YAML config file, and environment
// variables (highest priority).
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the recommendation service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Catalog CatalogConfig `koanf:"catalog"`
	TMDB    TMDBConfig    `koanf:"tmdb"`
	Enrich  EnrichConfig  `koanf:"enrich"`
	Session SessionConfig `koanf:"session"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// CatalogConfig points at the precomputed artifacts consumed at startup.
type CatalogConfig struct {
	// Path is the catalog artifact: a JSON array of {title, movie_id}
	// entries whose array order defines item positions.
	Path string `koanf:"path"`

	// SimilarityPath is the similarity matrix artifact: a JSON N x N
	// array of arrays aligned to the catalog positions.
	SimilarityPath string `koanf:"similarity_path"`
}

// TMDBConfig holds settings for the TMDB metadata service.
type TMDBConfig struct {
	// BaseURL is the TMDB API endpoint.
	BaseURL string `koanf:"base_url"`

	// ImageBaseURL is the prefix for poster image paths.
	ImageBaseURL string `koanf:"image_base_url"`

	// DetailBaseURL is the prefix for canonical movie page URLs.
	DetailBaseURL string `koanf:"detail_base_url"`

	// APIKey authenticates requests to TMDB.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each metadata lookup so one slow call cannot
	// stall a whole enrichment batch.
	Timeout time.Duration `koanf:"timeout"`

	// CircuitBreaker enables the gobreaker wrapper around the client.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// EnrichConfig controls the enrichment fan-out.
type EnrichConfig struct {
	// Concurrency is the number of parallel enrichment workers per batch.
	Concurrency int `koanf:"concurrency"`
}

// SessionConfig controls the in-memory session store.
type SessionConfig struct {
	// TTL is how long an idle session is kept before the janitor
	// removes it.
	TTL time.Duration `koanf:"ttl"`

	// CleanupInterval is how often expired sessions are swept.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	DefaultCount    int           `koanf:"default_count"`
	MaxCount        int           `koanf:"max_count"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8501,
			Timeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			Path:           "/data/movies.json",
			SimilarityPath: "/data/similarity.json",
		},
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			DetailBaseURL:  "https://www.themoviedb.org/movie",
			APIKey:         "",
			Timeout:        5 * time.Second,
			CircuitBreaker: true,
		},
		Enrich: EnrichConfig{
			Concurrency: 5,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Minute,
		},
		API: APIConfig{
			DefaultCount:    5,
			MaxCount:        100,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Catalog.SimilarityPath == "" {
		return fmt.Errorf("catalog.similarity_path is required")
	}
	for _, u := range []struct {
		name  string
		value string
	}{
		{"tmdb.base_url", c.TMDB.BaseURL},
		{"tmdb.image_base_url", c.TMDB.ImageBaseURL},
		{"tmdb.detail_base_url", c.TMDB.DetailBaseURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", u.name, u.value)
		}
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %s", c.TMDB.Timeout)
	}
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be at least 1, got %d", c.Enrich.Concurrency)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.API.DefaultCount < 1 {
		return fmt.Errorf("api.default_count must be at least 1, got %d", c.API.DefaultCount)
	}
	if c.API.MaxCount < c.API.DefaultCount {
		return fmt.Errorf("api.max_count %d must be >= api.default_count %d", c.API.MaxCount, c.API.DefaultCount)
	}
	return nil
}
