// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q, want TMDB API", cfg.TMDB.BaseURL)
	}
	if cfg.Enrich.Concurrency != 5 {
		t.Errorf("Enrich.Concurrency = %d, want 5", cfg.Enrich.Concurrency)
	}
	if !cfg.TMDB.CircuitBreaker {
		t.Error("TMDB.CircuitBreaker should default to true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("TMDB_API_KEY", "secret-key")
	t.Setenv("CATALOG_PATH", "/tmp/catalog.json")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 from env", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "secret-key" {
		t.Errorf("TMDB.APIKey = %q, want value from env", cfg.TMDB.APIKey)
	}
	if cfg.Catalog.Path != "/tmp/catalog.json" {
		t.Errorf("Catalog.Path = %q, want value from env", cfg.Catalog.Path)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "http://b.example" {
		t.Errorf("API.CORSOrigins = %v, want two parsed origins", cfg.API.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4242\ntmdb:\n  timeout: 2s\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 4242 {
		t.Errorf("Server.Port = %d, want 4242 from file", cfg.Server.Port)
	}
	if cfg.TMDB.Timeout != 2*time.Second {
		t.Errorf("TMDB.Timeout = %s, want 2s from file", cfg.TMDB.Timeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4242\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "5151")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5151 {
		t.Errorf("Server.Port = %d, want env to win over file", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "missing catalog path", mutate: func(c *Config) { c.Catalog.Path = "" }, wantErr: true},
		{name: "missing similarity path", mutate: func(c *Config) { c.Catalog.SimilarityPath = "" }, wantErr: true},
		{name: "relative tmdb url", mutate: func(c *Config) { c.TMDB.BaseURL = "/api" }, wantErr: true},
		{name: "zero tmdb timeout", mutate: func(c *Config) { c.TMDB.Timeout = 0 }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Enrich.Concurrency = 0 }, wantErr: true},
		{name: "max below default count", mutate: func(c *Config) { c.API.MaxCount = 1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformSkipsUnmapped(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want unmapped vars skipped", got)
	}
	if got := envTransformFunc("TMDB_API_KEY"); got != "tmdb.api_key" {
		t.Errorf("envTransformFunc(TMDB_API_KEY) = %q, want tmdb.api_key", got)
	}
}
