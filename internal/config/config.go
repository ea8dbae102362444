// Package config provides environment-based configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	Port            int
	DatabaseURL     string
	GeminiAPIKey    string
	GeminiModel     string
	StorageRoot     string
	FrontendURL     string
	MaxResumeSizeMB int
	AllowedExts     []string
}

// Load reads configuration from environment variables. DATABASE_URL and
// GEMINI_API_KEY are required; everything else has defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            8080,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		StorageRoot:     os.Getenv("STORAGE_ROOT"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		MaxResumeSizeMB: 5,
		AllowedExts:     []string{".pdf", ".doc", ".docx", ".txt"},
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if sizeStr := os.Getenv("MAX_RESUME_SIZE_MB"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_RESUME_SIZE_MB: %v", err)
		}
		cfg.MaxResumeSizeMB = size
	}

	if exts := os.Getenv("ALLOWED_RESUME_TYPES"); exts != "" {
		cfg.AllowedExts = nil
		for _, ext := range strings.Split(exts, ",") {
			ext = strings.TrimSpace(strings.ToLower(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.AllowedExts = append(cfg.AllowedExts, ext)
		}
	}

	if cfg.StorageRoot == "" {
		cfg.StorageRoot = "./uploads"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.MaxResumeSizeMB < 1 {
		return fmt.Errorf("MAX_RESUME_SIZE_MB must be at least 1, got: %d", c.MaxResumeSizeMB)
	}
	return nil
}

// MaxResumeBytes returns the upload limit in bytes.
func (c *Config) MaxResumeBytes() int64 {
	return int64(c.MaxResumeSizeMB) << 20
}
