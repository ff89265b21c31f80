package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Content source. Documents are read from ContentDir and must live
	// under ContentRoot within it.
	ContentDir   string
	ContentRoot  string
	ContentExt   string
	AnimationExt string

	// Static output
	OutputDir   string
	WorkerCount int

	// Auth for the rebuild endpoint. Empty disables it.
	AdminAPIKey string

	// Watch mode
	Watch         bool
	WatchDebounce time.Duration

	ExcerptWords int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir:   envOr("CONTENT_DIR", "."),
		ContentRoot:  envOr("CONTENT_ROOT", "content"),
		ContentExt:   envOr("CONTENT_EXT", ".svx"),
		AnimationExt: envOr("ANIMATION_EXT", ".svelte"),

		OutputDir:   envOr("OUTPUT_DIR", "build"),
		WorkerCount: envInt("WORKER_COUNT", 4),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		Watch:         envBool("WATCH", false),
		WatchDebounce: envDuration("WATCH_DEBOUNCE", 300*time.Millisecond),

		ExcerptWords: envInt("EXCERPT_WORDS", 40),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 300 * time.Millisecond
	}
	if cfg.ExcerptWords <= 0 {
		cfg.ExcerptWords = 40
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.ContentRoot == "" || path.IsAbs(c.ContentRoot) || strings.HasPrefix(path.Clean(c.ContentRoot), "..") {
		return fmt.Errorf("CONTENT_ROOT must be a relative path inside CONTENT_DIR, got %q", c.ContentRoot)
	}
	if !strings.HasPrefix(c.ContentExt, ".") {
		return fmt.Errorf("CONTENT_EXT must start with a dot, got %q", c.ContentExt)
	}
	if !strings.HasPrefix(c.AnimationExt, ".") {
		return fmt.Errorf("ANIMATION_EXT must start with a dot, got %q", c.AnimationExt)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
