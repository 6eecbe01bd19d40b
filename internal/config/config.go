package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of a run. Everything is
// environment-driven; the CLI deliberately has no behavioral flags.
type Config struct {
	// Headless runs the browser without a window. On by default for
	// CI; turn off with FEATSPEC_HEADLESS=false to watch a run.
	Headless bool
	// BaseURL resolves relative goto targets like "/login".
	BaseURL string
	// ScreenshotDir overrides the default screenshots directory next
	// to each spec file.
	ScreenshotDir string
	// WaitForTimeout bounds wait_for steps.
	WaitForTimeout time.Duration
	// AssertTimeout bounds assert_visible / assert_hidden steps.
	AssertTimeout time.Duration
	// Trace dumps the event history as JSON lines after the run.
	Trace bool
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Headless:       true,
		WaitForTimeout: 10 * time.Second,
		AssertTimeout:  5 * time.Second,
	}
}

// FromEnv builds a Config from FEATSPEC_* environment variables,
// loading a .env file first if one exists in the working directory.
func FromEnv() (Config, error) {
	// Missing .env is the normal case; real variables win over it.
	_ = godotenv.Load()

	cfg := Default()

	if v, ok := os.LookupEnv("FEATSPEC_HEADLESS"); ok {
		b, err := parseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("FEATSPEC_HEADLESS: %w", err)
		}
		cfg.Headless = b
	}
	if v := os.Getenv("FEATSPEC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FEATSPEC_SCREENSHOT_DIR"); v != "" {
		cfg.ScreenshotDir = v
	}
	if v := os.Getenv("FEATSPEC_WAIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("FEATSPEC_WAIT_TIMEOUT: %w", err)
		}
		cfg.WaitForTimeout = d
	}
	if v := os.Getenv("FEATSPEC_ASSERT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("FEATSPEC_ASSERT_TIMEOUT: %w", err)
		}
		cfg.AssertTimeout = d
	}
	if v, ok := os.LookupEnv("FEATSPEC_TRACE"); ok {
		b, err := parseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("FEATSPEC_TRACE: %w", err)
		}
		cfg.Trace = b
	}

	return cfg, nil
}

// parseBool accepts the boolean spellings people actually put in CI
// environment blocks.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", v)
	}
}
