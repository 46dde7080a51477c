// Package config loads settings from the environment and an optional .env
// file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"screenpass/internal/pipeline"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DatabasePath  string
	WorkspacePath string // empty means ~/Screenpass

	// Logging
	LogLevel string

	// Processing
	Seed      uint64
	UnitWords int
	Workers   int // 0 means one per CPU

	// ContinueOnReject keeps processing later units after a hard reject.
	ContinueOnReject bool

	Pipeline pipeline.Config
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	r := &envReader{}
	p := pipeline.DefaultConfig()
	cfg := &Config{
		DatabasePath:  getEnv("SCREENPASS_DB_PATH", "data/screenpass.db"),
		WorkspacePath: getEnv("SCREENPASS_WORKSPACE", ""),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Seed:          r.getEnvUint("SCREENPASS_SEED", 1),
		UnitWords:     r.getEnvInt("SCREENPASS_UNIT_WORDS", 2500),
		Workers:       r.getEnvInt("SCREENPASS_WORKERS", 0),

		ContinueOnReject: getEnvBool("SCREENPASS_CONTINUE_ON_REJECT", false),
	}

	p.TicMax = r.getEnvInt("SCREENPASS_TIC_MAX", p.TicMax)
	p.ObjectMax = r.getEnvInt("SCREENPASS_OBJECT_MAX", p.ObjectMax)
	p.ExitMax = r.getEnvInt("SCREENPASS_EXIT_MAX", p.ExitMax)
	p.CooldownWords = r.getEnvInt("SCREENPASS_COOLDOWN_WORDS", p.CooldownWords)
	p.EllipsisCap = r.getEnvInt("SCREENPASS_ELLIPSIS_CAP", p.EllipsisCap)
	p.StutterCap = r.getEnvInt("SCREENPASS_STUTTER_CAP", p.StutterCap)
	p.FrictionProbability = r.getEnvFloat("SCREENPASS_FRICTION_PROBABILITY", p.FrictionProbability)
	p.FrictionMax = r.getEnvInt("SCREENPASS_FRICTION_MAX", p.FrictionMax)
	p.SensoryTarget = r.getEnvFloat("SCREENPASS_SENSORY_TARGET", p.SensoryTarget)
	p.SensoryMax = r.getEnvInt("SCREENPASS_SENSORY_MAX", p.SensoryMax)
	p.SomaticMax = r.getEnvInt("SCREENPASS_SOMATIC_MAX", p.SomaticMax)
	p.GenericResponseCap = r.getEnvInt("SCREENPASS_GENERIC_RESPONSE_CAP", p.GenericResponseCap)

	v := &p.Detectors.Voice
	v.MinCharacters = r.getEnvInt("SCREENPASS_VOICE_MIN_CHARACTERS", v.MinCharacters)
	v.RhythmTolerance = r.getEnvFloat("SCREENPASS_VOICE_RHYTHM_TOLERANCE", v.RhythmTolerance)
	v.SimilarPairRatio = r.getEnvFloat("SCREENPASS_VOICE_SIMILAR_RATIO", v.SimilarPairRatio)
	cfg.Pipeline = p

	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("SCREENPASS_DB_PATH is required")
	}
	if c.UnitWords <= 0 {
		return fmt.Errorf("SCREENPASS_UNIT_WORDS must be positive, got %d", c.UnitWords)
	}
	if c.Workers < 0 {
		return fmt.Errorf("SCREENPASS_WORKERS must not be negative, got %d", c.Workers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	p := c.Pipeline
	if p.FrictionProbability < 0 || p.FrictionProbability > 1 {
		return fmt.Errorf("SCREENPASS_FRICTION_PROBABILITY must be between 0 and 1, got %g", p.FrictionProbability)
	}
	for name, v := range map[string]int{
		"SCREENPASS_TIC_MAX":              p.TicMax,
		"SCREENPASS_OBJECT_MAX":           p.ObjectMax,
		"SCREENPASS_EXIT_MAX":             p.ExitMax,
		"SCREENPASS_COOLDOWN_WORDS":       p.CooldownWords,
		"SCREENPASS_ELLIPSIS_CAP":         p.EllipsisCap,
		"SCREENPASS_STUTTER_CAP":          p.StutterCap,
		"SCREENPASS_FRICTION_MAX":         p.FrictionMax,
		"SCREENPASS_SENSORY_MAX":          p.SensoryMax,
		"SCREENPASS_SOMATIC_MAX":          p.SomaticMax,
		"SCREENPASS_GENERIC_RESPONSE_CAP": p.GenericResponseCap,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return v
	}
	return defaultValue
}

// envReader parses typed variables and keeps the first failure.
type envReader struct {
	err error
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (r *envReader) getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return v
}

func (r *envReader) getEnvUint(key string, defaultValue uint64) uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return v
}

func (r *envReader) getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return v
}
