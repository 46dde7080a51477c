package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenpass/internal/pipeline"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// t.Setenv restores the previous value once the test ends
	for _, key := range []string{
		"SCREENPASS_DB_PATH", "SCREENPASS_WORKSPACE", "LOG_LEVEL", "SCREENPASS_SEED",
		"SCREENPASS_UNIT_WORDS", "SCREENPASS_WORKERS", "SCREENPASS_TIC_MAX", "SCREENPASS_OBJECT_MAX",
		"SCREENPASS_EXIT_MAX", "SCREENPASS_COOLDOWN_WORDS", "SCREENPASS_ELLIPSIS_CAP", "SCREENPASS_STUTTER_CAP",
		"SCREENPASS_FRICTION_PROBABILITY", "SCREENPASS_FRICTION_MAX", "SCREENPASS_SENSORY_TARGET",
		"SCREENPASS_SENSORY_MAX", "SCREENPASS_SOMATIC_MAX", "SCREENPASS_GENERIC_RESPONSE_CAP",
		"SCREENPASS_VOICE_MIN_CHARACTERS", "SCREENPASS_VOICE_RHYTHM_TOLERANCE", "SCREENPASS_VOICE_SIMILAR_RATIO",
		"SCREENPASS_CONTINUE_ON_REJECT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/screenpass.db", cfg.DatabasePath)
		assert.Equal(t, "", cfg.WorkspacePath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, uint64(1), cfg.Seed)
		assert.Equal(t, 2500, cfg.UnitWords)
		assert.Equal(t, pipeline.DefaultConfig(), cfg.Pipeline)
		require.NoError(t, cfg.Validate())
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCREENPASS_DB_PATH", "/custom/path.db")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("SCREENPASS_SEED", "99")
		t.Setenv("SCREENPASS_TIC_MAX", "4")
		t.Setenv("SCREENPASS_FRICTION_PROBABILITY", "0.2")
		t.Setenv("SCREENPASS_VOICE_SIMILAR_RATIO", "0.8")
		t.Setenv("SCREENPASS_CONTINUE_ON_REJECT", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.Equal(t, 4, cfg.Pipeline.TicMax)
		assert.Equal(t, 0.2, cfg.Pipeline.FrictionProbability)
		assert.Equal(t, 0.8, cfg.Pipeline.Detectors.Voice.SimilarPairRatio)
		assert.True(t, cfg.ContinueOnReject)
		level, err := cfg.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		// godotenv never overrides a variable that exists, even when empty
		require.NoError(t, os.Unsetenv("SCREENPASS_UNIT_WORDS"))
		require.NoError(t, os.WriteFile(".env", []byte("SCREENPASS_UNIT_WORDS=1200\n"), 0o644))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 1200, cfg.UnitWords)
	})

	t.Run("invalid integer", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCREENPASS_EXIT_MAX", "lots")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCREENPASS_EXIT_MAX")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DatabasePath: "x.db", LogLevel: "info", UnitWords: 100, Pipeline: pipeline.DefaultConfig()}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.DatabasePath = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Pipeline.FrictionProbability = 1.5
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Pipeline.EllipsisCap = -1
	assert.ErrorContains(t, cfg.Validate(), "SCREENPASS_ELLIPSIS_CAP")

	cfg = valid()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}
