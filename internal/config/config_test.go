package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "FLASH_DURATION", "UMPIRE_TOKEN", "CORS_ORIGINS", "DEV_MODE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 400*time.Millisecond, cfg.FlashDuration)
	assert.Empty(t, cfg.UmpireToken)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DevMode)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FLASH_DURATION", "1s")
	t.Setenv("UMPIRE_TOKEN", "secret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Second, cfg.FlashDuration)
	assert.Equal(t, "secret", cfg.UmpireToken)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.DevMode)
}

func TestLoad_BadFlashDuration(t *testing.T) {
	t.Setenv("FLASH_DURATION", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FLASH_DURATION", "-1s")
	_, err = Load()
	assert.Error(t, err)
}
