package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/learnkit/pkg/config"
	"github.com/skillhub/learnkit/pkg/session"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, 5*time.Minute, cfg.ProfileFreshness)
	assert.Equal(t, 15*time.Second, cfg.InitTimeout)
	assert.Equal(t, 5*time.Second, cfg.LogoutTimeout)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Empty(t, cfg.TokenPath)
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("LEARNKIT_API_BASE_URL", "https://api.example.com")
	t.Setenv("LEARNKIT_PROFILE_FRESHNESS", "90s")
	t.Setenv("LEARNKIT_TOKEN_PATH", "/tmp/learnkit-token")

	var cfg session.Config
	require.NoError(t, config.ForceReloadConfig(&cfg))

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/learnkit-token", cfg.TokenPath)
	assert.Equal(t, 90*time.Second, cfg.ProfileFreshness)
	// Untouched fields fall back to their env defaults.
	assert.Equal(t, 15*time.Second, cfg.InitTimeout)
	assert.Equal(t, 5*time.Second, cfg.LogoutTimeout)
}
