package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SF_INSTANCE_URL", "https://example.my.salesforce.com")
	t.Setenv("SF_SESSION_TOKEN", "00D-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.my.salesforce.com", cfg.InstanceURL)
	assert.Equal(t, "00D-token", cfg.SessionToken)
	assert.Equal(t, "59.0", cfg.APIVersion)
	assert.Equal(t, ":3002", cfg.ListenAddr)
}

func TestLoadRequiresInstanceURL(t *testing.T) {
	t.Setenv("SF_INSTANCE_URL", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SF_INSTANCE_URL")
}
