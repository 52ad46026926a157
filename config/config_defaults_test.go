package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_DevelopmentFallsBackToLocalSecrets(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, EnvDevelopment, cfg.Env.Env)
	assert.Equal(t, devAccessSecret, cfg.SecretKey.Access)
	assert.Equal(t, devRefreshSecret, cfg.SecretKey.Refresh)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Token.RefreshTTL)
	assert.Contains(t, cfg.Auth.PublicRoutes, "/api/user/sign-up")
	assert.Contains(t, cfg.Auth.PublicRoutes, "/api/user/refresh-token")
}

func TestApplyDefaults_ProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = EnvProduction

	err := cfg.applyDefaults()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.access")
}

func TestApplyDefaults_ProductionRequiresRefreshSecret(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = EnvProduction
	cfg.SecretKey.Access = "prod-access-secret"

	err := cfg.applyDefaults()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.refresh")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = EnvProduction
	cfg.SecretKey.Access = "prod-access-secret"
	cfg.SecretKey.Refresh = "prod-refresh-secret"
	cfg.Token.AccessTTL = 5 * time.Minute
	cfg.HTTP.Port = 9090
	cfg.Auth.PublicRoutes = []string{"/health"}

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, "prod-access-secret", cfg.SecretKey.Access)
	assert.Equal(t, 5*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"/health"}, cfg.Auth.PublicRoutes)
}
