package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("GIGACHAT_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Empty(t, cfg.GigaChat.APIKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("COMPANY_NAME", "Auto Center")
	t.Setenv("COMPANY_CNPJ", "12.345.678/0001-90")
	t.Setenv("GIGACHAT_INSECURE_SKIP_VERIFY", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "Auto Center", cfg.Company.Name)
	assert.Equal(t, "12.345.678/0001-90", cfg.Company.CNPJ)
	assert.False(t, cfg.GigaChat.InsecureSkipVerify)
}

func TestCompanyLocation(t *testing.T) {
	assert.Equal(t, time.UTC, CompanyConfig{Timezone: "Nowhere/Invalid"}.Location())
	assert.Equal(t, "UTC", CompanyConfig{Timezone: "UTC"}.Location().String())
}
