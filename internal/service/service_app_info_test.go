package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/typedconf/internal/config"
	"github.com/MKhiriev/typedconf/internal/logger"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	cfg := config.DefaultAppConfig()

	svc, err := NewAppInfoService(cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyAppName_ReturnsError(t *testing.T) {
	cfg := config.AppConfig{}

	svc, err := NewAppInfoService(cfg, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAppNameNotGiven))
}

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo_ReturnsConfiguredValues(t *testing.T) {
	cfg := config.DefaultAppConfig()
	cfg.Model.ID = "gpt-4o-mini"
	cfg.Provider.APIKey = "sk-secret"
	svc, err := NewAppInfoService(cfg, logger.Nop())
	require.NoError(t, err)

	got := svc.GetAppInfo(context.Background())

	assert.Equal(t, AppInfo{
		AppName:     "MyCoolApp",
		ModelID:     "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   100,
		TopP:        1,
		BaseURL:     "https://api.openai.com/v1",
		HasAPIKey:   true,
	}, got)
}
