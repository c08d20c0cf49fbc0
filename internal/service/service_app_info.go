package service

import (
	"context"

	"github.com/MKhiriev/typedconf/internal/config"
	"github.com/MKhiriev/typedconf/internal/logger"
)

// AppInfo summarises the loaded configuration without secrets.
type AppInfo struct {
	AppName     string  `json:"app_name" yaml:"app_name"`
	ModelID     string  `json:"model_id" yaml:"model_id"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	TopP        float64 `json:"top_p" yaml:"top_p"`
	BaseURL     string  `json:"base_url" yaml:"base_url"`
	HasAPIKey   bool    `json:"has_api_key" yaml:"has_api_key"`
}

type appInfoService struct {
	info AppInfo

	logger *logger.Logger
}

func NewAppInfoService(cfg config.AppConfig, logger *logger.Logger) (AppInfoService, error) {
	if cfg.AppName == "" {
		return nil, ErrAppNameNotGiven
	}

	return &appInfoService{
		info: AppInfo{
			AppName:     cfg.AppName,
			ModelID:     cfg.Model.ID,
			Temperature: cfg.Model.Temperature,
			MaxTokens:   cfg.Model.MaxTokens,
			TopP:        cfg.Model.TopP,
			BaseURL:     cfg.Provider.BaseURL,
			HasAPIKey:   cfg.Provider.APIKey != "",
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) AppInfo {
	return s.info
}
