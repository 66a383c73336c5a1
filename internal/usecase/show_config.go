package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Merged configuration in effect
	GlobalConfig    domain.ConfigInfo // Global config file info
	LocalConfig     domain.ConfigInfo // Local config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the merged result.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &ShowConfigOutput{
		EffectiveConfig: cfg,
		GlobalConfig:    uc.configManager.GlobalConfigInfo(),
		LocalConfig:     uc.configManager.LocalConfigInfo(),
	}, nil
}
