package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/stc.yaml
var defaultStcYAML []byte

// envPrefix namespaces the environment overrides, e.g. STC_BOARD_WIDTH.
const envPrefix = "STC_"

// Load loads the rules configuration and applies environment overrides.
// Search order: customPath -> ~/.stc/configs/stc.yaml -> ./configs/stc.yaml -> embedded default
func Load(customPath string) (StcConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (StcConfig, error) {
	var cfg StcConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken optional files fall through to the next location.
	if userCfgPath := userConfigPath("stc.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "stc.yaml")); err == nil {
		cfg = StcConfig{}
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg = StcConfig{}
	if err := yaml.Unmarshal(defaultStcYAML, &cfg); err != nil {
		return DefaultStcConfig(), nil
	}
	return cfg, nil
}

// ApplyEnv overrides fields from STC_* environment variables.
func ApplyEnv(cfg *StcConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg StcConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stc", "configs", filename)
}
