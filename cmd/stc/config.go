package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stc/internal/config"
	"github.com/vovakirdan/stc/internal/engine"
)

var (
	flagConfig     string
	flagDifficulty string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules a session would use, after the config file search,
STC_* environment overrides and the difficulty preset.

Search order:
  --config path, ~/.stc/configs/stc.yaml, ./configs/stc.yaml, built-in defaults

Examples:
  stc config > ~/.stc/configs/stc.yaml
  STC_BOARD_WIDTH=12 stc config
  stc config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addRulesFlags(configCmd)
}

// addRulesFlags registers the flags that select the rules.
func addRulesFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadRules resolves the rules from --config and --difficulty.
func loadRules() (engine.Config, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return engine.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return engine.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	logger.Debug("rules loaded", "config", flagConfig, "difficulty", preset,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height))
	return cfg.Engine(), nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}

	data, err := config.Marshal(config.FromEngine(rules))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
