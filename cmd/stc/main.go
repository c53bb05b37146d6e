// stc is a falling-block puzzle game for the terminal, with a headless
// simulator and deterministic replays.
//
// Usage:
//
//	stc play               - Play in the terminal
//	stc play -t headless   - Run a headless simulation
//	stc targets            - List available platform targets
//	stc replays            - List recorded replays
//	stc replay <id>        - Re-run a replay and check its outcome
//	stc config             - Print the effective rules as YAML
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible piece sequences
//	--db <path>     - Set database path (default: ~/.stc/replays.db)
//	--verbose       - Enable debug logging
//	--log <file>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
	flagLogFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "stc",
})

// logFile is the --log destination, closed after the command runs.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stc",
	Short: "stc - a simple tetris clone for your terminal",
	Long: `stc is a falling-block puzzle game. The rules engine runs on
interchangeable platforms: the terminal, or a headless simulator used for
tests and replays.

Available commands:
  play      - Play a session
  targets   - Show all platform targets
  replays   - List recorded replays
  replay    - Re-run a recorded replay
  config    - Print the effective rules

Examples:
  stc play
  stc play --difficulty hard --record
  stc play --target headless --seed 42
  stc replays
  stc replay 3`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stc/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging applies --verbose and --log. The terminal target owns the
// screen, so its diagnostics are only visible through --log.
func setupLogging(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	if flagLogFile == "" {
		return nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger.SetOutput(f)
	return nil
}
