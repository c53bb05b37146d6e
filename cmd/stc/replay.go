package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stc/internal/replay"
	"github.com/vovakirdan/stc/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded replay",
	Long: `Re-run a recorded session on the headless platform, print its final
stats and board, and check them against the recording.

Examples:
  stc replay 3`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay ID %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	return verifyReplay(store, id)
}

// verifyReplay re-runs replay id and reports whether it matches.
func verifyReplay(store *storage.Store, id int64) error {
	j, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no replay #%d, run 'stc replays' to see recorded replays", id)
	}
	if err != nil {
		return fmt.Errorf("loading replay: %w", err)
	}

	logger.Debug("replaying", "id", id, "seed", j.Seed, "frames", len(j.Frames), "duration", j.Duration())
	got, err := replay.Verify(j)
	if err != nil && !errors.Is(err, replay.ErrMismatch) {
		return err
	}

	fmt.Printf("Replay #%d - %s, seed %d, %d frames (%s, %d inputs)\n",
		j.ID, j.Target, j.Seed, len(j.Frames), j.Duration(), j.Inputs())
	fmt.Println()
	printSummary(got)
	fmt.Println()
	fmt.Println(got.Board)
	fmt.Println()

	if err != nil {
		return err
	}
	fmt.Println("Replay matches the recording.")
	return nil
}
