package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
	// The target packages register themselves in init
	"github.com/vovakirdan/stc/internal/platform/headless"
	"github.com/vovakirdan/stc/internal/platform/tui"
	"github.com/vovakirdan/stc/internal/registry"
	"github.com/vovakirdan/stc/internal/replay"
	"github.com/vovakirdan/stc/internal/storage"
)

var (
	flagTarget string
	flagRecord bool
	flagFrames int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session on the selected platform target.

Controls (terminal):
  Left/A, Right/D  - Move
  Down/S           - Soft drop
  Up/W             - Rotate
  Space            - Hard drop
  P/F1             - Pause
  N/F2             - Toggle next piece preview
  G/F3             - Toggle ghost piece
  R/F5             - Restart
  Q/Esc            - Quit
  Ctrl+S           - Save a screenshot to ~/.stc/screenshots

Difficulty options:
  easy   - Gravity starts a third slower
  normal - Classic rules
  hard   - Gravity starts twice as fast, levels every 8 rows
  fixed  - Gravity never speeds up

Examples:
  stc play
  stc play --difficulty easy
  stc play --record
  stc play --target headless --seed 42 --frames 3600
  stc play --config ./wide.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagTarget, "target", "t", tui.TargetID, "Platform target (see 'stc targets')")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a replay")
	playCmd.Flags().IntVar(&flagFrames, "frames", 0, "Frame limit for the headless target (0 = default)")
	addRulesFlags(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagTarget) {
		return fmt.Errorf("unknown target %q, run 'stc targets' to see available targets", flagTarget)
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	// Resolve a clock seed now so the replay can record it.
	_, rt.Seed = core.NewRand(rt.Seed)

	target, err := registry.Create(flagTarget)
	if err != nil {
		return fmt.Errorf("creating target: %w", err)
	}
	if ht, ok := target.(*headless.Target); ok {
		ht.MaxFrames = flagFrames
	}

	opts := registry.Options{Runtime: rt, Logger: logger}
	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder(target.ID(), rt.Seed, rules)
		opts.Recorder = rec
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Debug("starting session", "target", target.ID(), "seed", rt.Seed, "fps", rt.TickRate)
	res, runErr := target.Run(ctx, engine.New(rules), opts)
	// An interrupt still prints and records what was played.
	if runErr != nil && ctx.Err() == nil {
		logger.Error("session failed", "target", target.ID(), "error", runErr)
		return fmt.Errorf("session on %s failed: %w", target.ID(), runErr)
	}

	printResult(res)

	if rec != nil {
		saveReplay(rec.Finish(res))
	}
	return nil
}

func printResult(res registry.Result) {
	fmt.Println()
	printSummary(replay.Summarize(res.Code, res.Snapshot))
	fmt.Printf("  %-8s %d\n", "Frames", res.Frames)
}

func printSummary(s replay.Summary) {
	fmt.Printf("  %-8s %d\n", "Score", s.Score)
	fmt.Printf("  %-8s %d\n", "Lines", s.Lines)
	fmt.Printf("  %-8s %d\n", "Level", s.Level)
	fmt.Printf("  %-8s %d\n", "Pieces", s.TotalPieces)
	fmt.Printf("  %-8s %s\n", "Shapes", formatShapes(s.Pieces))
	fmt.Printf("  %-8s %s\n", "State", s.State)
	fmt.Printf("  %-8s %v\n", "Code", s.Code)
}

// formatShapes renders per-shape counts as "I:3 O:1 ...".
func formatShapes(pieces [engine.ShapeCount]int) string {
	parts := make([]string, 0, len(pieces))
	for shape, n := range pieces {
		parts = append(parts, fmt.Sprintf("%s:%d", engine.Shape(shape), n))
	}
	return strings.Join(parts, " ")
}

// saveReplay stores j, continuing with a warning when the database is
// unavailable.
func saveReplay(j replay.Journal) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReplay(j)
	if err != nil {
		logger.Warn("could not save replay", "error", err)
		return
	}
	fmt.Printf("\nSaved replay #%d (%d frames). Run 'stc replay %d' to check it.\n", id, len(j.Frames), id)
}
