package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stc/internal/platform/tui"
	"github.com/vovakirdan/stc/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded replays",
	Long: `Display the most recent replays saved with 'stc play --record'.

With --browse, pick a replay interactively to re-run it.

Examples:
  stc replays
  stc replays --limit 50
  stc replays --browse`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of replays to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Pick a replay in an interactive table")
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	if flagBrowse {
		return browseReplays(store)
	}

	entries, err := store.ListReplays(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving replays: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stc play --record' to keep one.")
		return nil
	}

	fmt.Printf("  %-5s  %-16s  %-9s  %-10s  %-5s  %-5s  %s\n", "ID", "Date", "Target", "Score", "Lines", "Level", "Frames")
	fmt.Printf("  %-5s  %-16s  %-9s  %-10s  %-5s  %-5s  %s\n", "--", "----", "------", "-----", "-----", "-----", "------")

	for _, e := range entries {
		fmt.Printf("  %-5d  %-16s  %-9s  %-10d  %-5d  %-5d  %d\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Target,
			e.Final.Score, e.Final.Lines, e.Final.Level, e.Frames)
	}
	return nil
}

func browseReplays(store *storage.Store) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	id, err := tui.RunBrowser(store, flagLimit, width, height)
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if id == 0 {
		return nil
	}
	return verifyReplay(store, id)
}
