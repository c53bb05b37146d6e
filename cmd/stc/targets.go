package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stc/internal/registry"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List all platform targets",
	Long:  `Shows the platforms the engine can run on.`,
	RunE:  runTargets,
}

func runTargets(_ *cobra.Command, _ []string) error {
	targets := registry.List()

	if len(targets) == 0 {
		fmt.Println("No targets available.")
		return nil
	}

	fmt.Println("Available targets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, t := range targets {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, t := range targets {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'stc play --target <id>' to use one.")
	return nil
}
