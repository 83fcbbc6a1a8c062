package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows a list of all built-in scenes.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcadephys play <id>' to watch a scene.")
}
