package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pizza-time/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in this build.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	ids := registry.IDs()

	if len(ids) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, id := range ids {
		fmt.Printf("  %-*s  %s\n", maxIDLen, id, registry.Title(id))
	}
}
