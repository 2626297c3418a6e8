package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bloom-burst/internal/config"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the campaign levels in play order, with their garden size.
Levels that use flowers missing from the configured catalog are marked
as unplayable; the campaign skips them.

Examples:
  bloomburst levels
  bloomburst levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	if err := configureGames(); err != nil {
		return err
	}
	all, err := bloomburst.CampaignLevels()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog.BuildCatalog()
	if err != nil {
		return err
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-18s  %-20s  %-5s  %s\n", "#", "ID", "Name", "Size", "Notes")
	fmt.Printf("  %-3s  %-18s  %-20s  %-5s  %s\n", "-", "--", "----", "----", "-----")
	for i, l := range all {
		notes := l.Description
		if err := l.ValidateCatalog(catalog); err != nil {
			notes = "unplayable: " + err.Error()
		}
		size := fmt.Sprintf("%dx%d", l.Rows, l.Cols)
		fmt.Printf("  %-3d  %-18s  %-20s  %-5s  %s\n", i+1, l.ID, l.Name, size, notes)
	}

	fmt.Println()
	fmt.Println("Run 'bloomburst play campaign --level <id>' to start from a level.")
	return nil
}
