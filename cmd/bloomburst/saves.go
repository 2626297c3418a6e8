package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bloom-burst/internal/storage"
)

var (
	flagSavesLimit  int
	flagSavesDelete string
)

var savesCmd = &cobra.Command{
	Use:   "saves <mode>",
	Short: "List or delete saved gardens",
	Long: `Lists the gardens saved with Ctrl+S for a mode, newest first.
Resume one with 'bloomburst play --save <id>'.

Examples:
  bloomburst saves classic
  bloomburst saves campaign --limit 5
  bloomburst saves zen --delete 3f1c2b7e-...`,
	Args: cobra.ExactArgs(1),
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().IntVar(&flagSavesLimit, "limit", 20, "Number of saves to show")
	savesCmd.Flags().StringVar(&flagSavesDelete, "delete", "", "Delete the save with this ID")
}

func runSaves(_ *cobra.Command, args []string) error {
	gameID, err := resolveMode(args[0])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagSavesDelete != "" {
		if err := store.DeleteSave(flagSavesDelete); err != nil {
			return err
		}
		logger.Info("save deleted", "id", flagSavesDelete)
		fmt.Printf("Deleted save %s.\n", flagSavesDelete)
		return nil
	}

	saves, err := store.ListSaves(gameID, flagSavesLimit)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Printf("No saved gardens for %s.\n", gameID)
		return nil
	}

	fmt.Printf("Saved gardens - %s\n", gameID)
	fmt.Println()
	fmt.Printf("  %-36s  %-16s  %s\n", "ID", "Saved", "Size")
	fmt.Printf("  %-36s  %-16s  %s\n", "--", "-----", "----")
	for _, s := range saves {
		fmt.Printf("  %-36s  %-16s  %d B\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), len(s.Payload))
	}
	return nil
}
