package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
	"github.com/vovakirdan/bloom-burst/internal/platform/tui"
	"github.com/vovakirdan/bloom-burst/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Bloom Burst with a mode picker",
	Long: `Start Bloom Burst in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
The campaign asks for a starting garden. After a round you return
to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  bloomburst menu
  bloomburst menu --difficulty hard
  bloomburst menu --db ./scores.db`,
	Args:        cobra.NoArgs,
	Annotations: interactive,
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureGames(); err != nil {
		return err
	}

	store := openStoreOptional()
	defer closeStore(store)

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		if gameID == bloomburst.ModeCampaign {
			levelID, ok, pickErr := pickLevel(cfg)
			if pickErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
				continue
			}
			if !ok {
				continue // Back to menu
			}
			bloomburst.SetStartLevel(levelID)
		}

		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}

		// Fresh garden for every round unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting round", "mode", gameID)
		if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
