package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
	"github.com/vovakirdan/bloom-burst/internal/platform/tui"
	"github.com/vovakirdan/bloom-burst/internal/registry"
	"github.com/vovakirdan/bloom-burst/internal/storage"
)

var (
	flagMode      string
	flagLevel     string
	flagPickLevel bool
	flagResume    bool
	flagSaveID    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (classic by default).

Modes:
  classic  - Random orders, a failed check ends the round (alias: strict)
  zen      - Random orders, failed checks only leave a hint (alias: lenient)
  campaign - Hand-made gardens with fixed objectives

Controls:
  Arrows/WASD   - Move the cursor
  Space/Enter   - Plant the selected flower
  Tab / [ ]     - Choose the flower
  X/Backspace   - Dig up a flower
  T             - Prune creepers with the shears (2x2 from the cursor)
  C             - Check the garden against the order
  .             - Pass the turn
  1 / 2         - Score Boost / Slow Creepers
  Ctrl+S        - Save the garden
  P/Esc         - Pause
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Slower creepers, extra shears, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, fewer shears
  fixed  - No progression, stays at config's initial level

Examples:
  bloomburst play
  bloomburst play zen --difficulty easy
  bloomburst play campaign --level sunset_harmony
  bloomburst play campaign --pick-level
  bloomburst play --resume
  bloomburst play --save 3f1c...`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: interactive,
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagMode, "mode", "m", bloomburst.ModeClassic, "Mode to play: classic (strict), zen or campaign")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Campaign level ID to start from")
	playCmd.Flags().BoolVar(&flagPickLevel, "pick-level", false, "Choose the campaign level from a list")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the most recent saved garden of the mode")
	playCmd.Flags().StringVar(&flagSaveID, "save", "", "Resume a specific saved garden (see 'bloomburst saves')")
}

func runPlay(_ *cobra.Command, args []string) error {
	name := flagMode
	if len(args) == 1 {
		name = args[0]
	}
	gameID, err := resolveMode(name)
	if err != nil {
		return err
	}
	if err := configureGames(); err != nil {
		return err
	}

	store := openStoreOptional()
	defer closeStore(store)

	opts := []tui.Option{tui.WithLogger(logger)}

	if flagResume || flagSaveID != "" {
		save, err := findSave(store, gameID)
		if err != nil {
			return err
		}
		gameID = save.GameID
		opts = append(opts, tui.WithResume(save.Payload))
	}

	cfg := runtimeConfig()

	if flagLevel != "" || flagPickLevel {
		if gameID != bloomburst.ModeCampaign {
			return fmt.Errorf("--level and --pick-level only apply to the %s mode", bloomburst.ModeCampaign)
		}
		levelID := flagLevel
		if levelID == "" {
			picked, ok, err := pickLevel(cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil // User backed out
			}
			levelID = picked
		}
		bloomburst.SetStartLevel(levelID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("starting round", "mode", gameID)
	if err := tui.Run(game, store, cfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// findSave returns the save named by --save, or the latest one of the mode.
func findSave(store *storage.Store, gameID string) (*storage.SaveEntry, error) {
	if store == nil {
		return nil, errors.New("cannot resume without the scores database")
	}

	if flagSaveID != "" {
		save, err := store.LoadSave(flagSaveID)
		if err != nil {
			return nil, err
		}
		if save == nil {
			return nil, fmt.Errorf("no saved garden with ID %q", flagSaveID)
		}
		return save, nil
	}

	save, err := store.LatestSave(gameID)
	if err != nil {
		return nil, err
	}
	if save == nil {
		return nil, fmt.Errorf("no saved garden for %s", gameID)
	}
	return save, nil
}

// pickLevel shows the level picker. ok is false when the user backs out.
// An empty ID means the first level.
func pickLevel(cfg core.RuntimeConfig) (id string, ok bool, err error) {
	items, err := levelItems()
	if err != nil {
		return "", false, err
	}
	sel, err := tui.RunLevelSelector(items, cfg)
	if err != nil || sel == nil {
		return "", false, err
	}
	return sel.LevelID, true, nil
}
