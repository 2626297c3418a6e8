package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vovakirdan/bloom-burst/internal/config"
	"github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
	"github.com/vovakirdan/bloom-burst/internal/platform/tui"
	"github.com/vovakirdan/bloom-burst/internal/registry"
	"github.com/vovakirdan/bloom-burst/internal/storage"
)

// modeAliases maps alternative names to registered mode IDs.
var modeAliases = map[string]string{
	"strict":  bloomburst.ModeClassic,
	"lenient": bloomburst.ModeZen,
}

// resolveMode validates a mode name given on the command line.
func resolveMode(name string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := modeAliases[id]; ok {
		id = alias
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q (run 'bloomburst list' to see the modes)", name)
	}
	return id, nil
}

// configureGames hands the global flags to the modes before they are created.
func configureGames() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	bloomburst.SetConfigPath(flagConfig)
	bloomburst.SetDifficultyPreset(preset)
	bloomburst.SetLevelsDir(flagLevels)
	return nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStoreOptional opens the database, or returns nil so play can go on without it.
func openStoreOptional() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

// levelItems lists the campaign levels for the picker.
func levelItems() ([]tui.LevelItem, error) {
	all, err := bloomburst.CampaignLevels()
	if err != nil {
		return nil, err
	}
	items := make([]tui.LevelItem, len(all))
	for i, l := range all {
		items[i] = tui.LevelItem{ID: l.ID, Name: l.Name}
	}
	return items, nil
}
