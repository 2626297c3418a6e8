// bloomburst is a turn-based flower arrangement puzzle for the terminal.
//
// Usage:
//
//	bloomburst list              - List play modes
//	bloomburst play [mode]       - Play a mode (classic, zen, campaign)
//	bloomburst menu              - Pick modes interactively
//	bloomburst levels            - List campaign levels
//	bloomburst scores [mode]     - Show high scores
//	bloomburst saves <mode>      - List or delete saved gardens
//	bloomburst config            - Print the effective configuration
//	bloomburst serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Redraw rate (default: 30)
//	--seed <value>        - RNG seed for reproducible gardens
//	--db <path>           - Database path (default: ~/.bloomburst/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Campaign level directory
//	--verbose             - Debug logging
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagVerbose    bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bloomburst",
	Short: "Bloom Burst - arrange flowers, keep the creepers back",
	Long: `Bloom Burst is a turn-based puzzle played in the terminal.

Plant flowers on the garden grid to satisfy an order while creepers spread
over the empty beds every turn. Prune them with a limited pair of shears
before they overrun the garden.

Available commands:
  list     - Show the play modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  levels   - Show the campaign levels
  scores   - View high scores
  saves    - Manage saved gardens
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  bloomburst play
  bloomburst play zen
  bloomburst play campaign --level sunset_serenade
  bloomburst play --resume
  bloomburst serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: closeLogging,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 30, "Redraw rate (ticks per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.bloomburst/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagLevels, "levels", "", "Directory with campaign level files (default: built-in levels)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
