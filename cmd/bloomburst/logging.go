package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "interactive"

var interactive = map[string]string{annotationInteractive: "true"}

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// setupLogging builds the shared logger.
// Interactive commands own the terminal, so they only log with --log-file.
func setupLogging(cmd *cobra.Command, _ []string) error {
	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		path, err := expandHome(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case cmd.Annotations[annotationInteractive] == "true":
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bloomburst",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	bloomburst.SetLogger(logger)
	return nil
}

func closeLogging(_ *cobra.Command, _ []string) {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
