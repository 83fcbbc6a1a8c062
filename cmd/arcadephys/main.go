// arcadephys runs arcade physics scenes headless or in the terminal.
//
// Usage:
//
//	arcadephys list                 - List available scenes
//	arcadephys simulate <scene>     - Run a scene headless and print a summary
//	arcadephys verify <scene>       - Re-run a scene and compare with the last recorded run
//	arcadephys play <scene>         - Watch a scene in the terminal
//	arcadephys menu                 - Pick scenes interactively
//	arcadephys runs [scene]         - Show recorded runs
//	arcadephys serve                - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>         - Viewer tick rate (default: 60)
//	--db <path>          - Runs database (default: ~/.arcadephys/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log file for the terminal viewer
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-physics/internal/core"

	// Import scenes to register them
	_ "github.com/vovakirdan/arcade-physics/internal/scene"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcadephys",
	Short: "Arcade physics - fixed-step 2D physics scenes in your terminal",
	Long: `arcadephys runs arcade-style 2D physics scenes: gravity, bouncing,
separation of overlapping bodies, and collision against tilemaps.

Available commands:
  list      - Show all available scenes
  simulate  - Run a scene headless
  verify    - Check a scene still reproduces its last recorded run
  play      - Watch a scene in the terminal
  menu      - Interactive scene picker
  runs      - View recorded runs
  serve     - Start SSH server for remote viewing

Examples:
  arcadephys list
  arcadephys simulate billiards --seconds 10 --record
  arcadephys play platformer
  arcadephys serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Viewer tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcadephys/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write terminal viewer logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns a stderr logger at the configured level.
func newLogger() *log.Logger {
	return newLoggerTo(os.Stderr)
}

func newLoggerTo(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcadephys",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// viewerLogger returns a logger that does not write over the terminal UI.
// The returned func closes the log file, if any.
func viewerLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLoggerTo(io.Discard), func() {}
	}

	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return newLoggerTo(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return newLoggerTo(io.Discard), func() {}
	}
	return newLoggerTo(f), func() { f.Close() }
}

// runtimeConfig sizes the viewer to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
