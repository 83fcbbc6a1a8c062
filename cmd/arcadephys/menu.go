package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
	"github.com/vovakirdan/arcade-physics/internal/scene"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes from an interactive menu",
	Long: `Start the viewer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to run a scene and Tab to browse
recorded runs. Esc or B in a scene returns to the menu.

Examples:
  arcadephys menu
  arcadephys menu --fps 30`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := viewerLogger()
	defer closeLog()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsRuns {
			goBack, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}
			continue
		}

		sceneCfg, err := config.LoadScene(result.SceneID, "")
		if err != nil {
			logger.Error("cannot load scene", "scene", result.SceneID, "error", err)
			continue
		}

		goBack, err := tui.Run(scene.NewRunner(sceneCfg, logger), cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
			return
		}
		if !goBack {
			return
		}
	}
}
