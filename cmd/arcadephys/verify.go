package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/scene"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <scene>",
	Short: "Check a scene reproduces its last recorded run",
	Long: `Re-run a scene for the duration of its newest recorded run and compare
step count, contacts and state hash. Exits with status 1 on a mismatch.

Examples:
  arcadephys simulate billiards --seconds 10 --record
  arcadephys verify billiards`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom scene YAML")
}

func runVerify(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	want, err := store.LatestRun(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if want == nil {
		fmt.Fprintf(os.Stderr, "No recorded run for %q. Record one with 'arcadephys simulate %s --record'.\n", args[0], args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadScene(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	got, ok, err := replay(cfg, *want)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !ok {
		fmt.Printf("MISMATCH against run #%d\n", want.ID)
		fmt.Printf("  steps     %d != %d\n", got.Steps, want.Steps)
		fmt.Printf("  contacts  %d != %d\n", got.Contacts, want.Contacts)
		fmt.Printf("  hash      %016x != %016x\n", got.Hash, want.Hash)
		os.Exit(1)
	}
	fmt.Printf("OK: %s matches run #%d (%d steps, hash %016x)\n", args[0], want.ID, got.Steps, got.Hash)
}

// replay re-runs cfg for the wall time of a recorded run and reports whether
// the result matches it.
func replay(cfg config.SceneConfig, want storage.Run) (scene.Result, bool, error) {
	// Rows recorded before wall_ns existed only carry simulated time.
	d := want.Wall
	if d == 0 {
		d = want.Elapsed
	}

	got, err := simulate(cfg, d)
	if err != nil {
		return got, false, err
	}
	ok := got.Steps == want.Steps && got.Contacts == want.Contacts && got.Hash == want.Hash
	return got, ok, nil
}
