package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

func TestReplayRecordedRun(t *testing.T) {
	tests := []struct {
		name      string
		timeScale float64
	}{
		{"normal", 1},
		{"slow motion", 2},
		{"fast forward", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.BuiltinScene("billiards")
			if err != nil {
				t.Fatalf("BuiltinScene() error: %v", err)
			}
			cfg.World.TimeScale = tt.timeScale

			store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			defer store.Close()

			res, err := simulate(cfg, 4*time.Second)
			if err != nil {
				t.Fatalf("simulate() error: %v", err)
			}
			if _, err := store.SaveRun(runRecord(res)); err != nil {
				t.Fatalf("SaveRun() failed: %v", err)
			}
			want, err := store.LatestRun(cfg.ID)
			if err != nil || want == nil {
				t.Fatalf("LatestRun() = %v, %v", want, err)
			}

			got, ok, err := replay(cfg, *want)
			if err != nil {
				t.Fatalf("replay() error: %v", err)
			}
			if !ok {
				t.Errorf("replay() = %+v, expected a match with %+v", got, *want)
			}
		})
	}
}

func TestReplayDetectsDrift(t *testing.T) {
	cfg, err := config.BuiltinScene("billiards")
	if err != nil {
		t.Fatalf("BuiltinScene() error: %v", err)
	}

	res, err := simulate(cfg, 2*time.Second)
	if err != nil {
		t.Fatalf("simulate() error: %v", err)
	}
	want := runRecord(res)
	want.Hash++

	if _, ok, err := replay(cfg, want); err != nil || ok {
		t.Errorf("replay() = (%v, %v), expected a mismatch", ok, err)
	}
}

func TestReplayLegacyRow(t *testing.T) {
	cfg, err := config.BuiltinScene("billiards")
	if err != nil {
		t.Fatalf("BuiltinScene() error: %v", err)
	}

	res, err := simulate(cfg, 2*time.Second)
	if err != nil {
		t.Fatalf("simulate() error: %v", err)
	}
	want := runRecord(res)
	want.Wall = 0

	if _, ok, err := replay(cfg, want); err != nil || !ok {
		t.Errorf("replay() = (%v, %v), expected a match from simulated time", ok, err)
	}
}
