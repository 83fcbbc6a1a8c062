package config

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

//go:embed defaults/scenes/*.yaml
var defaultScenes embed.FS

const scenesDir = "defaults/scenes"

// DefaultWorldConfig returns the default world options.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		FPS:       60,
		TimeScale: 1,
		Gravity:   geom.Vec2{},
		Bounds:    geom.NewRect(0, 0, 800, 600),
		CheckCollision: BoundsCheck{
			Up:    true,
			Down:  true,
			Left:  true,
			Right: true,
		},
		OverlapBias: 4,
		TileBias:    16,
		Debug: DebugConfig{
			ShowBody:        true,
			ShowStaticBody:  true,
			ShowVelocity:    true,
			BodyColor:       0xff00ff,
			StaticBodyColor: 0x0000ff,
			VelocityColor:   0x00ff00,
		},
		MaxEntries: 16,
		UseTree:    true,
	}
}

// DefaultSceneConfig returns an empty scene carrying the default world.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Seconds: 5,
		World:   DefaultWorldConfig(),
	}
}

// BuiltinScenes returns the ids of the embedded scenes, sorted.
func BuiltinScenes() []string {
	entries, err := defaultScenes.ReadDir(scenesDir)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// BuiltinScene parses the embedded scene with the given id.
func BuiltinScene(id string) (SceneConfig, error) {
	data := builtinScene(id)
	if data == nil {
		return SceneConfig{}, fmt.Errorf("%w: unknown scene %q", ErrInvalid, id)
	}
	return ParseScene(data)
}

// builtinScene returns the embedded YAML for id, or nil.
func builtinScene(id string) []byte {
	data, err := defaultScenes.ReadFile(path.Join(scenesDir, id+".yaml"))
	if err != nil {
		return nil
	}
	return data
}
