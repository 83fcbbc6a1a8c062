package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ParseScene decodes a scene from YAML over the defaults and validates it.
func ParseScene(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadScene loads a scene configuration.
// Search order: customPath -> ~/.arcadephys/scenes/<id>.yaml -> ./scenes/<id>.yaml -> embedded default
func LoadScene(id, customPath string) (SceneConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SceneConfig{}, fmt.Errorf("failed to read scene %s: %w", customPath, err)
		}
		cfg, err := ParseScene(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to load scene %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user scene directory
	if userPath := userScenePath(id + ".yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := ParseScene(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local scenes directory
	if data, err := os.ReadFile(filepath.Join("scenes", id+".yaml")); err == nil {
		if cfg, err := ParseScene(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	return BuiltinScene(id)
}

// userScenePath returns the path to a user scene file, or empty if home is unavailable.
func userScenePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcadephys", "scenes", filename)
}
