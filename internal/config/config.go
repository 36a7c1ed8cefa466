// Package config loads CLI configuration from defaults, an optional YAML file and BOX2D_*
// environment variables, in that order of precedence (later wins).
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides (BOX2D_LOG_LEVEL -> log.level).
const EnvPrefix = "BOX2D_"

// Config is the CLI configuration after defaults, file and environment are merged.
type Config struct {
	Workspace string        `koanf:"workspace"`
	Project   ProjectConfig `koanf:"project"`
	Scene     SceneConfig   `koanf:"scene"`
	Log       LogConfig     `koanf:"log"`
}

// ProjectConfig overrides the workspace file's project directory when Dir is set.
type ProjectConfig struct {
	Dir string `koanf:"dir"`
}

// SceneConfig overrides the workspace file's generated-scene directory when Dir is set.
type SceneConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig selects the log level and the editor console file.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"` // relative to the workspace; empty disables the console file
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("workspace", ".")
	k.Set("project.dir", "")
	k.Set("scene.dir", "")
	k.Set("log.level", "info")
	k.Set("log.file", "logs/editor.txt")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
