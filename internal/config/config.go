// Package config loads this tool's one piece of required external state
// (spec §6 "Environment"): the symmetric key used to decrypt packed data
// tables, plus the paths it reads/writes by default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the tool's on-disk configuration, following the teacher's
// struct-plus-yaml-tags, Default()/Load(path) shape (internal/config in
// the teacher repo).
type Config struct {
	// TableKey is the URL-safe base64 symmetric key for the packed data
	// table envelope (spec §4.6, §6).
	TableKey string `yaml:"table_key"`

	// DataDir holds the five packed table files (base_items.dat,
	// item_types.dat, item_mods.dat, item_stats.dat, skills.dat).
	DataDir string `yaml:"data_dir"`

	// SaveLibraryDir is the directory of item template files
	// (original_source's D2S_STORAGE_DIR). Character.AddItems and
	// Character.DuplicateItems take already-decoded items and do not read
	// it.
	SaveLibraryDir string `yaml:"save_library_dir"`

	// LogLevel is one of debug/info/warn/error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file and no environment
// override are present.
func Default() Config {
	return Config{
		DataDir:        "data/tables",
		SaveLibraryDir: "data/items",
		LogLevel:       "info",
	}
}

// Load reads path, returning defaults when the file is absent, and
// wrapping os.ReadFile/yaml.Unmarshal errors otherwise (teacher's
// config.LoadLoginServer shape). D2EDIT_TABLE_KEY, when set, overrides
// whatever table_key the file or defaults provide, matching the way the
// teacher's cmd/loginserver overrides its config path via LA2GO_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return applyEnvOverrides(cfg), nil
}

func applyEnvOverrides(cfg Config) Config {
	if key := os.Getenv("D2EDIT_TABLE_KEY"); key != "" {
		cfg.TableKey = key
	}
	return cfg
}
