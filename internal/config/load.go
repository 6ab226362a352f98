package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskline/taskline.toml or OS-specific config dir)
// 3. Project config file (taskline.toml or .taskline.toml in current directory)
// 4. Environment variables (TASKLINE_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskline", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "Path to the task data file")
	fs.StringVar(&cfg.DBFile, "db-file", cfg.DBFile, "Path to the SQLite database file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to the snapshot schema file")
	fs.StringVar(&cfg.SnapshotFile, "snapshot", cfg.SnapshotFile, "Path to the snapshot file")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend (file|sqlite)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Report timestamps in logs")

	return fs.Parse(args)
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	switch cfg.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want file or sqlite)", cfg.Storage)
	}

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.DataFile = expandPath(cfg.DataFile)
	cfg.DBFile = expandPath(cfg.DBFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)
	cfg.SnapshotFile = expandPath(cfg.SnapshotFile)

	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.ProjectRoot, cfg.DataFile)
	}
	if !filepath.IsAbs(cfg.DBFile) {
		cfg.DBFile = filepath.Join(cfg.ProjectRoot, cfg.DBFile)
	}
	if !filepath.IsAbs(cfg.SchemaFile) {
		cfg.SchemaFile = filepath.Join(cfg.ProjectRoot, cfg.SchemaFile)
	}
	if !filepath.IsAbs(cfg.SnapshotFile) {
		cfg.SnapshotFile = filepath.Join(cfg.ProjectRoot, cfg.SnapshotFile)
	}

	return nil
}
