package config

// Storage backend names.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Default values.
const (
	DefaultDataFile     = "data/tasks.txt"
	DefaultDBFile       = "data/tasks.db"
	DefaultSchemaFile   = "tasks.schema.json"
	DefaultSnapshotFile = "tasks.json"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for taskline.
type Config struct {
	// Paths
	DataFile     string `toml:"data_file" env:"TASKLINE_DATA_FILE"`
	DBFile       string `toml:"db_file" env:"TASKLINE_DB_FILE"`
	SchemaFile   string `toml:"schema_file" env:"TASKLINE_SCHEMA_FILE"`
	SnapshotFile string `toml:"snapshot_file" env:"TASKLINE_SNAPSHOT_FILE"`

	// Storage backend: "file" or "sqlite"
	Storage string `toml:"storage" env:"TASKLINE_STORAGE"`

	// Logging
	LogLevel      string `toml:"log_level" env:"TASKLINE_LOG_LEVEL"`
	LogFormat     string `toml:"log_format" env:"TASKLINE_LOG_FORMAT"`
	LogTimestamps bool   `toml:"log_timestamps" env:"TASKLINE_LOG_TIMESTAMPS"`

	// Project root (computed)
	ProjectRoot string `toml:"-" env:"-"`
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.DBFile = DefaultDBFile
	cfg.SchemaFile = DefaultSchemaFile
	cfg.SnapshotFile = DefaultSnapshotFile
	cfg.Storage = StorageFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
