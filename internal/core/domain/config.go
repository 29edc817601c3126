package domain

// Blob store backend names.
const (
	BackendAuto   = "auto"
	BackendFS     = "fs"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// DefaultResultCacheSize is the default number of decoded embedded results kept in memory.
const DefaultResultCacheSize = 256

// Config holds the inspector's settings.
type Config struct {
	// CacheDir is the build cache directory to inspect.
	CacheDir string `yaml:"cacheDir"`
	// Backend selects the small-blob backend: auto, fs, badger or sqlite.
	Backend string `yaml:"backend"`
	// LogFormat is pretty or json.
	LogFormat string `yaml:"logFormat"`
	// Trace enables stage tracing output.
	Trace bool `yaml:"trace"`
	// ResultCacheSize bounds the number of decoded embedded results kept in memory.
	ResultCacheSize int `yaml:"resultCacheSize"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		CacheDir:        DefaultCachePath(),
		Backend:         BackendAuto,
		LogFormat:       LogFormatPretty,
		ResultCacheSize: DefaultResultCacheSize,
	}
}
