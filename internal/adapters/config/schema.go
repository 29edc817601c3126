package config

// File is the structure of parcel-query.yaml. Pointer fields distinguish an
// omitted setting from its zero value.
type File struct {
	Version         string `yaml:"version"`
	CacheDir        string `yaml:"cacheDir"`
	Backend         string `yaml:"backend"`
	LogFormat       string `yaml:"logFormat"`
	Trace           *bool  `yaml:"trace"`
	ResultCacheSize *int   `yaml:"resultCacheSize"`
}

// SupportedVersion is the only config file version understood by the loader.
const SupportedVersion = "1"
