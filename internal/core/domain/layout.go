package domain

import "path/filepath"

const (
	// DefaultCacheDirName is the name of the build engine's cache directory.
	DefaultCacheDirName = ".parcel-cache"

	// KVDirName is the name of the badger database directory inside the cache.
	KVDirName = "kv"

	// SQLiteFileName is the name of the sqlite database file inside the cache.
	SQLiteFileName = "cache.db"

	// BlobsDirName is the name of the small blob directory used by the filesystem backend.
	BlobsDirName = "blobs"

	// ManifestKey is the small-blob key holding the request tracker manifest.
	ManifestKey = "request-tracker-cache-info"

	// ConfigFileName is the name of the optional inspector configuration file.
	ConfigFileName = "parcel-query.yaml"

	// BuildRequestContentKey is the content key of the top-level build request node.
	BuildRequestContentKey = "parcel_build_request"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Structure names used as CacheInfo keys.
const (
	StructureRequestGraph = "RequestGraph"
	StructureAssetGraph   = "AssetGraph"
	StructureBundleGraph  = "BundleGraph"
)

// DefaultCachePath returns the default cache directory relative to the project root.
func DefaultCachePath() string {
	return DefaultCacheDirName
}

// KVPath returns the badger database directory for the given cache directory.
func KVPath(cacheDir string) string {
	return filepath.Join(cacheDir, KVDirName)
}

// SQLitePath returns the sqlite database path for the given cache directory.
func SQLitePath(cacheDir string) string {
	return filepath.Join(cacheDir, SQLiteFileName)
}

// BlobsPath returns the filesystem small blob directory for the given cache directory.
func BlobsPath(cacheDir string) string {
	return filepath.Join(cacheDir, BlobsDirName)
}
