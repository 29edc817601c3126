package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestMissing is returned when the cache has no request tracker manifest,
	// meaning no build has ever populated it.
	ErrManifestMissing = zerr.New("request tracker manifest missing")

	// ErrBlobNotFound is returned when an expected cache key is absent from the blob store.
	ErrBlobNotFound = zerr.New("blob not found")

	// ErrBlobRead is returned when a blob exists but cannot be read.
	ErrBlobRead = zerr.New("failed to read blob")

	// ErrInvalidKey is returned when a cache key cannot be mapped to a storage location.
	ErrInvalidKey = zerr.New("invalid cache key")

	// ErrDecode is returned when a payload is corrupt or was written by an incompatible version.
	ErrDecode = zerr.New("failed to decode payload")

	// ErrUnsupportedVersion is returned when a container or graph value has an unknown version.
	ErrUnsupportedVersion = zerr.New("unsupported payload version")

	// ErrChecksumMismatch is returned when a container payload does not match its checksum.
	ErrChecksumMismatch = zerr.New("payload checksum mismatch")

	// ErrTopologyMismatch is returned when an expected node or edge is not present in a graph.
	ErrTopologyMismatch = zerr.New("graph topology mismatch")

	// ErrNodeNotFound is returned when a content key does not resolve to a node.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrStoreOpen is returned when the blob store for a cache directory cannot be opened.
	ErrStoreOpen = zerr.New("failed to open blob store")

	// ErrUnknownBackend is returned when a blob store backend name is not recognized.
	ErrUnknownBackend = zerr.New("unknown blob store backend, expected 'auto', 'fs', 'badger' or 'sqlite'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidLogFormat is returned when the configured log format is not recognized.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'pretty' or 'json'")

	// ErrUnknownRequestType is returned when a request type name cannot be parsed.
	ErrUnknownRequestType = zerr.New("unknown request type")
)
