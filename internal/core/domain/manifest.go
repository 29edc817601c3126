package domain

// ManifestInfo is the request tracker manifest written by the engine at the end
// of each build. It names the blob holding the current request graph.
type ManifestInfo struct {
	RequestGraphKey string `json:"requestGraphKey,omitzero"`
	SnapshotKey     string `json:"snapshotKey,omitzero"`
	Timestamp       int64  `json:"timestamp,omitzero"`
}

// PackagedBundleInfo describes one bundle written to disk by the last build.
type PackagedBundleInfo struct {
	FilePath string
	Type     string
	Stats    BundleStats
}

// BundleStats holds the size and packaging time of a written bundle.
type BundleStats struct {
	Size int64
	Time int64
}

// BundleManifest maps bundle content keys to their packaged output.
type BundleManifest map[string]PackagedBundleInfo
