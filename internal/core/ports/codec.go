package ports

import "github.com/jdot274/parcel/internal/core/domain"

// GraphCodec decodes the engine's versioned binary containers.
//
//go:generate go run go.uber.org/mock/mockgen -source=codec.go -destination=mocks/mock_codec.go -package=mocks
type GraphCodec interface {
	// DecodeRequestGraph decodes a request graph blob.
	DecodeRequestGraph(data []byte) (*domain.RequestGraph, error)

	// DecodeContainer decodes a derived-graph snapshot blob.
	DecodeContainer(data []byte) (*domain.SnapshotContainer, error)

	// DecodeBundleManifest decodes the embedded result of a bundle-writing request.
	DecodeBundleManifest(raw domain.RawValue) (domain.BundleManifest, error)

	// DecodeValue decodes an arbitrary embedded result into generic Go values.
	DecodeValue(raw domain.RawValue) (any, error)
}
