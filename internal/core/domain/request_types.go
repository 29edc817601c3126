package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// RequestType discriminates among the build request kinds tracked by the engine.
// The numbering matches the engine's on-disk representation.
type RequestType uint8

// Known request types.
const (
	RequestTypeBuild        RequestType = 1
	RequestTypeBundleGraph  RequestType = 2
	RequestTypeAssetGraph   RequestType = 3
	RequestTypeEntry        RequestType = 4
	RequestTypeTarget       RequestType = 5
	RequestTypeParcelConfig RequestType = 6
	RequestTypePath         RequestType = 7
	RequestTypeDevDep       RequestType = 8
	RequestTypeAsset        RequestType = 9
	RequestTypeConfig       RequestType = 10
	RequestTypeWriteBundles RequestType = 11
	RequestTypePackage      RequestType = 12
	RequestTypeWriteBundle  RequestType = 13
	RequestTypeValidation   RequestType = 14
)

const (
	maxKnownRequestType  = RequestTypeValidation
	unknownRequestPrefix = "request_type("
)

var requestTypeNames = [...]string{
	RequestTypeBuild:        "parcel_build_request",
	RequestTypeBundleGraph:  "bundle_graph_request",
	RequestTypeAssetGraph:   "asset_graph_request",
	RequestTypeEntry:        "entry_request",
	RequestTypeTarget:       "target_request",
	RequestTypeParcelConfig: "parcel_config_request",
	RequestTypePath:         "path_request",
	RequestTypeDevDep:       "dev_dep_request",
	RequestTypeAsset:        "asset_request",
	RequestTypeConfig:       "config_request",
	RequestTypeWriteBundles: "write_bundles_request",
	RequestTypePackage:      "package_request",
	RequestTypeWriteBundle:  "write_bundle_request",
	RequestTypeValidation:   "validation_request",
}

// String returns the engine's name for the request type.
// Unknown values render as request_type(N).
func (t RequestType) String() string {
	if t >= 1 && t <= maxKnownRequestType {
		return requestTypeNames[t]
	}
	return unknownRequestPrefix + strconv.Itoa(int(t)) + ")"
}

// Known reports whether t is one of the request types this package knows about.
func (t RequestType) Known() bool {
	return t >= 1 && t <= maxKnownRequestType
}

// RequestTypes returns all known request types in ascending order.
func RequestTypes() []RequestType {
	types := make([]RequestType, 0, maxKnownRequestType)
	for t := RequestTypeBuild; t <= maxKnownRequestType; t++ {
		types = append(types, t)
	}
	return types
}

// ParseRequestType parses a request type from its name or its numeric value.
func ParseRequestType(s string) (RequestType, error) {
	for t := RequestTypeBuild; t <= maxKnownRequestType; t++ {
		if requestTypeNames[t] == s {
			return t, nil
		}
	}
	num := strings.TrimSuffix(strings.TrimPrefix(s, unknownRequestPrefix), ")")
	n, err := strconv.ParseUint(num, 10, 8)
	if err != nil || n == 0 {
		return 0, zerr.With(ErrUnknownRequestType, "request_type", s)
	}
	return RequestType(n), nil
}

// EdgeKind is the type of a directed edge in the request graph.
type EdgeKind uint8

// Known request graph edge kinds.
const (
	EdgeSubrequest               EdgeKind = 2
	EdgeInvalidatedByUpdate      EdgeKind = 3
	EdgeInvalidatedByDelete      EdgeKind = 4
	EdgeInvalidatedByCreate      EdgeKind = 5
	EdgeInvalidatedByCreateAbove EdgeKind = 6
	EdgeDirname                  EdgeKind = 7
)

// String returns the engine's name for the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeSubrequest:
		return "subrequest"
	case EdgeInvalidatedByUpdate:
		return "invalidated_by_update"
	case EdgeInvalidatedByDelete:
		return "invalidated_by_delete"
	case EdgeInvalidatedByCreate:
		return "invalidated_by_create"
	case EdgeInvalidatedByCreateAbove:
		return "invalidated_by_create_above"
	case EdgeDirname:
		return "dirname"
	default:
		return "edge_kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// InvalidationEdgeKinds lists the edge kinds that link a request to what invalidates it.
func InvalidationEdgeKinds() []EdgeKind {
	return []EdgeKind{
		EdgeInvalidatedByUpdate,
		EdgeInvalidatedByDelete,
		EdgeInvalidatedByCreate,
		EdgeInvalidatedByCreateAbove,
	}
}

// NodeKind is the tag of a request graph node variant.
type NodeKind uint8

// Known request graph node kinds.
const (
	NodeKindFile      NodeKind = 0
	NodeKindRequest   NodeKind = 1
	NodeKindFileName  NodeKind = 2
	NodeKindEnv       NodeKind = 3
	NodeKindOption    NodeKind = 4
	NodeKindGlob      NodeKind = 5
	NodeKindConfigKey NodeKind = 6
)

// String returns a readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeKindFile:
		return "file"
	case NodeKindRequest:
		return "request"
	case NodeKindFileName:
		return "file_name"
	case NodeKindEnv:
		return "env"
	case NodeKindOption:
		return "option"
	case NodeKindGlob:
		return "glob"
	case NodeKindConfigKey:
		return "config_key"
	default:
		return "node_kind(" + strconv.Itoa(int(k)) + ")"
	}
}
