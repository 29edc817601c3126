package domain

// RawValue is an encoded payload embedded in the request graph.
// Only the graph codec knows how to decode it.
type RawValue []byte

// Node is a slot in the request graph. It is a closed set of variants;
// code that inspects nodes switches on the concrete type and treats anything
// it does not recognize as "skip".
type Node interface {
	// Kind returns the variant tag.
	Kind() NodeKind
	// ContentKey returns the node's stable content key.
	ContentKey() string

	isNode()
}

// RequestNode is a unit of build work tracked by the engine.
type RequestNode struct {
	ID          string
	RequestType RequestType
	// ResultCacheKey is the blob store key of the persisted result.
	// It is empty when the result was never written to the store.
	ResultCacheKey string
	// Result is a result embedded directly in the graph, or nil.
	Result RawValue
	// Generation is an optional build counter. Zero means it was not recorded.
	Generation uint64
}

// Kind implements Node.
func (RequestNode) Kind() NodeKind { return NodeKindRequest }

// ContentKey implements Node.
func (n RequestNode) ContentKey() string { return n.ID }

// HasResult reports whether the request produced any externally relevant output.
func (n RequestNode) HasResult() bool {
	return n.ResultCacheKey != "" || n.Result != nil
}

func (RequestNode) isNode() {}

// FileNode is a file the engine tracks for invalidation.
type FileNode struct {
	ID string
}

// Kind implements Node.
func (FileNode) Kind() NodeKind { return NodeKindFile }

// ContentKey implements Node.
func (n FileNode) ContentKey() string { return n.ID }

func (FileNode) isNode() {}

// FileNameNode is a file name tracked for invalidate-on-create-above.
type FileNameNode struct {
	ID string
}

// Kind implements Node.
func (FileNameNode) Kind() NodeKind { return NodeKindFileName }

// ContentKey implements Node.
func (n FileNameNode) ContentKey() string { return n.ID }

func (FileNameNode) isNode() {}

// EnvNode is an environment variable a request depends on.
type EnvNode struct {
	ID    string
	Value string
}

// Kind implements Node.
func (EnvNode) Kind() NodeKind { return NodeKindEnv }

// ContentKey implements Node.
func (n EnvNode) ContentKey() string { return n.ID }

func (EnvNode) isNode() {}

// OptionNode is a build option a request depends on.
type OptionNode struct {
	ID   string
	Hash string
}

// Kind implements Node.
func (OptionNode) Kind() NodeKind { return NodeKindOption }

// ContentKey implements Node.
func (n OptionNode) ContentKey() string { return n.ID }

func (OptionNode) isNode() {}

// GlobNode is a glob a request depends on.
type GlobNode struct {
	ID   string
	Glob string
}

// Kind implements Node.
func (GlobNode) Kind() NodeKind { return NodeKindGlob }

// ContentKey implements Node.
func (n GlobNode) ContentKey() string { return n.ID }

func (GlobNode) isNode() {}

// ConfigKeyNode is a key inside a config file a request depends on.
type ConfigKeyNode struct {
	ID   string
	Hash string
}

// Kind implements Node.
func (ConfigKeyNode) Kind() NodeKind { return NodeKindConfigKey }

// ContentKey implements Node.
func (n ConfigKeyNode) ContentKey() string { return n.ID }

func (ConfigKeyNode) isNode() {}

// UnknownNode is a node whose kind this package does not recognize.
type UnknownNode struct {
	ID  string
	Tag NodeKind
}

// Kind implements Node.
func (n UnknownNode) Kind() NodeKind { return n.Tag }

// ContentKey implements Node.
func (n UnknownNode) ContentKey() string { return n.ID }

func (UnknownNode) isNode() {}

// AsRequest returns the node as a RequestNode if it is one.
func AsRequest(n Node) (RequestNode, bool) {
	switch v := n.(type) {
	case RequestNode:
		return v, true
	case *RequestNode:
		if v != nil {
			return *v, true
		}
	}
	return RequestNode{}, false
}
