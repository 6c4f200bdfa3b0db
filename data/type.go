package data

// NodeType identifies how a resolved path is treated by a virtual node.
type NodeType int

const (
	NodeTypeRegular   NodeType = iota // Addresses a single entry
	NodeTypeDirectory                 // Addresses a mount root or a path ending with '/'
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeRegular:
		return "regular"
	case NodeTypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}
