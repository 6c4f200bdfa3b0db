package vfsmux

import (
	"context"
	"fmt"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

// VNode is a transient handle on a resolved path within a single backend.
// It holds no state of its own and is never re-resolved.
type VNode struct {
	path     string
	nodeType data.NodeType
	backend  backend.Backend
}

// Path returns the backend-relative path; the mount root is backend.RootPath.
func (n *VNode) Path() string {
	return n.path
}

func (n *VNode) Type() data.NodeType {
	return n.nodeType
}

func (n *VNode) Backend() backend.Backend {
	return n.backend
}

func (n *VNode) IsDir() bool {
	return n.nodeType == data.NodeTypeDirectory
}

func (n *VNode) Read(ctx context.Context) ([]byte, error) {
	if err := n.require(data.NodeTypeRegular, "read"); err != nil {
		return nil, err
	}

	return n.backend.Read(ctx, n.path)
}

func (n *VNode) Write(ctx context.Context, content []byte) error {
	if err := n.require(data.NodeTypeRegular, "write"); err != nil {
		return err
	}

	return n.backend.Write(ctx, n.path, content)
}

func (n *VNode) Exists(ctx context.Context) (bool, error) {
	return n.backend.Exists(ctx, n.path)
}

func (n *VNode) Remove(ctx context.Context) error {
	return n.backend.Remove(ctx, n.path)
}

func (n *VNode) ListDir(ctx context.Context) ([]string, error) {
	if err := n.require(data.NodeTypeDirectory, "list"); err != nil {
		return nil, err
	}

	return n.backend.ListDir(ctx, n.path)
}

// Open and Close are session hooks; most backends treat them as no-ops.
func (n *VNode) Open(ctx context.Context) error {
	return n.backend.Open(ctx, n.path)
}

func (n *VNode) Close(ctx context.Context) error {
	return n.backend.Close(ctx, n.path)
}

func (n *VNode) require(nodeType data.NodeType, op string) error {
	if n.nodeType != nodeType {
		return fmt.Errorf("%w: cannot %s %s '%s'", data.ErrInvalidOperation, op, n.nodeType, n.path)
	}

	return nil
}
