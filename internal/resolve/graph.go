// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"

	"github.com/lars-sh/jarrunner/pkg/artifact"
)

// ErrSkipChildren can be returned by a WalkFunc to skip the children of the
// visited node.
var ErrSkipChildren = errors.New("skip children")

type (
	// Node is one resolved artifact in the dependency tree.
	Node struct {
		Coordinate artifact.Coordinate
		Scope      artifact.Scope
		// File is the absolute path of the artifact inside the local repository.
		File     string
		Children []*Node
	}

	// WalkFunc is called for every node visited by Walk. depth is 0 for the root.
	WalkFunc func(n *Node, depth int) error
)

// Walk visits n and its descendants in pre-order: a node first, then each child
// subtree in declaration order.
func (n *Node) Walk(fn WalkFunc) error {
	if n == nil {
		return nil
	}
	err := walk(n, 0, fn)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	return err
}

func walk(n *Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := walk(child, depth+1, fn); err != nil {
			if errors.Is(err, ErrSkipChildren) {
				continue
			}
			return err
		}
	}
	return nil
}

// Nodes returns n and its descendants in pre-order.
func (n *Node) Nodes() []*Node {
	var nodes []*Node
	_ = n.Walk(func(node *Node, _ int) error {
		nodes = append(nodes, node)
		return nil
	})
	return nodes
}

// Files returns the file of every node in pre-order.
func (n *Node) Files() []string {
	nodes := n.Nodes()
	files := make([]string, 0, len(nodes))
	for _, node := range nodes {
		files = append(files, node.File)
	}
	return files
}
