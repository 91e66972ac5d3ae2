package bstree

import "slices"

// Nil marks an absent child.
const Nil = -1

const (
	rootX       = 50.0
	rootSpread  = 30.0
	spreadDecay = 1.7
)

// Node is one tree node. Left and Right index into Tree.Nodes.
type Node struct {
	Value int     `json:"value"`
	Left  int     `json:"left"`
	Right int     `json:"right"`
	Level int     `json:"level"`
	X     float64 `json:"x"`
}

// Tree is an arena binary search tree. The zero value is empty.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Build inserts values in order into an empty tree. Duplicates are ignored.
func Build(values []int) Tree {
	var t Tree
	for _, v := range values {
		t = t.Insert(v)
	}
	return t
}

// Root returns the index of the root node, or Nil for an empty tree.
func (t Tree) Root() int {
	if len(t.Nodes) == 0 {
		return Nil
	}
	return 0
}

// Len returns the number of nodes.
func (t Tree) Len() int {
	return len(t.Nodes)
}

// Insert returns a copy of t with v placed by standard descent. The node's
// horizontal position halves its parent's spread at every level. t is not
// modified.
func (t Tree) Insert(v int) Tree {
	out := Tree{Nodes: slices.Clone(t.Nodes)}
	if len(out.Nodes) == 0 {
		out.Nodes = append(out.Nodes, Node{Value: v, Left: Nil, Right: Nil, X: rootX})
		return out
	}

	cur, spread := 0, rootSpread
	for {
		n := &out.Nodes[cur]
		if v == n.Value {
			return out
		}
		x := n.X + spread
		child := &n.Right
		if v < n.Value {
			x = n.X - spread
			child = &n.Left
		}
		if *child == Nil {
			*child = len(out.Nodes)
			out.Nodes = append(out.Nodes, Node{Value: v, Left: Nil, Right: Nil, Level: n.Level + 1, X: x})
			return out
		}
		cur = *child
		spread /= spreadDecay
	}
}

// Path returns the values visited by descent from the root when looking for v,
// ending at v or at the last node before a nil child.
func (t Tree) Path(v int) []int {
	var path []int
	for cur := t.Root(); cur != Nil; {
		n := t.Nodes[cur]
		path = append(path, n.Value)
		switch {
		case v == n.Value:
			return path
		case v < n.Value:
			cur = n.Left
		default:
			cur = n.Right
		}
	}
	return path
}

// Contains reports whether v is stored in the tree.
func (t Tree) Contains(v int) bool {
	path := t.Path(v)
	return len(path) > 0 && path[len(path)-1] == v
}

// Find returns the index of the node holding v, or Nil.
func (t Tree) Find(v int) int {
	for i, n := range t.Nodes {
		if n.Value == v {
			return i
		}
	}
	return Nil
}

// BreadthFirst returns node indexes level by level, left to right.
func (t Tree) BreadthFirst() []int {
	if len(t.Nodes) == 0 {
		return nil
	}
	order := make([]int, 0, len(t.Nodes))
	queue := []int{0}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		if l := t.Nodes[i].Left; l != Nil {
			queue = append(queue, l)
		}
		if r := t.Nodes[i].Right; r != Nil {
			queue = append(queue, r)
		}
	}
	return order
}
