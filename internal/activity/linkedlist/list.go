package linkedlist

import "slices"

// Nil terminates a chain.
const Nil = -1

// Node is one list cell. Next holds the ID of the following node.
type Node struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Next  int `json:"next"`
}

// List is an arena singly linked list addressed by node ID.
type List struct {
	Head  int    `json:"head"`
	Nodes []Node `json:"nodes"`
}

// FromValues links values in order with sequential IDs starting at 0.
func FromValues(values []int) List {
	l := List{Head: Nil, Nodes: make([]Node, len(values))}
	for i, v := range values {
		l.Nodes[i] = Node{ID: i, Value: v, Next: i + 1}
	}
	if n := len(values); n > 0 {
		l.Head = 0
		l.Nodes[n-1].Next = Nil
	}
	return l
}

func (l List) clone() List {
	return List{Head: l.Head, Nodes: slices.Clone(l.Nodes)}
}

func (l List) index(id int) int {
	return slices.IndexFunc(l.Nodes, func(n Node) bool { return n.ID == id })
}

// Get returns the node with the given ID.
func (l List) Get(id int) (Node, bool) {
	i := l.index(id)
	if i < 0 {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Chain returns the nodes in traversal order from the head.
func (l List) Chain() []Node {
	var out []Node
	for id := l.Head; id != Nil; {
		n, ok := l.Get(id)
		if !ok || len(out) > len(l.Nodes) {
			break
		}
		out = append(out, n)
		id = n.Next
	}
	return out
}

// Values returns the chain's values in order.
func (l List) Values() []int {
	chain := l.Chain()
	out := make([]int, len(chain))
	for i, n := range chain {
		out[i] = n.Value
	}
	return out
}

// Tail returns the ID of the last node, or Nil.
func (l List) Tail() int {
	chain := l.Chain()
	if len(chain) == 0 {
		return Nil
	}
	return chain[len(chain)-1].ID
}

// InsertHead returns a copy with a new node linked in front of the head.
func (l List) InsertHead(id, value int) List {
	out := l.clone()
	out.Nodes = append([]Node{{ID: id, Value: value, Next: l.Head}}, out.Nodes...)
	out.Head = id
	return out
}

// InsertTail returns a copy with a new node linked after the tail.
func (l List) InsertTail(id, value int) List {
	out := l.clone()
	tail := out.Tail()
	out.Nodes = append(out.Nodes, Node{ID: id, Value: value, Next: Nil})
	if tail == Nil {
		out.Head = id
		return out
	}
	out.Nodes[out.index(tail)].Next = id
	return out
}

// Delete returns a copy with the node unlinked and removed. The predecessor's
// next pointer takes over the removed node's successor.
func (l List) Delete(id int) List {
	out := l.clone()
	i := out.index(id)
	if i < 0 {
		return out
	}
	removed := out.Nodes[i]
	if out.Head == id {
		out.Head = removed.Next
	}
	for j := range out.Nodes {
		if out.Nodes[j].Next == id {
			out.Nodes[j].Next = removed.Next
		}
	}
	out.Nodes = slices.Delete(out.Nodes, i, i+1)
	return out
}

// Predecessor returns the node whose next pointer is id.
func (l List) Predecessor(id int) (Node, bool) {
	for _, n := range l.Nodes {
		if n.Next == id {
			return n, true
		}
	}
	return Node{}, false
}
