package parser

// NodeIndex addresses a single node record inside an Arena. Indices
// count from zero in allocation order; callers receive indices only from
// Arena.Allocate and friends.
type NodeIndex int32

// NodeRecord is the fixed-size row the arena stores per node: a kind tag,
// a byte-offset span into the source buffer, and an index into the
// attribute table (-1 when the node carries no side payload).
type NodeRecord struct {
	Kind      NodeKind
	Start     uint32
	End       uint32
	Attribute int32
}

// Watermark is a snapshot of an arena's length, used to discard
// speculative allocations on backtrack.
type Watermark int

// Arena is the column-oriented, append-only node store described in the
// parser's data model: a parent is only ever allocated after all of its
// children, so allocation order equals a post-order traversal and the
// last-allocated node is the tree's root.
//
// An Arena is populated by exactly one parser and is safe to read
// concurrently once that parser has finished; it is never safe to mutate
// from more than one goroutine.
type Arena struct {
	source     []byte
	nodes      []NodeRecord
	attributes []Attribute
}

// NewArena creates an empty arena over the given source buffer. The
// buffer must outlive the arena: node spans are offsets into it, and
// Arena.Text resolves them lazily rather than copying.
func NewArena(source []byte) *Arena {
	return &Arena{source: source}
}

// Source returns the buffer the arena's offsets are relative to.
func (a *Arena) Source() []byte {
	return a.source
}

// Allocate appends a node with no attribute payload and returns its
// index.
func (a *Arena) Allocate(kind NodeKind, start, end uint32) NodeIndex {
	return a.AllocateWithAttribute(kind, start, end, nil)
}

// AllocateWithAttribute appends a node carrying a side-table payload and
// returns its index. Passing a nil attribute is equivalent to Allocate.
func (a *Arena) AllocateWithAttribute(kind NodeKind, start, end uint32, attr Attribute) NodeIndex {
	attrIndex := int32(-1)
	if attr != nil {
		attrIndex = int32(len(a.attributes))
		a.attributes = append(a.attributes, attr)
	}
	a.nodes = append(a.nodes, NodeRecord{Kind: kind, Start: start, End: end, Attribute: attrIndex})
	return NodeIndex(len(a.nodes) - 1)
}

// Watermark returns a snapshot of the arena's current length.
func (a *Arena) Watermark() Watermark {
	return Watermark(len(a.nodes))
}

// TruncateTo discards every node (and trailing attribute) allocated since
// the given watermark. It is the only sanctioned way to unwind a
// speculative parse: arenas are append-only, so truncation never
// invalidates indices below the watermark.
func (a *Arena) TruncateTo(w Watermark) {
	if int(w) >= len(a.nodes) {
		return
	}
	// Attributes are allocated monotonically alongside nodes, so find the
	// smallest attribute index referenced at or after the watermark and
	// cut the attribute table there too.
	cut := int32(len(a.attributes))
	for _, n := range a.nodes[w:] {
		if n.Attribute >= 0 && n.Attribute < cut {
			cut = n.Attribute
		}
	}
	a.nodes = a.nodes[:w]
	if int(cut) < len(a.attributes) {
		a.attributes = a.attributes[:cut]
	}
}

// Len reports the number of nodes currently allocated.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Get returns the node record at index.
func (a *Arena) Get(i NodeIndex) NodeRecord {
	return a.nodes[i]
}

// Root returns the index of the compilation unit (or standalone fragment)
// node, which by the post-order allocation invariant is always the last
// node appended.
func (a *Arena) Root() NodeIndex {
	return NodeIndex(len(a.nodes) - 1)
}

// Attribute returns the side-table payload for a node, if any.
func (a *Arena) Attribute(i NodeIndex) (Attribute, bool) {
	attr := a.nodes[i].Attribute
	if attr < 0 {
		return nil, false
	}
	return a.attributes[attr], true
}

// Text returns the verbatim source slice spanned by a node.
func (a *Arena) Text(i NodeIndex) string {
	n := a.nodes[i]
	return string(a.source[n.Start:n.End])
}

// NodesInSpan returns the indices of every node whose span is contained
// within [start, end], in allocation order.
func (a *Arena) NodesInSpan(start, end uint32) []NodeIndex {
	var result []NodeIndex
	for i, n := range a.nodes {
		if n.Start >= start && n.End <= end {
			result = append(result, NodeIndex(i))
		}
	}
	return result
}

// Children returns the indices of a node's direct children: nodes whose
// span falls inside the parent's span, that are not themselves contained
// in an already-yielded sibling's span. Because allocation order is
// post-order, a parent's children are exactly the maximal-span nodes
// immediately preceding it whose spans tile the parent's span (trivia
// aside).
func (a *Arena) Children(parent NodeIndex) []NodeIndex {
	p := a.nodes[parent]
	var children []NodeIndex
	i := int(parent) - 1
	cursor := p.End
	for i >= 0 {
		n := a.nodes[i]
		if n.Start < p.Start || n.End > p.End {
			break
		}
		if isTrivia(n.Kind) {
			children = append(children, NodeIndex(i))
			i--
			continue
		}
		if n.End > cursor {
			i--
			continue
		}
		children = append(children, NodeIndex(i))
		cursor = n.Start
		// Skip past this child's own descendants.
		i = firstIndexNotContained(a.nodes, i, n.Start, n.End)
	}
	reverseNodeIndices(children)
	return children
}

func firstIndexNotContained(nodes []NodeRecord, from int, start, end uint32) int {
	i := from - 1
	for i >= 0 {
		n := nodes[i]
		if n.Start < start || n.End > end {
			break
		}
		i--
	}
	return i
}

func reverseNodeIndices(s []NodeIndex) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func isTrivia(k NodeKind) bool {
	return k == KindLineComment || k == KindBlockComment
}

// Equal reports whether two arenas describe value-equal trees: the same
// sequence of (kind, start, end) records with value-equal attribute
// payloads. This is the primary test oracle for the parser: tests build
// an expected arena with the allocation API in post-order and compare it
// against the parser's actual output.
func (a *Arena) Equal(other *Arena) bool {
	if len(a.nodes) != len(other.nodes) {
		return false
	}
	for i := range a.nodes {
		an, bn := a.nodes[i], other.nodes[i]
		if an.Kind != bn.Kind || an.Start != bn.Start || an.End != bn.End {
			return false
		}
		aAttr, aOK := a.Attribute(NodeIndex(i))
		bAttr, bOK := other.Attribute(NodeIndex(i))
		if aOK != bOK {
			return false
		}
		if aOK && !aAttr.attributeEqual(bAttr) {
			return false
		}
	}
	return true
}
