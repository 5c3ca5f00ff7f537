package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocationOrderIsPostOrder(t *testing.T) {
	src := []byte("a+b")
	a := NewArena(src)
	left := a.Allocate(KindIdentifier, 0, 1)
	right := a.Allocate(KindIdentifier, 2, 3)
	root := a.Allocate(KindBinaryExpr, 0, 3)

	require.Equal(t, root, a.Root(), "Root() must be the last-allocated node")
	require.Less(t, left, right)
	require.Less(t, right, root)
}

func TestArenaTruncateToDiscardsSpeculativeNodes(t *testing.T) {
	src := []byte("xyz")
	a := NewArena(src)
	a.Allocate(KindIdentifier, 0, 1)
	mark := a.Watermark()
	a.AllocateWithAttribute(KindFieldAccess, 0, 3, NameAttribute{Name: "speculative"})
	a.Allocate(KindBinaryExpr, 0, 3)

	require.Equal(t, 3, a.Len())
	a.TruncateTo(mark)
	require.Equal(t, 1, a.Len())
}

func TestArenaChildrenTilesParentSpan(t *testing.T) {
	src := []byte("a+b")
	a := NewArena(src)
	a.Allocate(KindIdentifier, 0, 1)
	a.Allocate(KindIdentifier, 2, 3)
	root := a.Allocate(KindBinaryExpr, 0, 3)

	children := a.Children(root)
	require.Len(t, children, 2)
	require.Equal(t, "a", a.Text(children[0]))
	require.Equal(t, "b", a.Text(children[1]))
}

func TestArenaEqualComparesByValueNotIndex(t *testing.T) {
	srcA := []byte("x")
	srcB := []byte("  x") // different source buffer, same relative shape once offset
	a := NewArena(srcA)
	a.AllocateWithAttribute(KindIdentifier, 0, 1, NameAttribute{Name: "x"})

	b := NewArena(srcB)
	b.AllocateWithAttribute(KindIdentifier, 2, 3, NameAttribute{Name: "x"})

	require.False(t, a.Equal(b), "arenas with different spans should not be equal")

	c := NewArena(srcA)
	c.AllocateWithAttribute(KindIdentifier, 0, 1, NameAttribute{Name: "x"})
	require.True(t, a.Equal(c), "arenas with identical records and attributes should be equal")
}

func TestArenaAttributeLookupMissing(t *testing.T) {
	a := NewArena([]byte("x"))
	idx := a.Allocate(KindIdentifier, 0, 1)
	_, ok := a.Attribute(idx)
	require.False(t, ok, "a plain Allocate call should have no attribute")
}
