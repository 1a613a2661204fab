// Package trienode defines the four-variant node algebra of a Modified
// Merkle Patricia Trie and its canonical, bit-exact RLP serialization.
package trienode

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sterliakov/merkle-patricia-trie/nibble"
)

// ErrMalformedNode is returned when a node's RLP encoding fails the
// structural checks required to reconstruct one of the four node
// variants.
var ErrMalformedNode = errors.New("trienode: malformed node encoding")

// Reference is how a parent node points at a child: either the child's
// full serialization embedded inline (length 1..31), the empty
// reference denoting a Blank child (length 0), or the child's 32-byte
// Keccak-256 digest.
type Reference []byte

// Node is the tagged-sum type implemented by Blank, Leaf, Extension,
// and Branch. Beyond identifying the variant it only requires a String
// rendering; callers type-switch on it.
type Node interface {
	isNode()
	String() string
}

// Blank is the empty node.
type Blank struct{}

func (Blank) isNode() {}

func (Blank) String() string { return "Blank{}" }

// Leaf terminates a key. Path holds the remaining nibbles from the
// point the leaf was reached; Value is the raw user bytes stored at
// that key.
type Leaf struct {
	Path  nibble.Path
	Value []byte
}

func (Leaf) isNode() {}

func (l Leaf) String() string {
	return fmt.Sprintf("Leaf{Path: %x, Value: %s}", []byte(l.Path), hex.EncodeToString(l.Value))
}

// Extension compresses a shared nibble run shared by every key passing
// through it. Child is a reference to the single node that follows.
type Extension struct {
	Path  nibble.Path
	Child Reference
}

func (Extension) isNode() {}

func (e Extension) String() string {
	return fmt.Sprintf("Extension{Path: %x, Child: %s}", []byte(e.Path), hex.EncodeToString(e.Child))
}

// Branch holds up to sixteen children, indexed by the next nibble of
// the path, plus a terminator Value for a key that ends exactly here.
// An empty Value (len 0) means "no terminator".
type Branch struct {
	Children [16]Reference
	Value    []byte
}

func (Branch) isNode() {}

func (b Branch) String() string {
	var sb strings.Builder
	sb.WriteString("Branch{Children: [")
	for i, c := range b.Children {
		if len(c) > 0 {
			fmt.Fprintf(&sb, "%x: %s, ", i, hex.EncodeToString(c))
		}
	}
	sb.WriteString("], Value: ")
	if len(b.Value) > 0 {
		sb.WriteString(hex.EncodeToString(b.Value))
	} else {
		sb.WriteString("<empty>")
	}
	sb.WriteString("}")
	return sb.String()
}

// Validate reports whether n is a structurally valid continuation for
// the given remaining nibble path: a Leaf must match it exactly, an
// Extension must prefix it, and a Branch must have a live child at its
// next nibble (or, if path is empty, rely on the caller to check the
// terminator). It does not consult the store, so it cannot confirm a
// Branch or Extension's child actually exists.
func (l Leaf) Validate(path nibble.Path) error {
	if !path.Equal(l.Path) {
		return fmt.Errorf("trienode: leaf path mismatch")
	}
	return nil
}

func (e Extension) Validate(path nibble.Path) error {
	if !path.HasPrefix(e.Path) {
		return fmt.Errorf("trienode: extension path mismatch")
	}
	return nil
}

func (b Branch) Validate(path nibble.Path) error {
	if len(path) == 0 {
		return nil
	}
	if path[0] >= 16 {
		return fmt.Errorf("trienode: invalid nibble %d", path[0])
	}
	if len(b.Children[path[0]]) == 0 {
		return fmt.Errorf("trienode: missing branch child at index %d", path[0])
	}
	return nil
}
