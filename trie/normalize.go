package trie

import (
	"github.com/sterliakov/merkle-patricia-trie/nibble"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// normalizeExtension re-examines an Extension's freshly rebuilt child
// and collapses degenerate shapes before re-serializing, so that
// invariants 1 and 2 (no Extension over Blank or Extension) hold after
// every delete:
//
//  1. Extension over Blank -> Blank
//  2. Extension over Extension(ep2, child2) -> Extension(ep++ep2, child2)
//  3. Extension over Leaf(lp, v) -> Leaf(ep++lp, v)
//  4. anything else -> Extension(ep, child) re-stored as-is
func (t *Trie) normalizeExtension(path nibble.Path, childRef trienode.Reference) (trienode.Reference, error) {
	child, err := t.resolveNode(childRef)
	if err != nil {
		return nil, err
	}

	switch c := child.(type) {
	case trienode.Blank:
		t.log.Debug("normalize extension: collapse to blank")
		return trienode.Reference{}, nil

	case trienode.Extension:
		t.log.Debug("normalize extension: merge with child extension")
		return t.storeNode(trienode.Extension{Path: path.Concat(c.Path), Child: c.Child})

	case trienode.Leaf:
		t.log.Debug("normalize extension: merge with child leaf")
		return t.storeNode(trienode.Leaf{Path: path.Concat(c.Path), Value: c.Value})

	case trienode.Branch:
		return t.storeNode(trienode.Extension{Path: path, Child: childRef})

	default:
		return nil, ErrMalformedNode
	}
}

// normalizeBranch re-examines a freshly rebuilt Branch and collapses
// it when it no longer carries enough distinct children to justify
// its shape:
//
//  5. zero children, non-empty terminator -> Leaf(empty path, value)
//  6. zero children, empty terminator -> Blank
//  7. exactly one child, empty terminator -> absorb that child,
//     prepending its index nibble to its path (Leaf/Extension) or
//     wrapping it in a one-nibble Extension (Branch)
//  8. anything else -> Branch re-stored as-is
func (t *Trie) normalizeBranch(b trienode.Branch) (trienode.Reference, error) {
	count := 0
	only := -1
	for i, c := range b.Children {
		if len(c) > 0 {
			count++
			only = i
		}
	}

	switch {
	case count == 0 && len(b.Value) > 0:
		t.log.Debug("normalize branch: collapse to leaf", "value_size", len(b.Value))
		return t.storeNode(trienode.Leaf{Path: nibble.Path{}, Value: b.Value})

	case count == 0:
		t.log.Debug("normalize branch: collapse to blank")
		return trienode.Reference{}, nil

	case count == 1 && len(b.Value) == 0:
		t.log.Debug("normalize branch: absorb only child", "index", only)
		return t.absorbOnlyChild(byte(only), b.Children[only])

	default:
		return t.storeNode(b)
	}
}

func (t *Trie) absorbOnlyChild(index byte, childRef trienode.Reference) (trienode.Reference, error) {
	child, err := t.resolveNode(childRef)
	if err != nil {
		return nil, err
	}

	prefix := nibble.Path{index}

	switch c := child.(type) {
	case trienode.Leaf:
		return t.storeNode(trienode.Leaf{Path: prefix.Concat(c.Path), Value: c.Value})

	case trienode.Extension:
		return t.storeNode(trienode.Extension{Path: prefix.Concat(c.Path), Child: c.Child})

	case trienode.Branch:
		return t.storeNode(trienode.Extension{Path: prefix, Child: childRef})

	default:
		return nil, ErrMalformedNode
	}
}
