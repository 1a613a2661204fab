package trie

import (
	"github.com/sterliakov/merkle-patricia-trie/nibble"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// Delete removes the mapping for key, or fails with ErrKeyNotFound if
// none exists.
//
// As with Update, the new root only replaces the prior one after the
// full recursive rebuild and normalization pass succeeds.
func (t *Trie) Delete(key []byte) error {
	newRoot, err := t.delete(t.root, nibble.FromBytes(key))
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

func (t *Trie) delete(ref trienode.Reference, path nibble.Path) (trienode.Reference, error) {
	n, err := t.resolveNode(ref)
	if err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case trienode.Blank:
		return nil, ErrKeyNotFound

	case trienode.Leaf:
		if !path.Equal(node.Path) {
			return nil, ErrKeyNotFound
		}
		return trienode.Reference{}, nil

	case trienode.Extension:
		if !path.HasPrefix(node.Path) {
			return nil, ErrKeyNotFound
		}
		childRef, err := t.delete(node.Child, path[len(node.Path):])
		if err != nil {
			return nil, err
		}
		return t.normalizeExtension(node.Path, childRef)

	case trienode.Branch:
		newBranch := node
		if len(path) == 0 {
			if len(newBranch.Value) == 0 {
				return nil, ErrKeyNotFound
			}
			newBranch.Value = nil
		} else {
			if len(node.Children[path[0]]) == 0 {
				return nil, ErrKeyNotFound
			}
			childRef, err := t.delete(node.Children[path[0]], path[1:])
			if err != nil {
				return nil, err
			}
			newBranch.Children[path[0]] = childRef
		}
		return t.normalizeBranch(newBranch)

	default:
		return nil, ErrMalformedNode
	}
}
