package trie

import (
	"github.com/sterliakov/merkle-patricia-trie/nibble"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// Update sets key to value, replacing any prior mapping. value must be
// non-empty: an empty value is reserved internally as the branch
// terminator's "no value here" sentinel and can never be a valid
// user-visible mapping.
//
// The new root is only assigned to the trie after the full recursive
// rebuild succeeds; a failure leaves the prior root, and hence the
// prior mapping, untouched.
func (t *Trie) Update(key, value []byte) error {
	if len(value) == 0 {
		return ErrEmptyValue
	}

	newRoot, err := t.update(t.root, nibble.FromBytes(key), value)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

func (t *Trie) update(ref trienode.Reference, path nibble.Path, value []byte) (trienode.Reference, error) {
	n, err := t.resolveNode(ref)
	if err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case trienode.Blank:
		return t.storeNode(trienode.Leaf{Path: path, Value: value})

	case trienode.Leaf:
		return t.updateLeaf(node, path, value)

	case trienode.Extension:
		return t.updateExtension(node, path, value)

	case trienode.Branch:
		return t.updateBranch(node, path, value)

	default:
		return nil, ErrMalformedNode
	}
}

func (t *Trie) updateLeaf(node trienode.Leaf, path nibble.Path, value []byte) (trienode.Reference, error) {
	if path.Equal(node.Path) {
		return t.storeNode(trienode.Leaf{Path: path, Value: value})
	}

	c := nibble.CommonPrefixLen(node.Path, path)

	var branch trienode.Branch
	if c == len(node.Path) {
		branch.Value = node.Value
	} else {
		ref, err := t.storeNode(trienode.Leaf{Path: node.Path[c+1:], Value: node.Value})
		if err != nil {
			return nil, err
		}
		branch.Children[node.Path[c]] = ref
	}

	if c == len(path) {
		branch.Value = value
	} else {
		ref, err := t.storeNode(trienode.Leaf{Path: path[c+1:], Value: value})
		if err != nil {
			return nil, err
		}
		branch.Children[path[c]] = ref
	}

	return t.wrapInExtension(node.Path[:c], branch)
}

func (t *Trie) updateExtension(node trienode.Extension, path nibble.Path, value []byte) (trienode.Reference, error) {
	c := nibble.CommonPrefixLen(node.Path, path)

	if c == len(node.Path) {
		childRef, err := t.update(node.Child, path[c:], value)
		if err != nil {
			return nil, err
		}
		return t.storeNode(trienode.Extension{Path: node.Path, Child: childRef})
	}

	var branch trienode.Branch
	if c+1 == len(node.Path) {
		branch.Children[node.Path[c]] = node.Child
	} else {
		ref, err := t.storeNode(trienode.Extension{Path: node.Path[c+1:], Child: node.Child})
		if err != nil {
			return nil, err
		}
		branch.Children[node.Path[c]] = ref
	}

	if c == len(path) {
		branch.Value = value
	} else {
		ref, err := t.storeNode(trienode.Leaf{Path: path[c+1:], Value: value})
		if err != nil {
			return nil, err
		}
		branch.Children[path[c]] = ref
	}

	return t.wrapInExtension(node.Path[:c], branch)
}

func (t *Trie) updateBranch(node trienode.Branch, path nibble.Path, value []byte) (trienode.Reference, error) {
	newBranch := node // array field copies by value

	if len(path) == 0 {
		newBranch.Value = value
		return t.storeNode(newBranch)
	}

	childRef, err := t.update(node.Children[path[0]], path[1:], value)
	if err != nil {
		return nil, err
	}
	newBranch.Children[path[0]] = childRef
	return t.storeNode(newBranch)
}

// wrapInExtension stores branch and, if prefix is non-empty, wraps the
// resulting reference in an Extension over prefix. A zero-length
// prefix would otherwise produce a degenerate Extension violating
// invariant 3, so the branch's own reference is returned directly.
func (t *Trie) wrapInExtension(prefix nibble.Path, branch trienode.Branch) (trienode.Reference, error) {
	branchRef, err := t.storeNode(branch)
	if err != nil {
		return nil, err
	}
	if len(prefix) == 0 {
		return branchRef, nil
	}
	return t.storeNode(trienode.Extension{Path: prefix, Child: branchRef})
}
