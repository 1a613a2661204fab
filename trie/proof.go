package trie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sterliakov/merkle-patricia-trie/nibble"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// Prove returns the serialized form of every node visited while
// resolving key, from the root down to (and including) the
// terminating Leaf or Branch. It fails exactly as Get would if key is
// absent.
func (t *Trie) Prove(key []byte) ([][]byte, error) {
	var proof [][]byte
	err := t.prove(t.root, nibble.FromBytes(key), &proof)
	if err != nil {
		return nil, err
	}
	return proof, nil
}

func (t *Trie) prove(ref trienode.Reference, path nibble.Path, proof *[][]byte) error {
	data, err := t.resolve(ref)
	if err != nil {
		return err
	}
	*proof = append(*proof, data)

	n, err := trienode.Deserialize(data)
	if err != nil {
		return err
	}

	switch node := n.(type) {
	case trienode.Blank:
		return ErrKeyNotFound

	case trienode.Leaf:
		if node.Validate(path) != nil {
			return ErrKeyNotFound
		}
		return nil

	case trienode.Extension:
		if node.Validate(path) != nil {
			return ErrKeyNotFound
		}
		return t.prove(node.Child, path[len(node.Path):], proof)

	case trienode.Branch:
		if node.Validate(path) != nil {
			return ErrKeyNotFound
		}
		if len(path) == 0 {
			if len(node.Value) == 0 {
				return ErrKeyNotFound
			}
			return nil
		}
		return t.prove(node.Children[path[0]], path[1:], proof)

	default:
		return ErrMalformedNode
	}
}

// VerifyProof replays a proof produced by Prove against rootHash
// without consulting any store: it checks that the first node's
// serialization hashes to rootHash (an inline root included, since
// RootHash hashes the inline bytes), walks the compact-encoded paths
// the same way Get does, and confirms each subsequent proof entry is
// the child the previous node actually referenced. It returns the
// value stored at key, or ErrKeyNotFound/ErrMalformedNode.
func VerifyProof(rootHash common.Hash, key []byte, proof [][]byte) ([]byte, error) {
	if len(proof) == 0 {
		if rootHash == EmptyRootHash {
			return nil, ErrKeyNotFound
		}
		return nil, ErrMalformedNode
	}

	if hashBytes(proof[0]) != rootHash {
		return nil, fmt.Errorf("trie: proof root does not match: %w", ErrMalformedNode)
	}

	path := nibble.FromBytes(key)
	var wantChild trienode.Reference

	for i, data := range proof {
		if i > 0 {
			if !matchesReference(wantChild, data) {
				return nil, fmt.Errorf("trie: proof node %d is not the expected child: %w", i, ErrMalformedNode)
			}
		}

		n, err := trienode.Deserialize(data)
		if err != nil {
			return nil, err
		}

		switch node := n.(type) {
		case trienode.Blank:
			return nil, ErrKeyNotFound

		case trienode.Leaf:
			if node.Validate(path) != nil {
				return nil, ErrKeyNotFound
			}
			if i != len(proof)-1 {
				return nil, fmt.Errorf("trie: proof continues past a leaf: %w", ErrMalformedNode)
			}
			return node.Value, nil

		case trienode.Extension:
			if node.Validate(path) != nil {
				return nil, ErrKeyNotFound
			}
			path = path[len(node.Path):]
			wantChild = node.Child

		case trienode.Branch:
			if node.Validate(path) != nil {
				return nil, ErrKeyNotFound
			}
			if len(path) == 0 {
				if len(node.Value) == 0 {
					return nil, ErrKeyNotFound
				}
				if i != len(proof)-1 {
					return nil, fmt.Errorf("trie: proof continues past a terminal branch: %w", ErrMalformedNode)
				}
				return node.Value, nil
			}
			wantChild = node.Children[path[0]]
			path = path[1:]

		default:
			return nil, ErrMalformedNode
		}
	}

	return nil, fmt.Errorf("trie: proof ended without reaching a terminal node: %w", ErrMalformedNode)
}

// matchesReference reports whether data is the node ref points to:
// for a 32-byte reference, data's digest must match; for an inline or
// blank reference, data must equal the reference bytes exactly.
func matchesReference(ref trienode.Reference, data []byte) bool {
	switch {
	case len(ref) == 32:
		return hashBytes(data) == common.BytesToHash(ref)
	default:
		return string(ref) == string(data)
	}
}
