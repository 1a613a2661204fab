// Package trie implements a Modified Merkle Patricia Trie: an
// authenticated key-value structure that commits to a byte-string
// mapping under a single 32-byte Keccak-256 root hash, bit-exact with
// Ethereum's trie encoding.
//
// A Trie is not safe for concurrent mutation; callers must serialize
// writers to a single instance. Concurrent readers of distinct root
// references sharing one store.KeyValStore are safe, since store
// entries are immutable once written.
package trie

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sterliakov/merkle-patricia-trie/log"
	"github.com/sterliakov/merkle-patricia-trie/nibble"
	"github.com/sterliakov/merkle-patricia-trie/store"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// Trie is a Merkle Patricia Trie bound to a backing store and a
// current root reference.
type Trie struct {
	store store.KeyValStore
	root  trienode.Reference
	log   log.Logger
}

// New creates a trie over the given store. root, if non-empty, is the
// reference to resume from, as returned by a prior Root call; a nil or
// empty root, or one equal to EmptyRootHash, starts an empty trie. A
// RootHash value resolves only when the root node is stored by digest
// (its serialization is 32 bytes or longer): the hash of an inline root
// is never written to the store.
// logger receives Debug-level traces of structural normalization
// decisions and store round trips.
func New(s store.KeyValStore, root trienode.Reference, logger log.Logger) *Trie {
	if bytes.Equal(root, EmptyRootHash.Bytes()) {
		root = nil
	}
	return &Trie{store: s, root: root, log: logger.With("component", "trie")}
}

// Root returns the trie's current root reference, which may be the
// empty reference (an empty trie), an inline serialization shorter
// than 32 bytes, or a 32-byte digest.
func (t *Trie) Root() trienode.Reference {
	return t.root
}

// RootHash returns the canonical 32-byte digest identifying the
// trie's current mapping, even when the root reference is itself
// inline: in that case the hash of the inline bytes is computed and
// returned, never the inline bytes themselves.
func (t *Trie) RootHash() common.Hash {
	switch {
	case len(t.root) == 0:
		return EmptyRootHash
	case len(t.root) == 32:
		return common.BytesToHash(t.root)
	default:
		return hashBytes(t.root)
	}
}

// Get returns the value stored under key, or ErrKeyNotFound if no
// mapping exists.
func (t *Trie) Get(key []byte) ([]byte, error) {
	return t.get(t.root, nibble.FromBytes(key))
}

func (t *Trie) get(ref trienode.Reference, path nibble.Path) ([]byte, error) {
	n, err := t.resolveNode(ref)
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
		return node.Value, nil

	case trienode.Extension:
		if node.Validate(path) != nil {
			return nil, ErrKeyNotFound
		}
		return t.get(node.Child, path[len(node.Path):])

	case trienode.Branch:
		if node.Validate(path) != nil {
			return nil, ErrKeyNotFound
		}
		if len(path) == 0 {
			if len(node.Value) == 0 {
				return nil, ErrKeyNotFound
			}
			return node.Value, nil
		}
		return t.get(node.Children[path[0]], path[1:])

	default:
		return nil, ErrMalformedNode
	}
}
