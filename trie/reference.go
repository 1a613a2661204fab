package trie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sterliakov/merkle-patricia-trie/store"
	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

// EmptyRootHash is the canonical root hash of an empty trie: the
// Keccak-256 digest of the RLP encoding of the empty byte string.
// Ethereum's well-known value.
var EmptyRootHash = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

// refer applies the reference rule to a node's serialization: bytes
// shorter than 32 bytes are returned as-is (no store write); longer
// bytes are written to the store keyed by their own Keccak-256 digest,
// and the digest is returned.
func (t *Trie) refer(serialized []byte) (trienode.Reference, error) {
	if len(serialized) < 32 {
		t.log.Debug("inline reference", "size", len(serialized))
		return trienode.Reference(serialized), nil
	}

	h := crypto.Keccak256(serialized)
	if err := t.store.Put(h, serialized); err != nil {
		return nil, fmt.Errorf("trie: persisting node: %w", err)
	}
	t.log.Debug("store round trip: put", "key", common.Bytes2Hex(h), "size", len(serialized))
	return trienode.Reference(h), nil
}

// resolve dereferences ref into the bytes of a node's serialization,
// per the reference rule: a zero-length reference is the blank node's
// serialization, a reference shorter than 32 bytes is itself the
// serialization, and a 32-byte reference must resolve in the store.
func (t *Trie) resolve(ref trienode.Reference) ([]byte, error) {
	switch {
	case len(ref) == 0:
		return []byte{0x80}, nil
	case len(ref) < 32:
		return []byte(ref), nil
	case len(ref) == 32:
		data, err := t.store.Get(ref)
		if err == store.ErrKeyNotFound {
			return nil, &MissingNodeError{Reference: ref}
		}
		if err != nil {
			return nil, fmt.Errorf("trie: resolving node: %w", err)
		}
		t.log.Debug("store round trip: get", "key", common.Bytes2Hex(ref), "size", len(data))
		return data, nil
	default:
		return nil, fmt.Errorf("trie: invalid reference length %d", len(ref))
	}
}

// resolveNode fetches and decodes the node a reference points to.
func (t *Trie) resolveNode(ref trienode.Reference) (trienode.Node, error) {
	if len(ref) == 0 {
		return trienode.Blank{}, nil
	}
	data, err := t.resolve(ref)
	if err != nil {
		return nil, err
	}
	return trienode.Deserialize(data)
}

// hashBytes returns the Keccak-256 digest of data as a common.Hash.
func hashBytes(data []byte) common.Hash {
	return crypto.Keccak256Hash(data)
}

// storeNode serializes n and applies the reference rule to it. Blank
// always yields the empty reference without touching the store or the
// codec, since its serialization is a fixed constant.
func (t *Trie) storeNode(n trienode.Node) (trienode.Reference, error) {
	if _, ok := n.(trienode.Blank); ok {
		return trienode.Reference{}, nil
	}
	data, err := trienode.Serialize(n)
	if err != nil {
		return nil, err
	}
	return t.refer(data)
}
