package trienode

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sterliakov/merkle-patricia-trie/nibble"
)

// blankEncoding is the RLP encoding of the empty byte string, the
// canonical serialization of Blank.
var blankEncoding = []byte{0x80}

// Serialize produces the canonical RLP encoding of n, per the node
// algebra's serialization rules: Blank becomes the empty byte string;
// Leaf and Extension become a 2-item list of [encoded path, payload];
// Branch becomes a 17-item list of 16 child references followed by the
// terminator value.
func Serialize(n Node) ([]byte, error) {
	switch node := n.(type) {
	case Blank:
		return blankEncoding, nil

	case Leaf:
		return rlp.EncodeToBytes([]interface{}{
			nibble.Encode(node.Path, true),
			node.Value,
		})

	case Extension:
		return rlp.EncodeToBytes([]interface{}{
			nibble.Encode(node.Path, false),
			refItem(node.Child),
		})

	case Branch:
		items := make([]interface{}, 17)
		for i, c := range node.Children {
			items[i] = refItem(c)
		}
		items[16] = node.Value
		return rlp.EncodeToBytes(items)

	default:
		return nil, ErrMalformedNode
	}
}

// refItem returns the RLP item a Reference should occupy in its
// parent's item list: the empty byte string for a blank reference, the
// raw hash bytes (RLP-encoded as a string by the encoder) for a
// 32-byte digest reference, or the reference's own bytes embedded
// verbatim (they are already a complete, valid RLP item) for an
// inline reference.
func refItem(ref Reference) interface{} {
	switch {
	case len(ref) == 0:
		return []byte{}
	case len(ref) == 32:
		return []byte(ref)
	default:
		return rlp.RawValue(ref)
	}
}

// Deserialize reverses Serialize, reconstructing the tagged node
// variant the bytes encode. It fails with ErrMalformedNode on
// list-length mismatches or invalid path encodings.
func Deserialize(data []byte) (Node, error) {
	kind, content, rest, err := rlp.Split(data)
	if err != nil {
		return nil, ErrMalformedNode
	}
	if len(rest) != 0 {
		return nil, ErrMalformedNode
	}

	if kind == rlp.String {
		if len(content) != 0 {
			return nil, ErrMalformedNode
		}
		return Blank{}, nil
	}

	count, err := rlp.CountValues(content)
	if err != nil {
		return nil, ErrMalformedNode
	}

	switch count {
	case 2:
		return decodeShort(content)
	case 17:
		return decodeBranch(content)
	default:
		return nil, ErrMalformedNode
	}
}

func decodeShort(content []byte) (Node, error) {
	encPath, rest, err := rlp.SplitString(content)
	if err != nil {
		return nil, ErrMalformedNode
	}

	path, isLeaf, err := nibble.Decode(encPath)
	if err != nil {
		return nil, ErrMalformedNode
	}

	if isLeaf {
		value, rest2, err := rlp.SplitString(rest)
		if err != nil || len(rest2) != 0 {
			return nil, ErrMalformedNode
		}
		return Leaf{Path: path, Value: cloneBytes(value)}, nil
	}

	child, rest2, err := decodeRef(rest)
	if err != nil || len(rest2) != 0 {
		return nil, ErrMalformedNode
	}
	if len(child) == 0 {
		// invariant 1: an extension may never point at a blank child
		return nil, ErrMalformedNode
	}
	return Extension{Path: path, Child: child}, nil
}

func decodeBranch(content []byte) (Node, error) {
	var children [16]Reference
	rest := content
	for i := 0; i < 16; i++ {
		child, next, err := decodeRef(rest)
		if err != nil {
			return nil, ErrMalformedNode
		}
		children[i] = child
		rest = next
	}

	value, rest2, err := rlp.SplitString(rest)
	if err != nil || len(rest2) != 0 {
		return nil, ErrMalformedNode
	}

	return Branch{Children: children, Value: cloneBytes(value)}, nil
}

// decodeRef decodes one reference field from the front of buf,
// returning the reference and the unconsumed remainder. A list-kind
// item is an inline child embedding and is kept as the raw bytes
// consumed; a zero-length string is the blank reference; a 32-byte
// string is a digest reference. Anything else is malformed.
func decodeRef(buf []byte) (Reference, []byte, error) {
	kind, val, rest, err := rlp.Split(buf)
	if err != nil {
		return nil, nil, ErrMalformedNode
	}

	if kind == rlp.List {
		consumed := len(buf) - len(rest)
		if consumed >= 32 {
			return nil, nil, ErrMalformedNode
		}
		return Reference(cloneBytes(buf[:consumed])), rest, nil
	}

	switch len(val) {
	case 0:
		return Reference{}, rest, nil
	case 32:
		return Reference(cloneBytes(val)), rest, nil
	default:
		return nil, nil, ErrMalformedNode
	}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
