package trienode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sterliakov/merkle-patricia-trie/nibble"
)

func TestSerializeBlank(t *testing.T) {
	data, err := Serialize(Blank{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, []byte{0x80}) {
		t.Errorf("got %x, want 80", data)
	}
}

func TestNodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		node Node
	}{
		{"leaf even", Leaf{Path: nibble.Path{1, 2, 3, 4}, Value: []byte("value")}},
		{"leaf odd", Leaf{Path: nibble.Path{1, 2, 3}, Value: []byte("v")}},
		{"leaf empty path", Leaf{Path: nibble.Path{}, Value: []byte("root-value")}},
		{"extension to hash", Extension{Path: nibble.Path{1, 2}, Child: Reference(crypto.Keccak256([]byte("child")))}},
		{"branch with value", func() Node {
			var children [16]Reference
			children[5] = Reference(crypto.Keccak256([]byte("five")))
			return Branch{Children: children, Value: []byte("term")}
		}()},
		{"branch no value", func() Node {
			var children [16]Reference
			children[0] = Reference(crypto.Keccak256([]byte("zero")))
			children[15] = Reference(crypto.Keccak256([]byte("fifteen")))
			return Branch{Children: children}
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Serialize(tc.node)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}

			got, err := Deserialize(data)
			if err != nil {
				t.Fatalf("deserialize: %v", err)
			}

			if got.String() != tc.node.String() {
				t.Errorf("round-trip mismatch: got %s, want %s", got, tc.node)
			}
		})
	}
}

func TestExtensionWithInlineChild(t *testing.T) {
	leaf := Leaf{Path: nibble.Path{9}, Value: []byte("x")}
	leafData, err := Serialize(leaf)
	if err != nil {
		t.Fatalf("serialize leaf: %v", err)
	}
	if len(leafData) >= 32 {
		t.Fatalf("test fixture leaf must serialize under 32 bytes, got %d", len(leafData))
	}

	ext := Extension{Path: nibble.Path{1, 2}, Child: Reference(leafData)}
	data, err := Serialize(ext)
	if err != nil {
		t.Fatalf("serialize extension: %v", err)
	}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	gotExt, ok := got.(Extension)
	if !ok {
		t.Fatalf("expected Extension, got %T", got)
	}
	if !bytes.Equal(gotExt.Child, leafData) {
		t.Errorf("inline child mismatch: got %x, want %x", gotExt.Child, leafData)
	}
}

func TestDeserializeMalformed(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"non-empty top-level string", []byte{0x83, 'a', 'b', 'c'}},
		{"wrong list length", mustEncodeList(t, [][]byte{{0x00}, {0x01}, {0x02}})},
		{"trailing garbage", append([]byte{0x80}, 0x00)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Deserialize(tc.data); !errors.Is(err, ErrMalformedNode) {
				t.Errorf("expected ErrMalformedNode, got %v", err)
			}
		})
	}
}

func TestExtensionOverBlankIsMalformed(t *testing.T) {
	data, err := Serialize(Extension{Path: nibble.Path{1}, Child: Reference{}})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, err := Deserialize(data); !errors.Is(err, ErrMalformedNode) {
		t.Errorf("expected ErrMalformedNode for extension over blank, got %v", err)
	}
}

func mustEncodeList(t *testing.T, items [][]byte) []byte {
	t.Helper()
	anys := make([]interface{}, len(items))
	for i, it := range items {
		anys[i] = it
	}
	data, err := rlp.EncodeToBytes(anys)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return data
}
