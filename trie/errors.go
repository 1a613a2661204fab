package trie

import (
	"errors"
	"fmt"

	"github.com/sterliakov/merkle-patricia-trie/trienode"
)

var (
	// ErrKeyNotFound is returned by Get and Delete when no mapping
	// exists for the given key.
	ErrKeyNotFound = errors.New("trie: key not found")

	// ErrEmptyValue is returned by Update when called with a
	// zero-length value. Empty values are reserved internally as the
	// "no terminator" sentinel for branch nodes and are never a valid
	// user-visible mapping.
	ErrEmptyValue = errors.New("trie: value must not be empty")
)

// ErrMalformedNode re-exports trienode's decoding error so callers of
// this package need not import trienode directly to check for it.
var ErrMalformedNode = trienode.ErrMalformedNode

// MissingNodeError is returned when a 32-byte reference does not
// resolve to anything in the backing store.
type MissingNodeError struct {
	Reference trienode.Reference
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("trie: missing node for reference %x", []byte(e.Reference))
}
