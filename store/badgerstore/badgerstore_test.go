package badgerstore

import (
	"bytes"
	"testing"

	"github.com/sterliakov/merkle-patricia-trie/store"
)

func TestStore_New(t *testing.T) {
	t.Run("should open a non-nil store", func(t *testing.T) {
		s, err := Open(t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer s.Close()

		if s == nil {
			t.Fatal("expected non-nil store")
		}
	})
}

func TestStore_PutGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer s.Close()

	key := []byte("key")
	val := []byte("value")

	if err := s.Put(key, val); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, val) {
		t.Errorf("got %q, want %q", got, val)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer s.Close()

	if _, err := s.Get([]byte("absent")); err != store.ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStore_Has(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer s.Close()

	ok, err := s.Has([]byte("absent"))
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}

	if err := s.Put([]byte("present"), []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err = s.Has([]byte("present"))
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !ok {
		t.Error("expected key to be present")
	}
}
