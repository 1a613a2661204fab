package trie

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sterliakov/merkle-patricia-trie/store/memstore"
)

// rlpEncodeUint mirrors how Ethereum keys a block's transactions trie:
// by the RLP encoding of the transaction's index.
func rlpEncodeUint(i uint64) ([]byte, error) {
	return rlp.EncodeToBytes(i)
}

var testKey, _ = crypto.GenerateKey()

func newTestTx(signer types.Signer, nonce uint64) *types.Transaction {
	addr := common.BigToAddress(big.NewInt(int64(nonce) + 1))
	tx := types.NewTransaction(nonce, addr, big.NewInt(100), 21000, big.NewInt(1), nil)
	signed, err := types.SignTx(tx, signer, testKey)
	if err != nil {
		panic(err)
	}
	return signed
}

// buildTxTrie inserts txs the way Ethereum builds a block's transactions
// trie: keyed by the RLP encoding of their index, valued by their own
// RLP encoding.
func buildTxTrie(t *testing.T, txs []*types.Transaction) *Trie {
	t.Helper()
	tr := newTrie(memstore.New(), nil)
	for i, tx := range txs {
		key, err := rlpEncodeUint(uint64(i))
		if err != nil {
			t.Fatalf("encode index %d: %v", i, err)
		}
		val, err := tx.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal tx %d: %v", i, err)
		}
		if err := tr.Update(key, val); err != nil {
			t.Fatalf("insert tx %d: %v", i, err)
		}
	}
	return tr
}

func TestTransactionsTrieRootHash(t *testing.T) {
	signer := types.LatestSigner(params.TestChainConfig)

	const n = 200
	txs := make([]*types.Transaction, n)
	for i := range txs {
		txs[i] = newTestTx(signer, uint64(i))
	}

	tr := buildTxTrie(t, txs)
	if tr.RootHash() == EmptyRootHash {
		t.Fatal("expected a non-empty root hash for a non-empty transactions trie")
	}

	shuffled := append([]*types.Transaction(nil), txs...)
	rand.New(rand.NewSource(2)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	reordered := buildTxTrie(t, shuffled)

	if tr.RootHash() != reordered.RootHash() {
		t.Error("transactions trie root hash must not depend on insertion order, only on index->tx mapping")
	}

	for i, tx := range txs {
		key, _ := rlpEncodeUint(uint64(i))
		want, _ := tx.MarshalBinary()
		got, err := tr.Get(key)
		if err != nil {
			t.Fatalf("get index %d: %v", i, err)
		}
		if string(got) != string(want) {
			t.Errorf("index %d: got different transaction bytes back", i)
		}
	}
}

func TestTransactionsTrieChangesWithContent(t *testing.T) {
	signer := types.LatestSigner(params.TestChainConfig)

	a := buildTxTrie(t, []*types.Transaction{newTestTx(signer, 0), newTestTx(signer, 1)})
	b := buildTxTrie(t, []*types.Transaction{newTestTx(signer, 0), newTestTx(signer, 2)})

	if a.RootHash() == b.RootHash() {
		t.Error("transactions trie root hash must change when transaction content changes")
	}
}
