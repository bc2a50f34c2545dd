package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/iov-one/vaultswap/x/sigs"
)

func TestCmdSignTransactionOffline(t *testing.T) {
	key := testKey(1)
	keyPath := mustKeyFile(t, key)
	defer os.Remove(keyPath)

	var input bytes.Buffer
	if err := writeTx(&input, cancelMsgFixture()); err != nil {
		t.Fatalf("cannot write transaction: %s", err)
	}

	// Node must not be asked when both values are given.
	defer useNode(nil)()

	var output bytes.Buffer
	args := []string{"-key", keyPath, "-chain-id", "test-chain", "-seq", "3"}
	if err := cmdSignTransaction(&input, &output, args); err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	tx, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot read signed transaction: %s", err)
	}
	if n := len(tx.Signatures); n != 1 {
		t.Fatalf("want one signature, got %d", n)
	}
	if seq := tx.Signatures[0].Sequence; seq != 3 {
		t.Fatalf("want sequence 3, got %d", seq)
	}
	sig := tx.Signatures[0]
	if !sig.Pubkey.Address().Equals(key.PublicKey().Address()) {
		t.Fatalf("unexpected signer: %s", sig.Pubkey.Address())
	}
	bz, err := sigs.BuildSignBytesTx(tx, "test-chain", 3)
	if err != nil {
		t.Fatalf("cannot build sign bytes: %s", err)
	}
	if !sig.Pubkey.Verify(bz, sig.Signature) {
		t.Fatal("signature does not verify")
	}
}

func TestCmdSignTransactionFetchesFromNode(t *testing.T) {
	key := testKey(2)
	keyPath := mustKeyFile(t, key)
	defer os.Remove(keyPath)

	user := sigs.UserData{Pubkey: key.PublicKey(), Sequence: 5}
	raw, err := user.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal user: %s", err)
	}
	node := &fakeNode{
		chainID: "node-chain",
		values: map[string][]byte{
			"/auth:" + string(key.PublicKey().Address()): raw,
		},
	}
	defer useNode(node)()

	var input bytes.Buffer
	if err := writeTx(&input, cancelMsgFixture()); err != nil {
		t.Fatalf("cannot write transaction: %s", err)
	}
	// sign twice to collect two signatures
	var once, twice bytes.Buffer
	if err := cmdSignTransaction(&input, &once, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	if err := cmdSignTransaction(&once, &twice, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot sign again: %s", err)
	}
	tx, err := readTx(&twice)
	if err != nil {
		t.Fatalf("cannot read signed transaction: %s", err)
	}
	if n := len(tx.Signatures); n != 2 {
		t.Fatalf("want two signatures, got %d", n)
	}
	for _, s := range tx.Signatures {
		if s.Sequence != 5 {
			t.Fatalf("want sequence 5, got %d", s.Sequence)
		}
	}
	sig := tx.Signatures[0]
	bz, err := sigs.BuildSignBytesTx(tx, "node-chain", sig.Sequence)
	if err != nil {
		t.Fatalf("cannot build sign bytes: %s", err)
	}
	if !sig.Pubkey.Verify(bz, sig.Signature) {
		t.Fatal("signature not made for the node chain")
	}
}
