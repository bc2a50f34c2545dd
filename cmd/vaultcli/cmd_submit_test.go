package main

import (
	"bytes"
	"strings"
	"testing"

	abci "github.com/tendermint/tendermint/abci/types"
)

func TestCmdSubmitTransaction(t *testing.T) {
	node := &fakeNode{deliver: abci.ResponseDeliverTx{Data: testAddress(9)}}
	defer useNode(node)()

	var input bytes.Buffer
	if err := writeTx(&input, cancelMsgFixture()); err != nil {
		t.Fatalf("cannot write transaction: %s", err)
	}
	raw := append([]byte(nil), input.Bytes()...)

	var output bytes.Buffer
	if err := cmdSubmitTransaction(&input, &output, nil); err != nil {
		t.Fatalf("cannot submit: %s", err)
	}
	if len(node.broadcast) != 1 {
		t.Fatalf("want one broadcast, got %d", len(node.broadcast))
	}
	if !bytes.Equal(node.broadcast[0], raw) {
		t.Fatal("broadcast transaction differs from the input")
	}
	if got := strings.TrimSpace(output.String()); got != testAddress(9).String() {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestCmdSubmitTransactionFailure(t *testing.T) {
	node := &fakeNode{deliver: abci.ResponseDeliverTx{Code: 1012, Log: "vault mint mismatch"}}
	defer useNode(node)()

	var input bytes.Buffer
	if err := writeTx(&input, cancelMsgFixture()); err != nil {
		t.Fatalf("cannot write transaction: %s", err)
	}
	err := cmdSubmitTransaction(&input, &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "1012") {
		t.Fatalf("want delivery failure, got %v", err)
	}
}
