package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/vaultswap"
	vaultd "github.com/iov-one/vaultswap/cmd/vaultd/app"
)

// writeTx serializes an unsigned transaction carrying msg.
func writeTx(w io.Writer, msg vaultswap.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	tx := &vaultd.Tx{Msg: msg}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = w.Write(raw)
	return err
}

// readTx reads everything from r and decodes it as a transaction.
func readTx(r io.Reader) (*vaultd.Tx, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	var tx vaultd.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize transaction: %s", err)
	}
	return &tx, nil
}
