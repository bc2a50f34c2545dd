package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vaultswap"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it. The
command waits until the transaction is part of a block.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("VAULTCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use VAULTCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}

	res, err := newClient(*tmAddrFl).BroadcastTxCommit(raw)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.CheckTx.Code != 0 {
		return fmt.Errorf("transaction rejected with code %d: %s", res.CheckTx.Code, res.CheckTx.Log)
	}
	delivered, err := vaultswap.ParseDeliverOrError(res.DeliverTx)
	if err != nil {
		return fmt.Errorf("transaction failed with code %d: %s", res.DeliverTx.Code, err)
	}
	if len(delivered.Data) != 0 {
		fmt.Fprintf(output, "%s\n", vaultswap.Address(delivered.Data))
	}
	return nil
}
