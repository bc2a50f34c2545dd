package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vaultswap/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

Chain ID and signer sequence are fetched from the node unless both are given.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("VAULTCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use VAULTCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use VAULTCLI_PRIV_KEY environment variable to set it.")
		chainIDFl = fl.String("chain-id", "", "Chain ID the signature is valid for.")
		seqFl     = fl.Int64("seq", -1, "Sequence of the signer.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	tx, err := readTx(input)
	if err != nil {
		return err
	}

	chain, seq := *chainIDFl, *seqFl
	if chain == "" || seq < 0 {
		c := newClient(*tmAddrFl)
		if chain == "" {
			if chain, err = chainID(c); err != nil {
				return err
			}
		}
		if seq < 0 {
			if seq, err = nextSequence(c, key.PublicKey().Address()); err != nil {
				return fmt.Errorf("cannot get the next sequence number: %s", err)
			}
		}
	}

	sig, err := sigs.SignTx(key, tx, chain, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = output.Write(raw)
	return err
}
