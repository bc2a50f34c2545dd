package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display transaction summary. This command is helpful when reciving a
binary representation of a transaction. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot read message: %s", err)
	}
	view := struct {
		Path       string      `json:"path"`
		Msg        interface{} `json:"msg"`
		Signatures int         `json:"signatures"`
	}{
		Path:       msg.Path(),
		Msg:        msg,
		Signatures: len(tx.Signatures),
	}
	pretty, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
