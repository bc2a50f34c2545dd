package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vaultswap/x/vault"
)

func cmdQueryVault(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the record of an open vault as JSON. Nothing is printed when the vault
is closed.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("VAULTCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use VAULTCLI_TM_ADDR environment variable to set it.")
		vaultFl = flAddress(fl, "vault", "", "Address of the vault. Use -seed instead to derive it.")
		seedFl  = fl.Uint64("seed", 0, "Seed of the vault, used when -vault is not given.")
	)
	fl.Parse(args)

	vaultAddr, err := resolveVault(*vaultFl, *seedFl)
	if err != nil {
		return err
	}
	values, err := query(newClient(*tmAddrFl), "/vaults", vaultAddr)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	var rec vault.Record
	if err := rec.Unmarshal(values[0]); err != nil {
		return fmt.Errorf("cannot decode vault: %s", err)
	}
	pretty, err := json.MarshalIndent(rec, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
