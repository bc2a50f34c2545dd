package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/vault"
)

func cmdVaultAddress(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the vault address derived from a seed together with its bump. If a mint
is given, the custody account holding that mint for the vault is printed as
well.
`)
		fl.PrintDefaults()
	}
	var (
		seedFl  = fl.Uint64("seed", 0, "Seed of the vault.")
		mintAFl = flAddress(fl, "mint-a", "", "Optional mint locked in the vault.")
	)
	fl.Parse(args)

	addr, bump, err := vault.Address(*seedFl)
	if err != nil {
		return fmt.Errorf("cannot derive vault address: %s", err)
	}
	fmt.Fprintf(output, "vault:   %s\nbump:    %d\n", addr, bump)
	if len(*mintAFl) != 0 {
		custody, err := vault.CustodyAddress(addr, *mintAFl)
		if err != nil {
			return fmt.Errorf("cannot derive custody address: %s", err)
		}
		fmt.Fprintf(output, "custody: %s\n", custody)
	}
	return nil
}

func cmdInitialize(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that opens a vault. The initializer locks -amount of mint
A and asks -ask of mint B for it. Tokens are taken from the initializer's
associated account unless -source is given.
`)
		fl.PrintDefaults()
	}
	var (
		initializerFl = flAddress(fl, "initializer", "", "Address of the initializer. Required.")
		mintAFl       = flAddress(fl, "mint-a", "", "Mint that is locked. Required.")
		mintBFl       = flAddress(fl, "mint-b", "", "Mint that is asked for. Required.")
		sourceFl      = flAddress(fl, "source", "", "Token account the locked amount is taken from.")
		seedFl        = fl.Uint64("seed", 0, "Seed of the vault. Must not be used by an open vault.")
		amountFl      = fl.Uint64("amount", 0, "Amount of mint A locked.")
		askFl         = fl.Uint64("ask", 0, "Amount of mint B asked.")
	)
	fl.Parse(args)

	source := *sourceFl
	if len(source) == 0 {
		var err error
		if source, err = token.AssociatedAddress(*initializerFl, *mintAFl); err != nil {
			return fmt.Errorf("cannot derive source account: %s", err)
		}
	}
	vaultAddr, _, err := vault.Address(*seedFl)
	if err != nil {
		return fmt.Errorf("cannot derive vault address: %s", err)
	}
	return writeTx(output, &vault.InitializeMsg{
		Initializer:       *initializerFl,
		MintA:             *mintAFl,
		MintB:             *mintBFl,
		InitializerTokenA: source,
		Vault:             vaultAddr,
		Seed:              *seedFl,
		InitializerAmount: *amountFl,
		TakerAmount:       *askFl,
	})
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that settles a vault: the taker pays the asked amount of
mint B and receives the locked mint A.
`)
		fl.PrintDefaults()
	}
	var (
		takerFl       = flAddress(fl, "taker", "", "Address of the taker. Required.")
		initializerFl = flAddress(fl, "initializer", "", "Address of the vault initializer. Required.")
		mintAFl       = flAddress(fl, "mint-a", "", "Mint locked in the vault. Required.")
		mintBFl       = flAddress(fl, "mint-b", "", "Mint asked by the vault. Required.")
		vaultFl       = flAddress(fl, "vault", "", "Address of the vault. Use -seed instead to derive it.")
		seedFl        = fl.Uint64("seed", 0, "Seed of the vault, used when -vault is not given.")
	)
	fl.Parse(args)

	vaultAddr, err := resolveVault(*vaultFl, *seedFl)
	if err != nil {
		return err
	}
	return writeTx(output, &vault.DepositMsg{
		Taker:       *takerFl,
		Initializer: *initializerFl,
		MintA:       *mintAFl,
		MintB:       *mintBFl,
		Vault:       vaultAddr,
	})
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that cancels a vault and returns the locked tokens to
the initializer.
`)
		fl.PrintDefaults()
	}
	var (
		initializerFl = flAddress(fl, "initializer", "", "Address of the vault initializer. Required.")
		mintAFl       = flAddress(fl, "mint-a", "", "Mint locked in the vault. Required.")
		vaultFl       = flAddress(fl, "vault", "", "Address of the vault. Use -seed instead to derive it.")
		seedFl        = fl.Uint64("seed", 0, "Seed of the vault, used when -vault is not given.")
	)
	fl.Parse(args)

	vaultAddr, err := resolveVault(*vaultFl, *seedFl)
	if err != nil {
		return err
	}
	return writeTx(output, &vault.CancelMsg{
		Initializer: *initializerFl,
		MintA:       *mintAFl,
		Vault:       vaultAddr,
	})
}

func resolveVault(addr vaultswap.Address, seed uint64) (vaultswap.Address, error) {
	if len(addr) != 0 {
		return addr, nil
	}
	derived, _, err := vault.Address(seed)
	if err != nil {
		return nil, errors.New("cannot derive vault address from seed")
	}
	return derived, nil
}
