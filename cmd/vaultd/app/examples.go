package app

import (
	"github.com/iov-one/vaultswap/commands"
	"github.com/iov-one/vaultswap/crypto"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/vault"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	initializer := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	taker := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 1))
	mintA := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 2)).PublicKey().Address()
	mintB := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 3)).PublicKey().Address()

	initializerA, err := token.AssociatedAddress(initializer.PublicKey().Address(), mintA)
	if err != nil {
		panic(err)
	}
	vaultAddr, bump, err := vault.Address(1)
	if err != nil {
		panic(err)
	}

	initMsg := &vault.InitializeMsg{
		Initializer:       initializer.PublicKey().Address(),
		MintA:             mintA,
		MintB:             mintB,
		InitializerTokenA: initializerA,
		Vault:             vaultAddr,
		Seed:              1,
		InitializerAmount: 1000,
		TakerAmount:       500,
	}
	depositMsg := &vault.DepositMsg{
		Taker:       taker.PublicKey().Address(),
		Initializer: initializer.PublicKey().Address(),
		MintA:       mintA,
		MintB:       mintB,
		Vault:       vaultAddr,
	}
	cancelMsg := &vault.CancelMsg{
		Initializer: initializer.PublicKey().Address(),
		MintA:       mintA,
		Vault:       vaultAddr,
	}
	record := &vault.Record{
		Seed:              1,
		Bump:              bump,
		MintA:             mintA,
		MintB:             mintB,
		Initializer:       initializer.PublicKey().Address(),
		InitializerAmount: 1000,
		TakerAmount:       500,
	}

	signedInit := &Tx{Msg: initMsg}
	sig, err := sigs.SignTx(initializer, signedInit, "test-123", 0)
	if err != nil {
		panic(err)
	}
	signedInit.Signatures = []*sigs.StdSignature{sig}

	signedDeposit := &Tx{Msg: depositMsg}
	sig, err = sigs.SignTx(taker, signedDeposit, "test-123", 0)
	if err != nil {
		panic(err)
	}
	signedDeposit.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "vault_record", Obj: record},
		{Filename: "initialize_msg", Obj: initMsg},
		{Filename: "deposit_msg", Obj: depositMsg},
		{Filename: "cancel_msg", Obj: cancelMsg},
		{Filename: "initialize_tx", Obj: signedInit},
		{Filename: "deposit_tx", Obj: signedDeposit},
		{Filename: "unsigned_tx", Obj: &Tx{Msg: cancelMsg}},
	}
}
