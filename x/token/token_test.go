package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/pda"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaulttest"
	"github.com/iov-one/vaultswap/vaulttest/assert"
	"github.com/iov-one/vaultswap/x/rent"
)

const (
	lamportsPerByte = 2
	accountOverhead = 128
)

type fixture struct {
	db    vaultswap.CacheableKVStore
	auth  *vaulttest.CtxAuth
	rent  rent.Controller
	ctrl  Controller
	payer vaultswap.Address
	mint  vaultswap.Address
	// authority of mint
	minter vaultswap.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := store.MemStore()
	conf := &rent.Configuration{LamportsPerByte: lamportsPerByte, AccountOverhead: accountOverhead}
	assert.Nil(t, rent.SaveConfiguration(db, conf))

	f := &fixture{
		db:     db,
		auth:   &vaulttest.CtxAuth{Key: "auth"},
		rent:   rent.NewController(),
		payer:  vaulttest.NewAddress(),
		mint:   vaulttest.NewAddress(),
		minter: vaulttest.NewAddress(),
	}
	f.ctrl = NewController(f.auth, f.rent)
	assert.Nil(t, f.rent.Issue(db, f.payer, 1000000))
	assert.Nil(t, f.ctrl.CreateMint(db, f.payer, f.mint, f.minter, 6))
	return f
}

func (f *fixture) ctx(signers ...vaultswap.Address) vaultswap.Context {
	return f.auth.SetAddresses(context.Background(), signers...)
}

// funded opens the associated account of owner and mints amount into it.
func (f *fixture) funded(t testing.TB, owner vaultswap.Address, amount uint64) vaultswap.Address {
	t.Helper()
	addr, err := f.ctrl.CreateAssociated(f.db, f.payer, owner, f.mint)
	assert.Nil(t, err)
	if amount > 0 {
		assert.Nil(t, f.ctrl.MintTo(f.ctx(f.minter), f.db, f.mint, addr, f.minter, amount))
	}
	return addr
}

func TestAssociatedAddress(t *testing.T) {
	owner := vaulttest.NewAddress()
	mint := vaulttest.NewAddress()

	a, err := AssociatedAddress(owner, mint)
	assert.Nil(t, err)
	b, err := AssociatedAddress(owner, mint)
	assert.Nil(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, false, pda.IsOnCurve(a))

	other, err := AssociatedAddress(owner, vaulttest.NewAddress())
	assert.Nil(t, err)
	if a.Equals(other) {
		t.Fatal("associated address does not depend on the mint")
	}

	_, err = AssociatedAddress(owner, vaultswap.Address{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestCreateMint(t *testing.T) {
	f := newFixture(t)

	m, err := f.ctrl.GetMint(f.db, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, uint32(6), m.Decimals)
	assert.Equal(t, f.minter, m.Authority)

	deposit, err := f.rent.Balance(f.db, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, uint64((accountOverhead+MintSize)*lamportsPerByte), deposit)

	err = f.ctrl.CreateMint(f.db, f.payer, f.mint, f.minter, 6)
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestGetOrCreateAssociated(t *testing.T) {
	f := newFixture(t)
	owner := vaulttest.NewAddress()

	before, err := f.rent.Balance(f.db, f.payer)
	assert.Nil(t, err)

	first, err := f.ctrl.GetOrCreateAssociated(f.db, f.payer, owner, f.mint)
	assert.Nil(t, err)
	second, err := f.ctrl.GetOrCreateAssociated(f.db, f.payer, owner, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, first, second)

	after, err := f.rent.Balance(f.db, f.payer)
	assert.Nil(t, err)
	assert.Equal(t, uint64((accountOverhead+AccountSize)*lamportsPerByte), before-after)

	_, err = f.ctrl.CreateAssociated(f.db, f.payer, owner, f.mint)
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = f.ctrl.CreateAssociated(f.db, f.payer, owner, vaulttest.NewAddress())
	assert.IsErr(t, errors.ErrInvalidMint, err)
}

func TestMintTo(t *testing.T) {
	f := newFixture(t)
	dest := f.funded(t, vaulttest.NewAddress(), 0)

	err := f.ctrl.MintTo(f.ctx(), f.db, f.mint, dest, f.minter, 10)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	stranger := vaulttest.NewAddress()
	err = f.ctrl.MintTo(f.ctx(stranger), f.db, f.mint, dest, stranger, 10)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ctrl.MintTo(f.ctx(f.minter), f.db, f.mint, dest, f.minter, 10))
	m, err := f.ctrl.GetMint(f.db, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), m.Supply)

	err = f.ctrl.MintTo(f.ctx(f.minter), f.db, f.mint, dest, f.minter, ^uint64(0))
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestTransferChecked(t *testing.T) {
	alice := vaulttest.NewAddress()
	bob := vaulttest.NewAddress()

	cases := map[string]struct {
		signers   []vaultswap.Address
		authority func(f *fixture) vaultswap.Address
		mint      func(f *fixture, other vaultswap.Address) vaultswap.Address
		toOther   bool
		amount    uint64
		decimals  uint32
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"transfer": {
			signers:   []vaultswap.Address{alice},
			amount:    30,
			decimals:  6,
			wantAlice: 70,
			wantBob:   30,
		},
		"whole balance": {
			signers:   []vaultswap.Address{alice},
			amount:    100,
			decimals:  6,
			wantAlice: 0,
			wantBob:   100,
		},
		"authority not signed": {
			signers:  []vaultswap.Address{bob},
			amount:   30,
			decimals: 6,
			wantErr:  errors.ErrUnauthorized,
		},
		"authority is not the owner": {
			signers:   []vaultswap.Address{alice, bob},
			authority: func(*fixture) vaultswap.Address { return bob },
			amount:    30,
			decimals:  6,
			wantErr:   errors.ErrUnauthorized,
		},
		"wrong decimals": {
			signers:  []vaultswap.Address{alice},
			amount:   30,
			decimals: 9,
			wantErr:  errors.ErrInvalidMint,
		},
		"wrong mint": {
			signers:  []vaultswap.Address{alice},
			mint:     func(f *fixture, other vaultswap.Address) vaultswap.Address { return other },
			amount:   30,
			decimals: 6,
			wantErr:  errors.ErrInvalidMint,
		},
		"destination of another mint": {
			signers:  []vaultswap.Address{alice},
			toOther:  true,
			amount:   30,
			decimals: 6,
			wantErr:  errors.ErrInvalidMint,
		},
		"insufficient funds": {
			signers:  []vaultswap.Address{alice},
			amount:   101,
			decimals: 6,
			wantErr:  errors.ErrInsufficientFunds,
		},
		"zero amount": {
			signers:  []vaultswap.Address{alice},
			decimals: 6,
			wantErr:  errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			src := f.funded(t, alice, 100)
			dest := f.funded(t, bob, 0)

			otherMint := vaulttest.NewAddress()
			assert.Nil(t, f.ctrl.CreateMint(f.db, f.payer, otherMint, f.minter, 6))
			if tc.toOther {
				var err error
				dest, err = f.ctrl.CreateAssociated(f.db, f.payer, bob, otherMint)
				assert.Nil(t, err)
			}

			authority := alice
			if tc.authority != nil {
				authority = tc.authority(f)
			}
			mint := f.mint
			if tc.mint != nil {
				mint = tc.mint(f, otherMint)
			}

			cache := f.db.CacheWrap()
			err := f.ctrl.TransferChecked(f.ctx(tc.signers...), cache, src, mint, dest, authority, tc.amount, tc.decimals)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Nil(t, cache.Write())

			got, err := f.ctrl.Balance(f.db, src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = f.ctrl.Balance(f.db, dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestCloseAccount(t *testing.T) {
	f := newFixture(t)
	owner := vaulttest.NewAddress()
	refund := vaulttest.NewAddress()
	acct := f.funded(t, owner, 5)

	err := f.ctrl.CloseAccount(f.ctx(owner), f.db, acct, refund, owner)
	assert.IsErr(t, errors.ErrState, err)

	sink := f.funded(t, vaulttest.NewAddress(), 0)
	assert.Nil(t, f.ctrl.TransferChecked(f.ctx(owner), f.db, acct, f.mint, sink, owner, 5, 6))

	err = f.ctrl.CloseAccount(f.ctx(), f.db, acct, refund, owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ctrl.CloseAccount(f.ctx(owner), f.db, acct, refund, owner))
	_, err = f.ctrl.GetAccount(f.db, acct)
	assert.IsErr(t, errors.ErrNotFound, err)

	got, err := f.rent.Balance(f.db, refund)
	assert.Nil(t, err)
	assert.Equal(t, uint64((accountOverhead+AccountSize)*lamportsPerByte), got)

	// a closed associated account can be opened again
	_, err = f.ctrl.CreateAssociated(f.db, f.payer, owner, f.mint)
	assert.Nil(t, err)
}

func TestHandlers(t *testing.T) {
	f := newFixture(t)
	auth := &vaulttest.CtxAuth{Key: "auth"}
	ctrl := NewController(auth, f.rent)

	newMint := vaulttest.NewAddress()
	alice := vaulttest.NewAddress()
	bob := vaulttest.NewAddress()

	create := CreateMintHandler{auth: auth, ctrl: ctrl}
	msg := &CreateMintMsg{Payer: f.payer, Mint: newMint, Authority: alice, Decimals: 2}

	_, err := create.Deliver(auth.SetAddresses(context.Background(), f.payer), f.db, &vaulttest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = create.Deliver(auth.SetAddresses(context.Background(), f.payer, newMint), f.db, &vaulttest.Tx{Msg: msg})
	assert.Nil(t, err)

	open := CreateAssociatedHandler{auth: auth, ctrl: ctrl}
	ctx := auth.SetAddresses(context.Background(), f.payer)
	res, err := open.Deliver(ctx, f.db, &vaulttest.Tx{Msg: &CreateAssociatedMsg{Payer: f.payer, Owner: alice, Mint: newMint}})
	assert.Nil(t, err)
	aliceAcct := vaultswap.Address(res.Data)
	res, err = open.Deliver(ctx, f.db, &vaulttest.Tx{Msg: &CreateAssociatedMsg{Payer: f.payer, Owner: bob, Mint: newMint}})
	assert.Nil(t, err)
	bobAcct := vaultswap.Address(res.Data)

	ctx = auth.SetAddresses(context.Background(), alice)
	mintTo := MintToHandler{ctrl: ctrl}
	_, err = mintTo.Deliver(ctx, f.db, &vaulttest.Tx{Msg: &MintToMsg{Mint: newMint, Destination: aliceAcct, Authority: alice, Amount: 500}})
	assert.Nil(t, err)

	transfer := TransferHandler{ctrl: ctrl}
	tmsg := &TransferMsg{Source: aliceAcct, Mint: newMint, Destination: bobAcct, Authority: alice, Amount: 120, Decimals: 2}
	_, err = transfer.Check(ctx, f.db, &vaulttest.Tx{Msg: tmsg})
	assert.Nil(t, err)
	_, err = transfer.Deliver(ctx, f.db, &vaulttest.Tx{Msg: tmsg})
	assert.Nil(t, err)

	got, err := ctrl.Balance(f.db, bobAcct)
	assert.Nil(t, err)
	assert.Equal(t, uint64(120), got)
}

func TestGenesis(t *testing.T) {
	mint := vaulttest.NewAddress()
	owner := vaulttest.NewAddress()
	raw, err := json.Marshal(map[string]interface{}{
		"token": map[string]interface{}{
			"mints": []GenesisMint{{Address: mint, Authority: owner, Decimals: 3}},
			"accounts": []GenesisAccount{
				{Owner: owner, Mint: mint, Amount: 700},
			},
		},
	})
	assert.Nil(t, err)
	var opts vaultswap.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(&vaulttest.Auth{}, rent.NewController())
	addr, err := AssociatedAddress(owner, mint)
	assert.Nil(t, err)
	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), got)
	m, err := ctrl.GetMint(db, mint)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), m.Supply)
}

func TestModelCodec(t *testing.T) {
	acct := &Account{Mint: vaulttest.NewAddress(), Owner: vaulttest.NewAddress(), Amount: 42}
	raw, err := acct.Marshal()
	assert.Nil(t, err)
	var got Account
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, acct, &got)

	msg := &TransferMsg{
		Source:      vaulttest.NewAddress(),
		Mint:        vaulttest.NewAddress(),
		Destination: vaulttest.NewAddress(),
		Authority:   vaulttest.NewAddress(),
		Amount:      9,
		Decimals:    4,
	}
	raw, err = msg.Marshal()
	assert.Nil(t, err)
	var gotMsg TransferMsg
	assert.Nil(t, gotMsg.Unmarshal(raw))
	assert.Equal(t, msg, &gotMsg)

	raw, err = (&Mint{Decimals: 6, Supply: 1}).Marshal()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x10, 6, 0x18, 1}, raw)
}
