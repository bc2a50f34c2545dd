package vault

import (
	"context"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaulttest"
	"github.com/iov-one/vaultswap/vaulttest/assert"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/rent"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/utils"
)

const (
	lamportsPerByte = 1
	accountOverhead = 128
	startLamports   = 100000
)

// env is a chain with two mints, an initializer holding token A and a
// taker holding token B.
type env struct {
	db      vaultswap.CacheableKVStore
	auth    *vaulttest.CtxAuth
	handler vaultswap.Handler
	tokens  token.Controller
	rent    rent.Controller

	minter      vaultswap.Address
	mintA       vaultswap.Address
	mintB       vaultswap.Address
	initializer vaultswap.Address
	taker       vaultswap.Address
	// associated token accounts
	initializerA vaultswap.Address
	takerB       vaultswap.Address
}

func newEnv(t testing.TB, initializerA, takerB uint64) *env {
	t.Helper()
	db := store.MemStore()
	assert.Nil(t, rent.SaveConfiguration(db, &rent.Configuration{
		LamportsPerByte: lamportsPerByte,
		AccountOverhead: accountOverhead,
	}))

	ctxAuth := &vaulttest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(ctxAuth, Authenticate{})
	rents := rent.NewController()
	tokens := token.NewController(auth, rents)

	router := app.NewRouter()
	RegisterRoutes(router, auth, tokens, rents)
	token.RegisterRoutes(router, auth, tokens)

	e := &env{
		db:          db,
		auth:        ctxAuth,
		handler:     app.ChainDecorators(utils.NewSavepoint().OnDeliver()).WithHandler(router),
		tokens:      tokens,
		rent:        rents,
		minter:      vaulttest.NewAddress(),
		mintA:       vaulttest.NewAddress(),
		mintB:       vaulttest.NewAddress(),
		initializer: vaulttest.NewAddress(),
		taker:       vaulttest.NewAddress(),
	}
	for _, addr := range []vaultswap.Address{e.minter, e.initializer, e.taker} {
		assert.Nil(t, rents.Issue(db, addr, startLamports))
	}
	assert.Nil(t, tokens.CreateMint(db, e.minter, e.mintA, e.minter, 6))
	assert.Nil(t, tokens.CreateMint(db, e.minter, e.mintB, e.minter, 2))

	var err error
	e.initializerA, err = tokens.CreateAssociated(db, e.minter, e.initializer, e.mintA)
	assert.Nil(t, err)
	e.takerB, err = tokens.CreateAssociated(db, e.minter, e.taker, e.mintB)
	assert.Nil(t, err)
	mctx := e.ctx(e.minter)
	if initializerA > 0 {
		assert.Nil(t, tokens.MintTo(mctx, db, e.mintA, e.initializerA, e.minter, initializerA))
	}
	if takerB > 0 {
		assert.Nil(t, tokens.MintTo(mctx, db, e.mintB, e.takerB, e.minter, takerB))
	}
	return e
}

func (e *env) ctx(signers ...vaultswap.Address) vaultswap.Context {
	return e.auth.SetAddresses(context.Background(), signers...)
}

func (e *env) deliver(msg vaultswap.Msg, signers ...vaultswap.Address) (*vaultswap.DeliverResult, error) {
	return e.handler.Deliver(e.ctx(signers...), e.db, &vaulttest.Tx{Msg: msg})
}

func (e *env) initialize(seed, amount, ask uint64) (vaultswap.Address, error) {
	res, err := e.deliver(&InitializeMsg{
		Initializer:       e.initializer,
		MintA:             e.mintA,
		MintB:             e.mintB,
		InitializerTokenA: e.initializerA,
		Seed:              seed,
		InitializerAmount: amount,
		TakerAmount:       ask,
	}, e.initializer)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (e *env) depositMsg(vault vaultswap.Address) *DepositMsg {
	return &DepositMsg{
		Taker:       e.taker,
		Initializer: e.initializer,
		MintA:       e.mintA,
		MintB:       e.mintB,
		Vault:       vault,
	}
}

func (e *env) cancelMsg(vault vaultswap.Address) *CancelMsg {
	return &CancelMsg{
		Initializer: e.initializer,
		MintA:       e.mintA,
		Vault:       vault,
	}
}

// balance returns the balance of owner's associated account, zero when
// it does not exist.
func (e *env) balance(t testing.TB, owner, mint vaultswap.Address) uint64 {
	t.Helper()
	addr, err := token.AssociatedAddress(owner, mint)
	assert.Nil(t, err)
	amount, err := e.tokens.Balance(e.db, addr)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	assert.Nil(t, err)
	return amount
}

func (e *env) lamports(t testing.TB, addr vaultswap.Address) uint64 {
	t.Helper()
	n, err := e.rent.Balance(e.db, addr)
	assert.Nil(t, err)
	return n
}

func TestInitialize(t *testing.T) {
	cases := map[string]struct {
		msg     func(e *env) *InitializeMsg
		signer  func(e *env) vaultswap.Address
		prepare func(t testing.TB, e *env)
		wantErr *errors.Error
		// rent is only charged on delivery
		deliverOnly bool
	}{
		"locks the deposit": {},
		"vault address supplied": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.Vault, _, _ = Address(7)
				return m
			},
		},
		"initializer did not sign": {
			signer:  func(e *env) vaultswap.Address { return e.taker },
			wantErr: errors.ErrUnauthorized,
		},
		"zero initializer amount": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.InitializerAmount = 0
				return m
			},
			wantErr: errors.ErrAmount,
		},
		"zero taker amount": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.TakerAmount = 0
				return m
			},
			wantErr: errors.ErrAmount,
		},
		"supplied vault does not derive from seed": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.Vault, _, _ = Address(8)
				return m
			},
			wantErr: ErrAuthorityDerivationMismatch,
		},
		"source account holds another mint": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.MintA = e.mintB
				return m
			},
			wantErr: errors.ErrInvalidMint,
		},
		"unknown mint b": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.MintB = vaulttest.NewAddress()
				return m
			},
			wantErr: errors.ErrInvalidMint,
		},
		"balance below the locked amount": {
			msg: func(e *env) *InitializeMsg {
				m := e.initMsg(7)
				m.InitializerAmount = 1001
				return m
			},
			wantErr: errors.ErrInsufficientFunds,
		},
		"seed already used": {
			prepare: func(t testing.TB, e *env) {
				_, err := e.initialize(7, 10, 10)
				assert.Nil(t, err)
			},
			wantErr: ErrDuplicateVault,
		},
		"initializer cannot pay rent": {
			prepare: func(t testing.TB, e *env) {
				assert.Nil(t, e.rent.Send(e.db, e.initializer, e.minter, startLamports))
			},
			wantErr:     errors.ErrInsufficientFunds,
			deliverOnly: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t, 1000, 0)
			if tc.prepare != nil {
				tc.prepare(t, e)
			}
			msg := e.initMsg(7)
			if tc.msg != nil {
				msg = tc.msg(e)
			}
			signer := e.initializer
			if tc.signer != nil {
				signer = tc.signer(e)
			}
			before := e.balance(t, e.initializer, e.mintA)

			_, err := e.handler.Check(e.ctx(signer), e.db, &vaulttest.Tx{Msg: msg})
			if tc.wantErr != nil && !tc.deliverOnly {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
			res, err := e.deliver(msg, signer)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, before, e.balance(t, e.initializer, e.mintA))
				return
			}
			assert.Nil(t, err)

			vault, bump, err := Address(msg.Seed)
			assert.Nil(t, err)
			assert.Equal(t, vault, vaultswap.Address(res.Data))

			var rec Record
			assert.Nil(t, NewBucket().One(e.db, vault, &rec))
			assert.Equal(t, bump, rec.Bump)
			assert.Equal(t, msg.Seed, rec.Seed)
			assert.Equal(t, e.initializer, rec.Initializer)

			assert.Equal(t, msg.InitializerAmount, e.balance(t, vault, e.mintA))
			assert.Equal(t, before-msg.InitializerAmount, e.balance(t, e.initializer, e.mintA))
			assert.Equal(t, uint64((accountOverhead+RecordSize)*lamportsPerByte), e.lamports(t, vault))
		})
	}
}

func (e *env) initMsg(seed uint64) *InitializeMsg {
	return &InitializeMsg{
		Initializer:       e.initializer,
		MintA:             e.mintA,
		MintB:             e.mintB,
		InitializerTokenA: e.initializerA,
		Seed:              seed,
		InitializerAmount: 1000,
		TakerAmount:       500,
	}
}

func TestDepositFailures(t *testing.T) {
	cases := map[string]struct {
		takerB  uint64
		msg     func(e *env, vault vaultswap.Address) *DepositMsg
		signer  func(e *env) vaultswap.Address
		prepare func(t testing.TB, e *env, vault vaultswap.Address)
		wantErr *errors.Error
	}{
		"taker cannot pay the ask": {
			takerB:  400,
			wantErr: ErrInsufficientPayment,
		},
		"taker has no token b account": {
			prepare: func(t testing.TB, e *env, vault vaultswap.Address) {
				// drain and close the taker account
				sink, err := e.tokens.CreateAssociated(e.db, e.minter, e.minter, e.mintB)
				assert.Nil(t, err)
				assert.Nil(t, e.tokens.TransferChecked(e.ctx(e.taker), e.db, e.takerB, e.mintB, sink, e.taker, 600, 2))
				assert.Nil(t, e.tokens.CloseAccount(e.ctx(e.taker), e.db, e.takerB, e.taker, e.taker))
			},
			wantErr: ErrInsufficientPayment,
		},
		"taker did not sign": {
			signer:  func(e *env) vaultswap.Address { return e.initializer },
			wantErr: errors.ErrUnauthorized,
		},
		"mint b does not match the vault": {
			msg: func(e *env, vault vaultswap.Address) *DepositMsg {
				m := e.depositMsg(vault)
				m.MintB = e.mintA
				return m
			},
			wantErr: ErrVaultMintMismatch,
		},
		"mint a does not match the vault": {
			msg: func(e *env, vault vaultswap.Address) *DepositMsg {
				m := e.depositMsg(vault)
				m.MintA = e.mintB
				return m
			},
			wantErr: ErrVaultMintMismatch,
		},
		"initializer does not match the vault": {
			msg: func(e *env, vault vaultswap.Address) *DepositMsg {
				m := e.depositMsg(vault)
				m.Initializer = e.taker
				return m
			},
			wantErr: errors.ErrUnauthorized,
		},
		"no vault at the address": {
			msg: func(e *env, vault vaultswap.Address) *DepositMsg {
				other, _, err := Address(99)
				assert.Nil(t, err)
				return e.depositMsg(other)
			},
			wantErr: ErrVaultAlreadyClosed,
		},
		"stored bump does not derive the address": {
			prepare: func(t testing.TB, e *env, vault vaultswap.Address) {
				var rec Record
				assert.Nil(t, NewBucket().One(e.db, vault, &rec))
				rec.Bump--
				assert.Nil(t, NewBucket().Put(e.db, vault, &rec))
			},
			wantErr: ErrAuthorityDerivationMismatch,
		},
		"record stored under a foreign address": {
			msg: func(e *env, vault vaultswap.Address) *DepositMsg {
				return e.depositMsg(e.minter)
			},
			prepare: func(t testing.TB, e *env, vault vaultswap.Address) {
				var rec Record
				assert.Nil(t, NewBucket().One(e.db, vault, &rec))
				assert.Nil(t, NewBucket().Put(e.db, e.minter, &rec))
			},
			wantErr: ErrAuthorityDerivationMismatch,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			takerB := tc.takerB
			if takerB == 0 {
				takerB = 600
			}
			e := newEnv(t, 1000, takerB)
			vault, err := e.initialize(1, 1000, 500)
			assert.Nil(t, err)
			if tc.prepare != nil {
				tc.prepare(t, e, vault)
			}
			msg := e.depositMsg(vault)
			if tc.msg != nil {
				msg = tc.msg(e, vault)
			}
			signer := e.taker
			if tc.signer != nil {
				signer = tc.signer(e)
			}
			takerBefore := e.balance(t, e.taker, e.mintB)

			_, err = e.handler.Check(e.ctx(signer), e.db, &vaulttest.Tx{Msg: msg})
			assert.IsErr(t, tc.wantErr, err)
			_, err = e.deliver(msg, signer)
			assert.IsErr(t, tc.wantErr, err)

			// nothing moved
			assert.Equal(t, takerBefore, e.balance(t, e.taker, e.mintB))
			assert.Equal(t, uint64(0), e.balance(t, e.taker, e.mintA))
			assert.Equal(t, uint64(1000), e.balance(t, vault, e.mintA))
		})
	}
}

func TestCancelFailures(t *testing.T) {
	e := newEnv(t, 1000, 600)
	vault, err := e.initialize(3, 1000, 500)
	assert.Nil(t, err)

	_, err = e.deliver(e.cancelMsg(vault), e.taker)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// claiming to be the initializer is not enough
	msg := e.cancelMsg(vault)
	msg.Initializer = e.taker
	_, err = e.deliver(msg, e.taker)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	msg = e.cancelMsg(vault)
	msg.MintA = e.mintB
	_, err = e.deliver(msg, e.initializer)
	assert.IsErr(t, ErrVaultMintMismatch, err)

	state, err := CurrentState(e.db, vault)
	assert.Nil(t, err)
	assert.Equal(t, StateOpen, state)
}

func TestCustodyCannotBeMovedDirectly(t *testing.T) {
	e := newEnv(t, 1000, 0)
	vault, err := e.initialize(5, 1000, 1)
	assert.Nil(t, err)
	custody, err := CustodyAddress(vault, e.mintA)
	assert.Nil(t, err)

	sink := e.balanceAccount(t, e.taker, e.mintA)
	transfer := &token.TransferMsg{
		Source:      custody,
		Mint:        e.mintA,
		Destination: sink,
		Authority:   vault,
		Amount:      1000,
		Decimals:    6,
	}
	for _, signer := range []vaultswap.Address{e.initializer, e.taker} {
		_, err = e.deliver(transfer, signer)
		assert.IsErr(t, errors.ErrUnauthorized, err)
	}
	assert.Equal(t, uint64(1000), e.balance(t, vault, e.mintA))
}

func (e *env) balanceAccount(t testing.TB, owner, mint vaultswap.Address) vaultswap.Address {
	t.Helper()
	addr, err := e.tokens.GetOrCreateAssociated(e.db, e.minter, owner, mint)
	assert.Nil(t, err)
	return addr
}

func TestConcurrentVaults(t *testing.T) {
	e := newEnv(t, 1000, 600)

	first, err := e.initialize(1, 400, 100)
	assert.Nil(t, err)
	second, err := e.initialize(2, 600, 200)
	assert.Nil(t, err)
	if first.Equals(second) {
		t.Fatal("seeds derive the same vault")
	}

	keys, _, err := NewBucket().ByIndex(e.db, "initializer", e.initializer)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(keys))

	_, err = e.deliver(e.depositMsg(second), e.taker)
	assert.Nil(t, err)
	_, err = e.deliver(e.cancelMsg(first), e.initializer)
	assert.Nil(t, err)

	assert.Equal(t, uint64(600), e.balance(t, e.taker, e.mintA))
	assert.Equal(t, uint64(400), e.balance(t, e.initializer, e.mintA))
	assert.Equal(t, uint64(200), e.balance(t, e.initializer, e.mintB))

	keys, _, err = NewBucket().ByIndex(e.db, "initializer", e.initializer)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
}

func TestRecordLayout(t *testing.T) {
	rec := &Record{
		Seed:              0x0102030405060708,
		Bump:              254,
		MintA:             vaulttest.NewAddress(),
		MintB:             vaulttest.NewAddress(),
		Initializer:       vaulttest.NewAddress(),
		InitializerAmount: 1000,
		TakerAmount:       500,
	}
	raw, err := rec.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, RecordSize, len(raw))
	assert.Equal(t, 121, len(raw))
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, raw[:8])
	assert.Equal(t, byte(254), raw[8])
	assert.Equal(t, []byte(rec.MintA), raw[9:41])
	assert.Equal(t, []byte(rec.Initializer), raw[73:105])
	assert.Equal(t, []byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}, raw[105:113])

	var got Record
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, rec, &got)

	assert.IsErr(t, errors.ErrModel, got.Unmarshal(raw[:120]))
	assert.IsErr(t, errors.ErrModel, got.Unmarshal(append(raw, 0)))
}

func TestVaultAddressIsStable(t *testing.T) {
	a, bump, err := Address(1)
	assert.Nil(t, err)
	b, bump2, err := Address(1)
	assert.Nil(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, bump, bump2)
	assert.Nil(t, verifyAuthority(a, &Record{Seed: 1, Bump: bump}))

	c, _, err := Address(2)
	assert.Nil(t, err)
	assert.IsErr(t, ErrAuthorityDerivationMismatch, verifyAuthority(c, &Record{Seed: 1, Bump: bump}))
}

func TestMsgCodec(t *testing.T) {
	msg := &InitializeMsg{
		Initializer:       vaulttest.NewAddress(),
		MintA:             vaulttest.NewAddress(),
		MintB:             vaulttest.NewAddress(),
		InitializerTokenA: vaulttest.NewAddress(),
		Seed:              42,
		InitializerAmount: 1000,
		TakerAmount:       500,
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)
	var got InitializeMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)

	cancel := &CancelMsg{Initializer: msg.Initializer, MintA: msg.MintA, Vault: msg.MintB}
	raw, err = cancel.Marshal()
	assert.Nil(t, err)
	// field 1, length delimited, 32 bytes
	assert.Equal(t, []byte{0x0a, 32}, raw[:2])
	assert.Equal(t, 3*(2+32), len(raw))
	var gotCancel CancelMsg
	assert.Nil(t, gotCancel.Unmarshal(raw))
	assert.Equal(t, cancel, &gotCancel)
}
