package vault

import (
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/token"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVaultLifecycle(t *testing.T) {
	accountRent := uint64((accountOverhead + token.AccountSize) * lamportsPerByte)

	Convey("Given an initializer offering 1000 A for 500 B", t, func() {
		e := newEnv(t, 1000, 500)
		initializerLamports := e.lamports(t, e.initializer)
		takerLamports := e.lamports(t, e.taker)

		vault, err := e.initialize(1, 1000, 500)
		So(err, ShouldBeNil)

		state, err := CurrentState(e.db, vault)
		So(err, ShouldBeNil)
		So(state, ShouldEqual, StateOpen)
		So(e.balance(t, e.initializer, e.mintA), ShouldEqual, 0)
		So(e.balance(t, vault, e.mintA), ShouldEqual, 1000)
		So(e.lamports(t, e.initializer), ShouldBeLessThan, initializerLamports)

		Convey("The taker settles it", func() {
			res, err := e.deliver(e.depositMsg(vault), e.taker)
			So(err, ShouldBeNil)
			So([]byte(res.Data), ShouldResemble, []byte(vault))

			So(e.balance(t, e.taker, e.mintA), ShouldEqual, 1000)
			So(e.balance(t, e.taker, e.mintB), ShouldEqual, 0)
			So(e.balance(t, e.initializer, e.mintB), ShouldEqual, 500)

			state, err := CurrentState(e.db, vault)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, StateClosed)

			custody, err := CustodyAddress(vault, e.mintA)
			So(err, ShouldBeNil)
			_, err = e.tokens.GetAccount(e.db, custody)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)

			Convey("Rent deposits go back to whoever paid them", func() {
				So(e.lamports(t, e.initializer), ShouldEqual, initializerLamports)
				So(e.lamports(t, vault), ShouldEqual, 0)
				So(e.lamports(t, e.taker), ShouldEqual, takerLamports-2*accountRent)
			})

			Convey("It cannot be settled twice", func() {
				_, err := e.deliver(e.depositMsg(vault), e.taker)
				So(ErrVaultAlreadyClosed.Is(err), ShouldBeTrue)
			})

			Convey("It cannot be cancelled afterwards", func() {
				_, err := e.deliver(e.cancelMsg(vault), e.initializer)
				So(ErrVaultAlreadyClosed.Is(err), ShouldBeTrue)
				So(e.balance(t, e.initializer, e.mintA), ShouldEqual, 0)
			})

			Convey("The seed can be used again", func() {
				_, err := e.deliver(&token.MintToMsg{
					Mint:        e.mintA,
					Destination: e.initializerA,
					Authority:   e.minter,
					Amount:      10,
				}, e.minter)
				So(err, ShouldBeNil)
				again, err := e.initialize(1, 10, 5)
				So(err, ShouldBeNil)
				So([]byte(again), ShouldResemble, []byte(vault))
			})
		})

		Convey("The initializer cancels it", func() {
			_, err := e.deliver(e.cancelMsg(vault), e.initializer)
			So(err, ShouldBeNil)

			So(e.balance(t, e.initializer, e.mintA), ShouldEqual, 1000)
			So(e.lamports(t, e.initializer), ShouldEqual, initializerLamports)
			So(e.lamports(t, e.taker), ShouldEqual, takerLamports)

			state, err := CurrentState(e.db, vault)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, StateClosed)

			Convey("The taker can no longer settle", func() {
				_, err := e.deliver(e.depositMsg(vault), e.taker)
				So(ErrVaultAlreadyClosed.Is(err), ShouldBeTrue)
				So(e.balance(t, e.taker, e.mintB), ShouldEqual, 500)
			})
		})

		Convey("A short taker leaves everything in place", func() {
			sink, err := e.tokens.CreateAssociated(e.db, e.minter, e.minter, e.mintB)
			So(err, ShouldBeNil)
			err = e.tokens.TransferChecked(e.ctx(e.taker), e.db, e.takerB, e.mintB, sink, e.taker, 100, 2)
			So(err, ShouldBeNil)

			_, err = e.deliver(e.depositMsg(vault), e.taker)
			So(ErrInsufficientPayment.Is(err), ShouldBeTrue)

			So(e.balance(t, e.taker, e.mintB), ShouldEqual, 400)
			So(e.balance(t, vault, e.mintA), ShouldEqual, 1000)
			So(e.lamports(t, e.taker), ShouldEqual, takerLamports)
			state, err := CurrentState(e.db, vault)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, StateOpen)
		})

		Convey("A donation to custody", func() {
			custody, err := CustodyAddress(vault, e.mintA)
			So(err, ShouldBeNil)
			_, err = e.deliver(&token.MintToMsg{
				Mint:        e.mintA,
				Destination: custody,
				Authority:   e.minter,
				Amount:      7,
			}, e.minter)
			So(err, ShouldBeNil)

			Convey("goes back to the initializer on cancel", func() {
				_, err := e.deliver(e.cancelMsg(vault), e.initializer)
				So(err, ShouldBeNil)
				So(e.balance(t, e.initializer, e.mintA), ShouldEqual, 1007)
			})

			Convey("goes to the taker on deposit", func() {
				_, err := e.deliver(e.depositMsg(vault), e.taker)
				So(err, ShouldBeNil)
				So(e.balance(t, e.taker, e.mintA), ShouldEqual, 1007)
			})
		})
	})
}
