package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/store"
	"github.com/iov-one/vaultswap/vaulttest"
	"github.com/iov-one/vaultswap/vaulttest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    vaultswap.Decorator
		fail    bool
		check   bool
		written [][]byte
		missing [][]byte
	}{
		"disabled, failure keeps writes": {
			save:    NewSavepoint(),
			fail:    true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"check savepoint drops failed writes": {
			save:    NewSavepoint().OnCheck(),
			fail:    true,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint drops failed writes": {
			save:    NewSavepoint().OnDeliver(),
			fail:    true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint ignores check": {
			save:    NewSavepoint().OnDeliver(),
			fail:    true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, db.Set(ok, ov))

			h := &vaulttest.Handler{Write: &vaultswap.Model{Key: nk, Value: nv}}
			if tc.fail {
				h.CheckErr = errors.ErrHuman
				h.DeliverErr = errors.ErrHuman
			}

			var err error
			if tc.check {
				_, err = tc.save.Check(context.Background(), db, &vaulttest.Tx{}, h)
			} else {
				_, err = tc.save.Deliver(context.Background(), db, &vaulttest.Tx{}, h)
			}
			if tc.fail {
				assert.IsErr(t, errors.ErrHuman, err)
			} else {
				assert.Nil(t, err)
			}

			for _, k := range tc.written {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, true, has)
			}
			for _, k := range tc.missing {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, false, has)
			}
		})
	}
}

type panicHandler struct{}

func (panicHandler) Check(vaultswap.Context, vaultswap.KVStore, vaultswap.Tx) (*vaultswap.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(vaultswap.Context, vaultswap.KVStore, vaultswap.Tx) (*vaultswap.DeliverResult, error) {
	panic("deliver")
}

func TestRecovery(t *testing.T) {
	r := NewRecovery()
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, &vaulttest.Tx{}, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = r.Deliver(context.Background(), db, &vaulttest.Tx{}, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)

	var buf bytes.Buffer
	ctx := vaultswap.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/deposit"}}
	_, err = r.Deliver(ctx, db, tx, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)
	if !strings.Contains(err.Error(), "vault/deposit: deliver") {
		t.Fatalf("path missing from %q", err)
	}
	if !strings.Contains(buf.String(), "handler panic") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := vaultswap.WithLogger(context.Background(), logger)

	h := &vaulttest.Handler{DeliverErr: errors.ErrAmount}
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/initialize"}}
	_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, h)
	assert.IsErr(t, errors.ErrAmount, err)
	if !bytes.Contains(buf.Bytes(), []byte("vault/initialize")) {
		t.Fatalf("path not logged: %s", buf.String())
	}
}

func TestActionTagger(t *testing.T) {
	h := &vaulttest.Handler{}
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/cancel"}}
	res, err := NewActionTagger().Deliver(context.Background(), store.MemStore(), tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, []byte("vault/cancel"), res.Tags[0].Value)
}
