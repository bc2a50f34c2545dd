package vaultswap_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err  error
		log  string
		code uint32
	}{
		"stdlib error is hidden": {
			err:  fmt.Errorf("base"),
			log:  "internal error",
			code: 1,
		},
		"registered error": {
			err:  errors.ErrUnauthorized,
			log:  "unauthorized",
			code: errors.ErrUnauthorized.ABCICode(),
		},
		"wrapped registered error": {
			err:  errors.Wrap(errors.ErrState, "vault closed"),
			log:  "vault closed: invalid state",
			code: errors.ErrState.ABCICode(),
		},
		"panic is hidden": {
			err:  errors.Wrap(errors.ErrPanic, "boom"),
			log:  "internal error",
			code: 1,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dres := vaultswap.DeliverTxError(tc.err, false)
			assert.True(t, dres.IsErr())
			assert.Equal(t, tc.code, dres.Code)
			assert.True(t, strings.HasSuffix(dres.Log, tc.log), dres.Log)
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx"), dres.Log)

			cres := vaultswap.CheckTxError(tc.err, false)
			assert.True(t, cres.IsErr())
			assert.Equal(t, tc.code, cres.Code)
			assert.True(t, strings.HasSuffix(cres.Log, tc.log), cres.Log)
		})
	}
}

func TestDebugErrorKeepsDetails(t *testing.T) {
	dres := vaultswap.DeliverTxError(fmt.Errorf("database offline"), true)
	assert.Equal(t, uint32(1), dres.Code)
	assert.Contains(t, dres.Log, "database offline")
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := vaultswap.DeliverResult{
		Data: d,
		Log:  msg,
		Tags: []common.KVPair{vaultswap.Tag("action", []byte("vault/deposit"))},
	}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Len(t, ad.Tags, 1)
	assert.Equal(t, "action", string(ad.Tags[0].Key))

	c, gas := "aok", int64(12345)
	cres := vaultswap.NewCheck(gas, c)
	ac := cres.ToABCI()
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)
}

func TestOrError(t *testing.T) {
	ok := vaultswap.DeliverOrError(&vaultswap.DeliverResult{Data: []byte("x")}, nil, false)
	assert.False(t, ok.IsErr())
	assert.Equal(t, "x", string(ok.Data))

	failed := vaultswap.CheckOrError(nil, errors.ErrMsg, false)
	assert.Equal(t, errors.ErrMsg.ABCICode(), failed.Code)
}

func TestParseDeliverOrError(t *testing.T) {
	res, err := vaultswap.ParseDeliverOrError(vaultswap.DeliverResult{Data: []byte("vault")}.ToABCI())
	assert.NoError(t, err)
	assert.Equal(t, "vault", string(res.Data))

	failed := vaultswap.DeliverTxError(errors.Wrap(errors.ErrState, "closed"), false)
	_, err = vaultswap.ParseDeliverOrError(failed)
	assert.True(t, errors.ErrState.Is(err))
}
