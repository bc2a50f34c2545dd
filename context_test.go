package vaultswap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 7, h)

	assert.Panics(t, func() { WithHeight(ctx, 8) })
}

func TestContextHeader(t *testing.T) {
	now := time.Now().UTC()
	ctx := WithHeader(context.Background(), abci.Header{Height: 3, Time: now})
	h, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 3, h.Height)

	bt, ok := BlockTime(ctx)
	assert.True(t, ok)
	assert.True(t, now.Equal(bt))

	_, ok = BlockTime(context.Background())
	assert.False(t, ok)
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "no") })

	ctx = WithChainID(ctx, "vault-chain")
	assert.Equal(t, "vault-chain", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "other-chain") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewNopLogger()
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "module", "test")
	assert.NotNil(t, GetLogger(ctx))
}
