package server

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	iavlstore "github.com/iov-one/vaultswap/store/iavl"
)

const (
	flagUntilError = "error"
	flagMaxTries   = "max"

	retryUsage = "usage: vaultd retry <path to abci.db> <path to block.json> [-debug] [-error] [-max=N]"
)

type retryArgs struct {
	dbPath     string
	blockPath  string
	debug      bool
	untilError bool
	maxTries   int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput, retryUsage)
	}
	res := retryArgs{
		dbPath:    args[0],
		blockPath: args[1],
	}
	fs := flag.NewFlagSet("retry", flag.ExitOnError)
	fs.BoolVar(&res.debug, flagDebug, false, "print out debug info")
	fs.BoolVar(&res.untilError, flagUntilError, false, "replay until the app hash differs")
	fs.IntVar(&res.maxTries, flagMaxTries, 10, "replay limit when -error is set")
	err := fs.Parse(args[2:])
	return res, err
}

// ReplayApp builds the vaultd application on top of a store that was
// rolled back by RetryCmd.
type ReplayApp func(vaultswap.CommitKVStore, log.Logger, bool) abci.Application

// RetryCmd replays a single block against the state it was committed on.
// The abci store must be at the height of the block. It is rolled back by
// one version and the block is delivered again, printing the result of
// every transaction and the recomputed app hash.
//
// With -error the replay is repeated until the app hash differs from the
// committed one, which exposes non deterministic handlers.
func RetryCmd(makeApp ReplayApp, logger log.Logger, home string, args []string) error {
	opts, err := parseRetryArgs(args)
	if err != nil {
		return err
	}

	blockJSON, err := ioutil.ReadFile(opts.blockPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var block *types.Block
	if err := cdc.UnmarshalJSON(blockJSON, &block); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	tree, ver, err := readTree(opts.dbPath)
	if err != nil {
		return errors.Wrap(err, "abci store")
	}
	if ver != block.Header.Height {
		return errors.Wrapf(errors.ErrState,
			"block is at height %d, abci store at %d", block.Header.Height, ver)
	}

	r := replayer{
		out:   os.Stdout,
		tree:  tree,
		block: block,
		build: func(kv vaultswap.CommitKVStore) abci.Application {
			return makeApp(kv, logger, opts.debug)
		},
	}
	tries := 1
	if opts.untilError {
		tries += opts.maxTries
	}
	for ; tries > 0; tries-- {
		same, err := r.replay()
		if err != nil {
			return err
		}
		if !same {
			fmt.Fprintln(r.out, "app hash differs from the committed one")
			return nil
		}
	}
	return nil
}

// readTree opens the latest version of the abci store.
func readTree(dir string) (*iavl.MutableTree, int64, error) {
	db, err := openDb(dir)
	if err != nil {
		return nil, 0, err
	}
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	ver, err := tree.LoadVersion(0)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if ver == 0 {
		return nil, 0, errors.Wrap(errors.ErrState, "iavl tree is empty")
	}
	return tree, ver, nil
}

// replayer delivers one block on top of the version preceding it.
type replayer struct {
	out   io.Writer
	tree  *iavl.MutableTree
	block *types.Block
	build func(vaultswap.CommitKVStore) abci.Application
}

// replay reports if the recomputed app hash matches the committed one.
func (r *replayer) replay() (bool, error) {
	committed := r.tree.Hash()
	height := r.block.Header.Height
	if _, err := r.tree.LoadVersionForOverwriting(height - 1); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	app := r.build(iavlstore.NewCommitStoreFromTree(r.tree))
	app.BeginBlock(abci.RequestBeginBlock{
		Hash:   r.block.Header.Hash(),
		Header: abciHeader(r.block.Header),
	})
	for i, tx := range r.block.Txs {
		reportTx(r.out, i, app.DeliverTx(tx))
	}
	app.EndBlock(abci.RequestEndBlock{Height: height})
	hash := app.Commit().Data

	fmt.Fprintf(r.out, "height %d: committed %X, replayed %X\n", height, committed, hash)
	return bytes.Equal(committed, hash), nil
}

func reportTx(w io.Writer, i int, res abci.ResponseDeliverTx) {
	if res.Code == abci.CodeTypeOK {
		fmt.Fprintf(w, "tx %d: ok, %d gas\n", i, res.GasUsed)
		return
	}
	fmt.Fprintf(w, "tx %d: code %d %s\n", i, res.Code, res.Log)
}

// abciHeader is the reverse of the conversion tendermint does before
// sending a header to the application.
func abciHeader(h types.Header) abci.Header {
	lb := h.LastBlockID
	return abci.Header{
		Version: abci.Version{
			Block: uint64(h.Version.Block),
			App:   uint64(h.Version.App),
		},
		ChainID:  h.ChainID,
		Height:   h.Height,
		Time:     h.Time,
		NumTxs:   h.NumTxs,
		TotalTxs: h.TotalTxs,
		LastBlockId: abci.BlockID{
			Hash: lb.Hash,
			PartsHeader: abci.PartSetHeader{
				Total: int32(lb.PartsHeader.Total),
				Hash:  lb.PartsHeader.Hash,
			},
		},
		LastCommitHash:     h.LastCommitHash,
		DataHash:           h.DataHash,
		ValidatorsHash:     h.ValidatorsHash,
		NextValidatorsHash: h.NextValidatorsHash,
		ConsensusHash:      h.ConsensusHash,
		AppHash:            h.AppHash,
		LastResultsHash:    h.LastResultsHash,
		EvidenceHash:       h.EvidenceHash,
		ProposerAddress:    h.ProposerAddress,
	}
}
