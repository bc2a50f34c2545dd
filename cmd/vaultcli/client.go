package main

import (
	"fmt"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	"github.com/iov-one/vaultswap/x/sigs"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// nodeClient is the part of the tendermint RPC API this program uses.
type nodeClient interface {
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
	Genesis() (*ctypes.ResultGenesis, error)
}

// newClient is replaced in tests.
var newClient = func(addr string) nodeClient {
	return rpcclient.NewHTTP(addr, "/websocket")
}

// query returns the raw values stored under key, empty when nothing was
// found.
func query(c nodeClient, path string, key []byte) ([][]byte, error) {
	res, err := c.ABCIQuery(path, key)
	if err != nil {
		return nil, fmt.Errorf("cannot query %s: %s", path, err)
	}
	if res.Response.Code != 0 {
		return nil, fmt.Errorf("query %s failed with code %d: %s", path, res.Response.Code, res.Response.Log)
	}
	var values app.ResultSet
	if err := values.Unmarshal(res.Response.Value); err != nil {
		return nil, fmt.Errorf("cannot decode query result: %s", err)
	}
	return values.Results, nil
}

// nextSequence returns the sequence the next signature of addr must use.
func nextSequence(c nodeClient, addr vaultswap.Address) (int64, error) {
	values, err := query(c, "/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(values[0]); err != nil {
		return 0, fmt.Errorf("cannot decode signer: %s", err)
	}
	return user.Sequence, nil
}

func chainID(c nodeClient) (string, error) {
	res, err := c.Genesis()
	if err != nil {
		return "", fmt.Errorf("cannot fetch genesis: %s", err)
	}
	return res.Genesis.ChainID, nil
}
