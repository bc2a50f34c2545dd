package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/vaultswap/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	msg := &vaulttest.Msg{RoutePath: "test/msg", Serialized: []byte{1, 2, 3}}
	require.NoError(t, TestGenCmd([]Example{{Filename: "msg", Obj: msg}}, []string{dir}))

	bin, err := ioutil.ReadFile(filepath.Join(dir, "msg.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, bin)

	js, err := ioutil.ReadFile(filepath.Join(dir, "msg.json"))
	require.NoError(t, err)
	assert.Contains(t, string(js), `"RoutePath": "test/msg"`)
}
