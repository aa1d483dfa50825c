package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

func TestBlockHandler(t *testing.T) {
	env := newTestEnv(t, 1)
	defer env.Close()

	genesis := env.latest
	tx := env.tx(keypair.Random(), operation.NewCreateVoter("geralt"))
	env.commit(11, tx)

	for _, id := range []string{"1", env.latest.Hash} {
		status, m := env.get(strings.Replace(GetBlockHandlerPattern, "{hashOrHeight}", id, 1))
		require.Equal(t, 200, status)
		require.Equal(t, env.latest.Hash, m["hash"])
		require.Equal(t, genesis.Hash, m["prev_block_hash"])
		require.Equal(t, float64(11), m["timestamp"])
		require.Equal(t, env.latest.StateRoot.String(), m["state_root"])
		require.Equal(t, []interface{}{tx.GetHash()}, m["transactions"])
	}

	{
		status, m := env.get(strings.Replace(GetBlockHandlerPattern, "{hashOrHeight}", "2", 1))
		require.Equal(t, 404, status)
		require.Equal(t, float64(errors.BlockNotFound.Code), m["code"])
	}
}

func TestBlocksHandler(t *testing.T) {
	env := newTestEnv(t, 1)
	defer env.Close()

	inserted := []block.Block{env.latest}
	for i := 0; i < 4; i++ {
		env.commit(uint64(11 + i))
		inserted = append(inserted, env.latest)
	}

	{
		status, m := env.get(GetBlocksHandlerPattern + "?limit=3")
		require.Equal(t, 200, status)

		rs := records(t, m)
		require.Equal(t, 3, len(rs))
		for i, r := range rs {
			require.Equal(t, inserted[i].Hash, r["hash"])
			require.Equal(t, float64(i), r["height"])
		}
		require.Equal(t, "/blocks?limit=3&offset=3", link(t, m, "next"))
	}
	{ // latest first
		status, m := env.get(GetBlocksHandlerPattern + "?limit=2&reverse=true")
		require.Equal(t, 200, status)

		rs := records(t, m)
		require.Equal(t, 2, len(rs))
		require.Equal(t, inserted[4].Hash, rs[0]["hash"])
		require.Equal(t, inserted[3].Hash, rs[1]["hash"])
	}
}

func TestStateHandler(t *testing.T) {
	env := newTestEnv(t, 1)
	defer env.Close()

	env.commit(11, env.tx(keypair.Random(), operation.NewCreateVoter("geralt")))

	status, m := env.get(GetStateHandlerPattern)
	require.Equal(t, 200, status)
	require.Equal(t, float64(1), m["height"])
	require.Equal(t, env.latest.Hash, m["block"])
	require.Equal(t, env.latest.StateRoot.String(), m["state_root"])

	roots := m["roots"].(map[string]interface{})
	require.Equal(t, len(ballot.StateHashNames), len(roots))

	st := ballot.NewSchema(env.st)
	hashes, err := st.StateHash()
	require.NoError(t, err)
	for i, name := range ballot.StateHashNames {
		require.Equal(t, hashes[i].String(), roots[name], name)
	}
}
