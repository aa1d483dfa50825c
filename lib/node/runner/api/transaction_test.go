package api

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

func TestTransactionHandlers(t *testing.T) {
	env := newTestEnv(t, 1)
	defer env.Close()

	kp := keypair.Random()
	created := env.tx(kp, operation.NewCreateVoter("geralt"))
	again := env.tx(kp, operation.NewCreateVoter("geralt"))
	env.commit(11, created, again)

	{
		status, m := env.get(pattern(GetTransactionByHashHandlerPattern, created.GetHash()))
		require.Equal(t, 200, status)
		require.Equal(t, created.GetHash(), m["hash"])
		require.Equal(t, env.latest.Hash, m["block"])
		require.Equal(t, float64(0), m["index"])
		require.Equal(t, ballot.TransactionStatusApplied, m["status"])
		require.Equal(t, string(operation.TypeCreateVoter), m["type"])
	}
	{
		status, m := env.get(pattern(GetTransactionByHashHandlerPattern, again.GetHash()))
		require.Equal(t, 200, status)
		require.Equal(t, float64(1), m["index"])
		require.Equal(t, ballot.TransactionStatusRejected, m["status"])
		require.Equal(t, float64(errors.VoterAlreadyExists.Code), m["code"])
	}

	pending := env.tx(keypair.Random(), operation.NewCreateVoter("ciri"))
	require.NoError(t, env.pool.Add(pending))
	{
		status, m := env.get(pattern(GetTransactionByHashHandlerPattern, pending.GetHash()))
		require.Equal(t, 200, status)
		require.Equal(t, "pending", m["status"])
	}
	{
		status, m := env.get(pattern(GetTransactionByHashHandlerPattern, "unknown"))
		require.Equal(t, 404, status)
		require.Equal(t, float64(errors.TransactionNotFound.Code), m["code"])
	}
}

func TestPostTransactionsHandler(t *testing.T) {
	env := newTestEnv(t, 1)
	defer env.Close()

	{ // nobody takes transactions
		status, m := env.post(PostTransactionPattern, []byte("{}"))
		require.Equal(t, 501, status)
		require.Equal(t, float64(errors.NotImplemented.Code), m["code"])
	}

	var received [][]byte
	env.api.PostTransaction = func(b []byte) (tx transaction.Transaction, err error) {
		received = append(received, b)
		if len(received) > 1 {
			return tx, errors.TransactionPoolFull
		}
		return env.tx(keypair.Random(), operation.NewCreateVoter(strconv.Itoa(len(received)))), nil
	}

	{
		status, m := env.post(PostTransactionPattern, []byte(`{"T":"transaction"}`))
		require.Equal(t, 200, status)
		require.Equal(t, "pending", m["status"])
		require.Equal(t, []byte(`{"T":"transaction"}`), received[0])
	}
	{
		status, m := env.post(PostTransactionPattern, []byte(`{"T":"transaction"}`))
		require.Equal(t, 503, status)
		require.Equal(t, float64(errors.TransactionPoolFull.Code), m["code"])
	}
}
