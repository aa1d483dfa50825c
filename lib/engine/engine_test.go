package engine

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

func TestExecuteInvalidSignature(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	kp := keypair.Random()

	{ // signed by someone else
		tx := env.tx(kp, operation.NewCreateVoter("alice"))
		tx.Sign(keypair.Random(), env.conf.NetworkID)
		requireRejected(t, errors.InvalidSignature, env.engine.Execute(env.st, tx, 0))
	}
	{ // signed for another network
		tx := env.tx(kp, operation.NewCreateVoter("alice"))
		tx.Sign(kp, []byte("another-network"))
		requireRejected(t, errors.InvalidSignature, env.engine.Execute(env.st, tx, 0))
	}
	{
		tx := env.tx(kp, operation.NewCreateVoter("alice"))
		tx.H.Signature = base58.Encode([]byte("findme"))
		requireRejected(t, errors.InvalidSignature, env.engine.Execute(env.st, tx, 0))
	}
	{ // body changed after signing
		tx := env.tx(kp, operation.NewCreateVoter("alice"))
		tx.B.Nonce++
		requireRejected(t, errors.InvalidTransactionHash, env.engine.Execute(env.st, tx, 0))
	}
	{
		tx := env.tx(kp, operation.NewCreateVoter("alice"))
		tx.B.Source = "GALICE"
		requireRejected(t, errors.BadPublicAddress, env.engine.Execute(env.st, tx, 0))
	}

	v, err := env.schema().Voter(kp.Address())
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestExecuteRejectedWritesNothing(t *testing.T) {
	env := newTestEnv(t, 2)
	defer env.Close()

	alice := env.createVoter("alice")
	require.NoError(t, env.execute(alice, operation.NewNewProposals(10, "a", "b"), 0))
	require.NoError(t, env.execute(env.validators[0], operation.NewPostBallot(testProposals), 0))
	hash := testProposalsHash(t)

	before, err := env.schema().StateHash()
	require.NoError(t, err)

	rejected := []struct {
		kp  *keypair.Full
		opb operation.Body
	}{
		{alice, operation.NewCreateVoter("alice")},
		{alice, operation.NewVoteProposal(0, 9)},
		{alice, operation.NewVoteProposal(3, 0)},
		{keypair.Random(), operation.NewNewProposals(0, "a")},
		{env.validators[1], operation.NewPostBallot(testProposals)},
		{env.validators[1], operation.NewVoteBallot(hash.String(), 1, "ciri")},
	}
	for _, r := range rejected {
		require.Error(t, env.execute(r.kp, r.opb, 0))
	}
	require.Error(t, env.execute(alice, operation.NewVoteProposal(0, 0), 11))

	after, err := env.schema().StateHash()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestExecuteOnSnapshot(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	snapshot, err := env.st.Snapshot()
	require.NoError(t, err)
	defer snapshot.Release()

	err = env.engine.Execute(snapshot, env.tx(keypair.Random(), operation.NewCreateVoter("alice")), 0)
	requireRejected(t, errors.InternalError, err)
}

func TestExecuteInNestedFork(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	fork, err := env.st.OpenBatch()
	require.NoError(t, err)

	kp := keypair.Random()
	require.NoError(t, env.engine.Execute(fork, env.tx(kp, operation.NewCreateVoter("alice")), 0))

	v, err := ballot.NewSchema(fork).Voter(kp.Address())
	require.NoError(t, err)
	require.NotNil(t, v)

	// not visible before the fork is committed
	v, err = env.schema().Voter(kp.Address())
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, fork.Commit())

	v, err = env.schema().Voter(kp.Address())
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestExecuteBlock(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := keypair.Random()
	bob := keypair.Random()

	txs := []transaction.Transaction{
		env.tx(alice, operation.NewCreateVoter("alice")),
		env.tx(alice, operation.NewCreateVoter("alice")),
		env.tx(bob, operation.NewNewProposals(0, "a")),
		env.tx(bob, operation.NewCreateVoter("bob")),
		env.tx(bob, operation.NewNewProposals(0, "a", "b")),
	}

	results, err := env.engine.ExecuteBlock(env.st, 1, 100, txs)
	require.NoError(t, err)
	require.Equal(t, len(txs), len(results))

	expected := []*errors.Error{nil, errors.VoterAlreadyExists, errors.VoterPermissionRequired, nil, nil}
	for i, r := range results {
		require.Equal(t, txs[i].GetHash(), r.Hash)
		require.Equal(t, uint64(1), r.Height)
		if expected[i] == nil {
			require.True(t, r.IsApplied(), r.Message)
		} else {
			require.False(t, r.IsApplied())
			require.Equal(t, expected[i].Code, r.Code)
		}

		stored, err := env.schema().TransactionResult(r.Hash)
		require.NoError(t, err)
		require.Equal(t, r, *stored)
	}

	voting, err := env.schema().Voting(0)
	require.NoError(t, err)
	require.Equal(t, bob.Address(), voting.Creator)
	require.Equal(t, uint64(100), voting.StartTime)

	missing, err := env.schema().TransactionResult("findme")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestExecuteBlockReplay(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := keypair.Random()
	bob := keypair.Random()

	create := env.tx(alice, operation.NewCreateVoter("alice"))
	open := env.tx(alice, operation.NewNewProposals(0, "a"))
	early := env.tx(bob, operation.NewNewProposals(0, "b"))

	_, err := env.engine.ExecuteBlock(env.st, 1, 100, []transaction.Transaction{create, open, early})
	require.NoError(t, err)

	results, err := env.engine.ExecuteBlock(env.st, 2, 200, []transaction.Transaction{open, early})
	require.NoError(t, err)

	// the applied one is not applied twice
	require.Equal(t, errors.TransactionAlreadyExists.Code, results[0].Code)
	n, err := env.schema().VotingsLen()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)

	stored, err := env.schema().TransactionResult(open.GetHash())
	require.NoError(t, err)
	require.True(t, stored.IsApplied())
	require.Equal(t, uint64(1), stored.Height)

	// the rejected one is rejected identically
	require.Equal(t, errors.VoterPermissionRequired.Code, results[1].Code)
	stored, err = env.schema().TransactionResult(early.GetHash())
	require.NoError(t, err)
	require.Equal(t, errors.VoterPermissionRequired.Code, stored.Code)
	require.Equal(t, uint64(2), stored.Height)
}
