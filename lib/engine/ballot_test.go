package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

const testProposals = `{"id":1,"deadline":30,"proposals":[{"id":1,"subject":"triss"},{"id":2,"subject":"ciri"}]}`

func testProposalsHash(t *testing.T) common.Hash {
	list, err := ballot.ParseProposalList(testProposals)
	require.NoError(t, err)

	return list.Hash()
}

func TestPostBallotTwice(t *testing.T) {
	env := newTestEnv(t, 4)
	defer env.Close()

	hash := testProposalsHash(t)

	require.NoError(t, env.execute(env.validators[0], operation.NewPostBallot(testProposals), 0))

	posted, err := env.schema().Ballot(hash)
	require.NoError(t, err)
	require.Equal(t, env.validators[0].Address(), posted.Source)

	err = env.execute(env.validators[1], operation.NewPostBallot(testProposals), 0)
	requireRejected(t, errors.BallotAlreadyPosted, err)

	stored, err := env.schema().Ballot(hash)
	require.NoError(t, err)
	require.Equal(t, *posted, *stored)

	votes, err := env.schema().Votes(hash)
	require.NoError(t, err)
	require.Equal(t, 4, len(votes))
	for _, v := range votes {
		require.True(t, v.IsNone())
	}

	n, err := env.schema().BallotsLen()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
}

func TestPostBallotPreconditions(t *testing.T) {
	env := newTestEnv(t, 2)
	defer env.Close()

	{
		err := env.execute(keypair.Random(), operation.NewPostBallot(testProposals), 0)
		requireRejected(t, errors.UnknownSender, err)
	}
	{ // not a validator and malformed
		err := env.execute(keypair.Random(), operation.NewPostBallot(`{`), 0)
		requireRejected(t, errors.UnknownSender, err)
	}
	{
		err := env.execute(env.validators[0], operation.NewPostBallot(`{"id":1,"deadline":30`), 0)
		requireRejected(t, errors.InvalidProposals, err)
		require.NotEqual(t, errors.InvalidProposals.Message, err.(*errors.Error).Message)
	}
	{
		err := env.execute(
			env.validators[0],
			operation.NewPostBallot(`{"id":1,"deadline":30,"proposals":[{"id":1,"subject":"triss"},{"id":1,"subject":"ciri"}]}`),
			0,
		)
		requireRejected(t, errors.PostDuplicateProposalId, err)
	}

	n, err := env.schema().BallotsLen()
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)
}

func TestVoteBallot(t *testing.T) {
	env := newTestEnv(t, 4)
	defer env.Close()

	hash := testProposalsHash(t)
	require.NoError(t, env.execute(env.validators[0], operation.NewPostBallot(testProposals), 0))

	before, err := env.schema().Ballot(hash)
	require.NoError(t, err)

	vote := env.tx(env.validators[2], operation.NewVoteBallot(hash.String(), 2, "ciri"))
	require.NoError(t, env.engine.Execute(env.st, vote, 0))

	votes, err := env.schema().Votes(hash)
	require.NoError(t, err)
	for i, v := range votes {
		if i == 2 {
			require.False(t, v.IsNone())
			require.Equal(t, vote.GetHash(), v.Vote.GetHash())
			require.Equal(t, vote.H.Signature, v.Vote.H.Signature)
		} else {
			require.True(t, v.IsNone())
		}
	}

	after, err := env.schema().Ballot(hash)
	require.NoError(t, err)
	require.NotEqual(t, before.VotesRoot, after.VotesRoot)

	requireRejected(
		t,
		errors.AlreadyVoted,
		env.execute(env.validators[2], operation.NewVoteBallot(hash.String(), 1, "triss"), 0),
	)
	requireRejected(
		t,
		errors.VotedProposalNoneExists,
		env.execute(env.validators[3], operation.NewVoteBallot(hash.String(), 1, "ciri"), 0),
	)
	requireRejected(
		t,
		errors.VotedProposalNoneExists,
		env.execute(env.validators[3], operation.NewVoteBallot(hash.String(), 3, "yennefer"), 0),
	)
	requireRejected(
		t,
		errors.UnknownSender,
		env.execute(keypair.Random(), operation.NewVoteBallot(hash.String(), 1, "triss"), 0),
	)
	requireRejected(
		t,
		errors.BallotNoneExists,
		env.execute(env.validators[3], operation.NewVoteBallot(common.BytesToHash(common.MakeHash([]byte("x"))).String(), 1, "triss"), 0),
	)
	requireRejected(
		t,
		errors.BallotNoneExists,
		env.execute(env.validators[3], operation.NewVoteBallot("not-a-hash", 1, "triss"), 0),
	)

	require.NoError(t, env.execute(env.validators[0], operation.NewVoteBallot(hash.String(), 1, "triss"), 0))
	require.NoError(t, env.execute(env.validators[1], operation.NewVoteBallot(hash.String(), 2, "ciri"), 0))

	result, err := env.schema().BallotResult(hash)
	require.NoError(t, err)
	require.Equal(t, uint64(3), result.Voted)
	require.Equal(t, uint64(1), result.Counts[0].Votes)
	require.Equal(t, uint64(2), result.Counts[1].Votes)
	require.Equal(t, 1, *result.Winner)
}

func TestVoteBallotMissingSlot(t *testing.T) {
	env := newTestEnv(t, 4)
	defer env.Close()

	// the ballot is posted while only two validators are known
	narrow := env.conf
	narrow.Validators = env.conf.Validators[:2]
	post := env.tx(env.validators[0], operation.NewPostBallot(testProposals))
	require.NoError(t, NewEngine(narrow).Execute(env.st, post, 0))

	hash := testProposalsHash(t)
	err := env.execute(env.validators[3], operation.NewVoteBallot(hash.String(), 1, "triss"), 0)
	requireRejected(t, errors.InternalError, err)

	votes, err := env.schema().Votes(hash)
	require.NoError(t, err)
	require.Equal(t, 2, len(votes))
}
