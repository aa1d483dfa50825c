package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

func TestCreateVoterFirstBecomesChairperson(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := env.createVoter("alice")
	bob := env.createVoter("bob")

	v, err := env.schema().Voter(alice.Address())
	require.NoError(t, err)
	require.Equal(t, "alice", v.Name)
	require.Equal(t, common.DefaultInitialVoterWeight, v.Weight)
	require.True(t, v.IsActive)

	c, err := env.schema().Chairperson()
	require.NoError(t, err)
	require.Equal(t, alice.Address(), c.Address)
	require.Equal(t, "alice", c.Name)

	v, err = env.schema().Voter(bob.Address())
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestCreateVoterAlreadyExists(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := env.createVoter("alice")
	before, err := env.schema().StateRoot()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := env.execute(alice, operation.NewCreateVoter("alice-again"), 0)
		requireRejected(t, errors.VoterAlreadyExists, err)
	}

	after, err := env.schema().StateRoot()
	require.NoError(t, err)
	require.Equal(t, before, after)

	v, err := env.schema().Voter(alice.Address())
	require.NoError(t, err)
	require.Equal(t, "alice", v.Name)
}

func TestChangeChairperson(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := env.createVoter("alice")
	bob := env.createVoter("bob")
	carol := env.createVoter("carol")

	{ // only the chairperson
		err := env.execute(bob, operation.NewChangeChairperson(carol.Address()), 0)
		requireRejected(t, errors.ChairpersonPermissionRequired, err)
	}
	{ // unknown address
		err := env.execute(alice, operation.NewChangeChairperson(keypair.Random().Address()), 0)
		requireRejected(t, errors.VoterNoneExists, err)
	}
	{ // inactive voter
		require.NoError(t, env.execute(alice, operation.NewSetVoterActiveState(carol.Address(), false), 0))
		err := env.execute(alice, operation.NewChangeChairperson(carol.Address()), 0)
		requireRejected(t, errors.VoterInactive, err)
	}

	require.NoError(t, env.execute(alice, operation.NewChangeChairperson(bob.Address()), 0))

	c, err := env.schema().Chairperson()
	require.NoError(t, err)
	require.Equal(t, bob.Address(), c.Address)
	require.Equal(t, "bob", c.Name)

	// alice is not the chairperson anymore
	err = env.execute(alice, operation.NewChangeChairperson(alice.Address()), 0)
	requireRejected(t, errors.ChairpersonPermissionRequired, err)
}

func TestSetVoterActiveState(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := env.createVoter("alice")
	bob := env.createVoter("bob")
	carol := env.createVoter("carol")

	{
		err := env.execute(alice, operation.NewSetVoterActiveState(alice.Address(), false), 0)
		requireRejected(t, errors.VoterActiveStateSelfChange, err)
	}
	{ // self change is checked before the permission
		err := env.execute(bob, operation.NewSetVoterActiveState(bob.Address(), false), 0)
		requireRejected(t, errors.VoterActiveStateSelfChange, err)
	}
	{
		err := env.execute(bob, operation.NewSetVoterActiveState(carol.Address(), false), 0)
		requireRejected(t, errors.ChairpersonPermissionRequired, err)
	}
	{
		err := env.execute(alice, operation.NewSetVoterActiveState(keypair.Random().Address(), false), 0)
		requireRejected(t, errors.VoterNoneExists, err)
	}

	require.NoError(t, env.execute(alice, operation.NewSetVoterActiveState(bob.Address(), false), 0))

	v, err := env.schema().Voter(bob.Address())
	require.NoError(t, err)
	require.False(t, v.IsActive)
	require.Equal(t, "bob", v.Name)
	require.Equal(t, common.DefaultInitialVoterWeight, v.Weight)

	require.NoError(t, env.execute(alice, operation.NewSetVoterActiveState(bob.Address(), true), 0))

	v, err = env.schema().Voter(bob.Address())
	require.NoError(t, err)
	require.True(t, v.IsActive)
}

func TestChairpersonAlwaysActiveWhenSet(t *testing.T) {
	env := newTestEnv(t, 0)
	defer env.Close()

	alice := env.createVoter("alice")
	bob := env.createVoter("bob")

	require.NoError(t, env.execute(alice, operation.NewSetVoterActiveState(bob.Address(), false), 0))
	requireRejected(t, errors.VoterInactive, env.execute(alice, operation.NewChangeChairperson(bob.Address()), 0))

	require.NoError(t, env.execute(alice, operation.NewSetVoterActiveState(bob.Address(), true), 0))
	require.NoError(t, env.execute(alice, operation.NewChangeChairperson(bob.Address()), 0))

	c, err := env.schema().Chairperson()
	require.NoError(t, err)
	require.Equal(t, bob.Address(), c.Address)

	v, err := env.schema().Voter(c.Address)
	require.NoError(t, err)
	require.True(t, v.IsActive)
}
