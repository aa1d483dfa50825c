package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

type testEnv struct {
	t          *testing.T
	conf       common.Config
	st         *storage.LevelDBBackend
	engine     *Engine
	validators []*keypair.Full
}

func newTestEnv(t *testing.T, validators int) *testEnv {
	env := &testEnv{
		t:    t,
		conf: common.NewTestConfig(),
		st:   storage.NewTestStorage(),
	}

	for i := 0; i < validators; i++ {
		kp := keypair.Random()
		env.validators = append(env.validators, kp)
		env.conf.Validators = append(env.conf.Validators, kp.Address())
	}
	env.engine = NewEngine(env.conf)

	return env
}

func (env *testEnv) Close() {
	env.st.Close()
}

func (env *testEnv) schema() *ballot.Schema {
	return ballot.NewSchema(env.st)
}

func (env *testEnv) tx(kp *keypair.Full, opb operation.Body) transaction.Transaction {
	return transaction.TestMakeTransaction(env.conf.NetworkID, kp, opb)
}

func (env *testEnv) execute(kp *keypair.Full, opb operation.Body, ledgerTime uint64) error {
	return env.engine.Execute(env.st, env.tx(kp, opb), ledgerTime)
}

func (env *testEnv) createVoter(name string) *keypair.Full {
	kp := keypair.Random()
	require.NoError(env.t, env.execute(kp, operation.NewCreateVoter(name), 0))

	return kp
}

func requireRejected(t *testing.T, expected *errors.Error, err error) {
	require.Error(t, err)
	e, ok := err.(*errors.Error)
	require.True(t, ok, "not *errors.Error: %v", err)
	require.Equal(t, expected.Code, e.Code, e.Message)
}
