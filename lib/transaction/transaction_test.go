package transaction

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

var networkID = []byte("ballot-test-network")

func testConfig() common.Config {
	return common.NewConfig(networkID)
}

func TestTransactionWellFormed(t *testing.T) {
	kp := keypair.Random()
	tx := TestMakeTransaction(networkID, kp, operation.NewCreateVoter("alice"))

	require.Equal(t, TransactionType, tx.GetType())
	require.Equal(t, kp.Address(), tx.Source())
	require.Equal(t, operation.TypeCreateVoter, tx.OperationType())
	require.NoError(t, tx.IsWellFormed(testConfig()))
}

func TestTransactionHashCoversBody(t *testing.T) {
	kp := keypair.Random()

	a, err := NewTransaction(kp.Address(), 1, operation.NewVoteProposal(0, 1))
	require.NoError(t, err)
	b, err := NewTransaction(kp.Address(), 1, operation.NewVoteProposal(0, 1))
	require.NoError(t, err)
	c, err := NewTransaction(kp.Address(), 1, operation.NewVoteProposal(0, 2))
	require.NoError(t, err)

	require.Equal(t, a.GetHash(), b.GetHash())
	require.NotEqual(t, a.GetHash(), c.GetHash())
}

func TestTransactionBadSource(t *testing.T) {
	kp := keypair.Random()
	tx := TestMakeTransaction(networkID, kp, operation.NewCreateVoter("alice"))
	tx.B.Source = "showme"
	tx.Sign(kp, networkID)

	require.Equal(t, errors.BadPublicAddress, tx.IsWellFormed(testConfig()))
}

func TestTransactionTamperedBody(t *testing.T) {
	kp := keypair.Random()
	tx := TestMakeTransaction(networkID, kp, operation.NewCreateVoter("alice"))
	tx.B.Operation = operation.MakeTestCreateVoter("mallory")

	require.Equal(t, errors.InvalidTransactionHash, tx.IsWellFormed(testConfig()))
}

func TestTransactionInvalidSignature(t *testing.T) {
	kp := keypair.Random()

	{ // signed by someone else
		tx := TestMakeTransaction(networkID, kp, operation.NewCreateVoter("alice"))
		tx.Sign(keypair.Random(), networkID)
		require.Equal(t, errors.InvalidSignature, tx.IsWellFormed(testConfig()))
	}

	{ // signed for another network
		tx := TestMakeTransaction([]byte("another-network"), kp, operation.NewCreateVoter("alice"))
		require.Equal(t, errors.InvalidSignature, tx.IsWellFormed(testConfig()))
	}

	{ // broken signature
		tx := TestMakeTransaction(networkID, kp, operation.NewCreateVoter("alice"))
		tx.H.Signature = base58.Encode([]byte("findme"))
		require.Equal(t, errors.InvalidSignature, tx.IsWellFormed(testConfig()))
	}
}

func TestTransactionInvalidOperation(t *testing.T) {
	kp := keypair.Random()
	conf := testConfig()
	conf.MaxProposals = 1

	tx := TestMakeTransaction(networkID, kp, operation.NewNewProposals(0, "triss", "ciri"))
	require.Equal(t, errors.ExcessMaxProposals, tx.IsWellFormed(conf))
}

func TestTransactionJSON(t *testing.T) {
	kp := keypair.Random()
	tx := TestMakeTransaction(networkID, kp, operation.NewVoteBallot("showme", 1, "triss"))

	b, err := tx.Serialize()
	require.NoError(t, err)

	parsed, err := NewTransactionFromJSON(b)
	require.NoError(t, err)
	require.Equal(t, tx, parsed)
	require.NoError(t, parsed.IsWellFormed(testConfig()))

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, TransactionType, m["T"])

	_, err = NewTransactionFromJSON([]byte(`{"T":"transaction","B":{"operation":{"H":{"type":"payment"},"B":{}}}}`))
	require.Equal(t, errors.UnknownOperationType, err)

	_, err = NewTransactionFromJSON([]byte(`{`))
	require.Equal(t, errors.InvalidOperation.Code, err.(*errors.Error).Code)
}
