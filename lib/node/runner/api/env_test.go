package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/engine"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

const testProposals = `{"id":1,"deadline":30,"proposals":[{"id":1,"subject":"triss"},{"id":2,"subject":"ciri"}]}`

type testEnv struct {
	t          *testing.T
	conf       common.Config
	st         *storage.LevelDBBackend
	pool       *transaction.Pool
	engine     *engine.Engine
	api        *NetworkHandlerAPI
	server     *httptest.Server
	validators []*keypair.Full
	latest     block.Block
}

func newTestEnv(t *testing.T, validators int) *testEnv {
	env := &testEnv{
		t:    t,
		conf: common.NewTestConfig(),
		st:   storage.NewTestStorage(),
		pool: transaction.NewPool(10),
	}
	for i := 0; i < validators; i++ {
		kp := keypair.Random()
		env.validators = append(env.validators, kp)
		env.conf.Validators = append(env.conf.Validators, kp.Address())
	}
	env.engine = engine.NewEngine(env.conf)

	root, err := ballot.NewSchema(env.st).StateRoot()
	require.NoError(t, err)
	env.latest, err = block.MakeGenesisBlock(env.st, 10, root)
	require.NoError(t, err)

	env.api, err = NewNetworkHandlerAPI(env.conf, env.st, env.pool, "")
	require.NoError(t, err)

	router := mux.NewRouter()
	for pattern, handler := range map[string]http.HandlerFunc{
		GetTransactionByHashHandlerPattern: env.api.GetTransactionByHashHandler,
		GetVoterHandlerPattern:             env.api.GetVoterHandler,
		GetChairpersonHandlerPattern:       env.api.GetChairpersonHandler,
		GetVotingsHandlerPattern:           env.api.GetVotingsHandler,
		GetVotingHandlerPattern:            env.api.GetVotingHandler,
		GetVotingResultHandlerPattern:      env.api.GetVotingResultHandler,
		GetBallotsHandlerPattern:           env.api.GetBallotsHandler,
		GetBallotHandlerPattern:            env.api.GetBallotHandler,
		GetBallotVotesHandlerPattern:       env.api.GetBallotVotesHandler,
		GetBallotVoteHandlerPattern:        env.api.GetBallotVoteHandler,
		GetBallotResultHandlerPattern:      env.api.GetBallotResultHandler,
		GetBlocksHandlerPattern:            env.api.GetBlocksHandler,
		GetBlockHandlerPattern:             env.api.GetBlockHandler,
		GetStateHandlerPattern:             env.api.GetStateHandler,
	} {
		router.HandleFunc(pattern, handler).Methods("GET")
	}
	router.HandleFunc(PostTransactionPattern, env.api.PostTransactionsHandler).Methods("POST")

	env.server = httptest.NewServer(router)

	return env
}

func (env *testEnv) Close() {
	env.server.Close()
	env.st.Close()
}

func (env *testEnv) tx(kp *keypair.Full, opb operation.Body) transaction.Transaction {
	return transaction.TestMakeTransaction(env.conf.NetworkID, kp, opb)
}

// commit executes txs in a new block at the given ledger time.
func (env *testEnv) commit(ledgerTime uint64, txs ...transaction.Transaction) []ballot.TransactionResult {
	fork, err := env.st.OpenBatch()
	require.NoError(env.t, err)

	results, err := env.engine.ExecuteBlock(fork, env.latest.Height+1, ledgerTime, txs)
	require.NoError(env.t, err)

	root, err := ballot.NewSchema(fork).StateRoot()
	require.NoError(env.t, err)

	var hashes []string
	for _, tx := range txs {
		hashes = append(hashes, tx.GetHash())
	}
	b := block.NewBlock("", env.latest, ledgerTime, hashes, root)
	require.NoError(env.t, b.Save(fork))
	for i, tx := range txs {
		require.NoError(env.t, block.NewBlockTransaction(b, uint64(i), tx).Save(fork))
	}
	require.NoError(env.t, fork.Commit())

	env.latest = b

	return results
}

func (env *testEnv) get(path string) (int, map[string]interface{}) {
	resp, err := http.Get(env.server.URL + path)
	require.NoError(env.t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(env.t, err)

	m := map[string]interface{}{}
	require.NoError(env.t, json.Unmarshal(body, &m), string(body))

	return resp.StatusCode, m
}

func (env *testEnv) post(path string, body []byte) (int, map[string]interface{}) {
	resp, err := http.Post(env.server.URL+path, "application/json", strings.NewReader(string(body)))
	require.NoError(env.t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(env.t, err)

	m := map[string]interface{}{}
	require.NoError(env.t, json.Unmarshal(b, &m), string(b))

	return resp.StatusCode, m
}

func records(t *testing.T, m map[string]interface{}) []map[string]interface{} {
	embedded, ok := m["_embedded"].(map[string]interface{})
	require.True(t, ok, "no _embedded: %v", m)

	raw, ok := embedded["records"].([]interface{})
	require.True(t, ok, "no records: %v", embedded)

	var rs []map[string]interface{}
	for _, r := range raw {
		rs = append(rs, r.(map[string]interface{}))
	}

	return rs
}

func link(t *testing.T, m map[string]interface{}, rel string) string {
	links, ok := m["_links"].(map[string]interface{})
	require.True(t, ok, "no _links: %v", m)

	l, ok := links[rel].(map[string]interface{})
	if !ok {
		return ""
	}

	return l["href"].(string)
}
