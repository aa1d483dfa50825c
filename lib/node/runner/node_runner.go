// NodeRunner bridges together the storage, the transaction pool, the
// engine and the API server. It is the single writer of the ledger: every
// `BlockTime` it takes the pooled transactions into a new block.
package runner

import (
	"context"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/observer"
	"boscoin.io/ballot/lib/engine"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/httpcache"
	"boscoin.io/ballot/lib/node/runner/api"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

type NodeRunner struct {
	sync.Mutex

	conf     common.Config
	proposer string
	storage  *storage.LevelDBBackend
	engine   *engine.Engine
	pool     *transaction.Pool
	clock    Clock
	network  *network.HTTP2Server
	cache    httpcache.Adapter

	submitCheckerFuncs []common.CheckerFunc
	onBlockSaved       func(...interface{})

	log logging.Logger
}

// NewNodeRunner makes the genesis block when the storage has none. `clock`
// and `cache` may be nil.
func NewNodeRunner(
	conf common.Config,
	proposer string,
	st *storage.LevelDBBackend,
	n *network.HTTP2Server,
	clock Clock,
	cache httpcache.Adapter,
) (nr *NodeRunner, err error) {
	if clock == nil {
		clock = SystemClock{}
	}

	nr = &NodeRunner{
		conf:               conf,
		proposer:           proposer,
		storage:            st,
		engine:             engine.NewEngine(conf),
		pool:               transaction.NewPool(conf.TxPoolLimit),
		clock:              clock,
		network:            n,
		cache:              cache,
		submitCheckerFuncs: DefaultSubmitCheckerFuncs,
		log:                log.New(logging.Ctx{"proposer": proposer}),
	}

	nr.onBlockSaved = func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		if b, ok := args[0].(block.Block); ok {
			metrics.Ledger.SetHeight(b.Height)
			metrics.Ledger.SetTotalTxs(b.TotalTxs)
		}
	}
	observer.BlockObserver.On(block.EventBlockSaved, nr.onBlockSaved)
	metrics.Ledger.SetValidators(len(conf.Validators))

	var latest block.Block
	if latest, err = nr.ensureGenesis(); err != nil {
		nr.Close()
		return nil, err
	}

	metrics.Ledger.SetHeight(latest.Height)
	metrics.Ledger.SetTotalTxs(latest.TotalTxs)

	nr.log.Debug("node runner created", "height", latest.Height, "block", latest.Hash)

	return
}

func (nr *NodeRunner) ensureGenesis() (block.Block, error) {
	latest, err := block.GetLatestBlock(nr.storage)
	if err == nil {
		return latest, nil
	} else if !errors.BlockNotFound.Is(errors.FromError(err)) {
		return block.Block{}, err
	}

	root, err := ballot.NewSchema(nr.storage).StateRoot()
	if err != nil {
		return block.Block{}, err
	}

	genesis, err := block.MakeGenesisBlock(nr.storage, LedgerTime(nr.clock, block.Block{}), root)
	if err != nil {
		return block.Block{}, err
	}
	nr.log.Info("genesis block created", "block", genesis.Hash, "state-root", root)

	return genesis, nil
}

func (nr *NodeRunner) Conf() common.Config {
	return nr.conf
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) TransactionPool() *transaction.Pool {
	return nr.pool
}

func (nr *NodeRunner) Network() *network.HTTP2Server {
	return nr.network
}

func (nr *NodeRunner) SetSubmitCheckerFuncs(f ...common.CheckerFunc) {
	nr.submitCheckerFuncs = f
}

// SubmitTransaction takes the body of a transaction sent to the API into the
// pool.
func (nr *NodeRunner) SubmitTransaction(body []byte) (tx transaction.Transaction, err error) {
	checker := &SubmitChecker{
		DefaultChecker: common.DefaultChecker{Funcs: nr.submitCheckerFuncs},
		Conf:           nr.conf,
		Storage:        nr.storage,
		Pool:           nr.pool,
		Log:            nr.log,
		Body:           body,
	}

	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		nr.log.Debug("failed to submit transaction", "error", err)
		return
	}

	return checker.Transaction, nil
}

// Ready registers the handlers and middlewares and opens the API server.
func (nr *NodeRunner) Ready() error {
	if nr.network == nil {
		return nil
	}

	rateLimitMiddlewareAPI, err := network.RateLimitMiddleware(nr.log, nr.conf.RateLimitAPI)
	if err != nil {
		return err
	}

	// BaseRouter's middlewares impact all sub routers.
	nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log))

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		nr.network.AddMiddleware(
			network.RouterNameAPI,
			network.RequestIDMiddleware,
			rateLimitMiddlewareAPI,
			network.MetricsMiddleware,
			ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders),
		)
	}

	apiHandler, err := api.NewNetworkHandlerAPI(nr.conf, nr.storage, nr.pool, network.UrlPathPrefixAPI)
	if err != nil {
		return err
	}
	apiHandler.PostTransaction = nr.SubmitTransaction

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostTransactionPattern),
		apiHandler.PostTransactionsHandler,
	).Methods("POST").
		Headers("Content-Type", "application/json")

	getHandlers := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{api.GetTransactionByHashHandlerPattern, apiHandler.GetTransactionByHashHandler},
		{api.GetVoterHandlerPattern, apiHandler.GetVoterHandler},
		{api.GetChairpersonHandlerPattern, apiHandler.GetChairpersonHandler},
		{api.GetVotingsHandlerPattern, apiHandler.GetVotingsHandler},
		{api.GetVotingHandlerPattern, apiHandler.GetVotingHandler},
		{api.GetVotingResultHandlerPattern, apiHandler.GetVotingResultHandler},
		{api.GetBallotsHandlerPattern, apiHandler.GetBallotsHandler},
		{api.GetBallotHandlerPattern, apiHandler.GetBallotHandler},
		{api.GetBallotVotesHandlerPattern, apiHandler.GetBallotVotesHandler},
		{api.GetBallotVoteHandlerPattern, apiHandler.GetBallotVoteHandler},
		{api.GetBallotResultHandlerPattern, apiHandler.GetBallotResultHandler},
		{api.GetBlocksHandlerPattern, apiHandler.GetBlocksHandler},
		{api.GetBlockHandlerPattern, nr.cached(apiHandler.GetBlockHandler)},
		{api.GetStateHandlerPattern, apiHandler.GetStateHandler},
	}
	for _, h := range getHandlers {
		nr.network.AddHandler(apiHandler.HandlerURLPattern(h.pattern), h.handler).Methods("GET", "OPTIONS")
	}

	nr.network.AddHandler(UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)

	if EnableJSONRPC {
		nr.network.AddHandler(UrlPathPrefixRPC, NewJSONRPCHandler(nr.storage).ServeHTTP).Methods("POST", "OPTIONS")
	}

	if DebugPProf {
		nr.network.AddHandler(UrlPathPrefixDebug+"/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler(UrlPathPrefixDebug+"/pprof/profile", pprof.Profile)
		nr.network.AddHandler(UrlPathPrefixDebug+"/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler(UrlPathPrefixDebug+"/pprof/trace", pprof.Trace)
		nr.network.Router().PathPrefix(UrlPathPrefixDebug + "/pprof/").HandlerFunc(pprof.Index)
	}

	nr.network.Ready()

	return nil
}

// cached keeps the responses of the handler in the http cache; only the
// records which never change once they exist go through it.
func (nr *NodeRunner) cached(handler http.HandlerFunc) http.HandlerFunc {
	if nr.cache == nil {
		return handler
	}

	client, err := httpcache.NewClient(
		httpcache.WithAdapter(nr.cache),
		httpcache.WithExpire(time.Hour),
		httpcache.WithLogger(nr.log),
	)
	if err != nil {
		nr.log.Error("failed to make http cache client", "error", err)
		return handler
	}

	return client.WrapHandlerFunc(handler)
}

// Start runs the block loop and the API server until ctx is done or one of
// them fails.
func (nr *NodeRunner) Start(ctx context.Context) (err error) {
	if err = nr.Ready(); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	go func() {
		errs <- nr.RunBlockLoop(ctx)
	}()

	if nr.network != nil {
		go func() {
			errs <- nr.network.Start()
		}()
	}

	select {
	case err = <-errs:
	case <-ctx.Done():
	}

	nr.Stop()

	return
}

// RunBlockLoop produces a block every `BlockTime` until ctx is done. A
// failed block is logged and tried again with the next tick; the pooled
// transactions stay.
func (nr *NodeRunner) RunBlockLoop(ctx context.Context) error {
	ticker := time.NewTicker(nr.conf.BlockTime)
	defer ticker.Stop()

	nr.log.Debug("block loop started", "block-time", nr.conf.BlockTime)

	for {
		select {
		case <-ctx.Done():
			nr.log.Debug("block loop stopped")
			return nil
		case <-ticker.C:
			if nr.pool.Len() < 1 {
				continue
			}

			if _, err := nr.ProduceBlock(); err != nil {
				nr.log.Error("failed to produce block", "error", err)
			}
		}
	}
}

func (nr *NodeRunner) Stop() {
	if nr.network == nil {
		return
	}

	if err := nr.network.Stop(); err != nil {
		nr.log.Error("failed to stop server", "error", err)
	}
}

// Close stops watching the saved blocks; the storage is closed by its
// owner.
func (nr *NodeRunner) Close() {
	observer.BlockObserver.Off(block.EventBlockSaved, nr.onBlockSaved)
}
